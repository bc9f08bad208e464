package layout

// pen traduce desplazamientos desde el borde superior a coordenadas de página.
type pen struct {
	page PageGeometry
	top  float64
}

func (p pen) text(role string, x, dy, size float64, s string) Instruction {
	return PlaceText(role, x, p.page.Height-(p.top+dy), size, s, AlignLeft)
}

func (p pen) centered(role string, dy, size float64, s string) Instruction {
	return PlaceText(role, p.page.Width/2, p.page.Height-(p.top+dy), size, s, AlignCenter)
}

func (p pen) rule(role string, dy float64) Instruction {
	return DrawRule(role, p.page.MarginLeft, p.page.Height-(p.top+dy), p.page.ContentRight())
}

// row fila lógica: dibuja relativo a su borde superior y avanza el cursor.
// bottom es el desplazamiento de su elemento más bajo respecto al borde superior.
type row struct {
	advance float64
	bottom  float64
	draw    func(p pen) []Instruction
}

func textRow(advance float64, draw func(p pen) Instruction) row {
	return row{advance: advance, draw: func(p pen) []Instruction { return []Instruction{draw(p)} }}
}

func spacer(advance float64) row {
	return row{advance: advance}
}

// section grupo de filas que se emite completo o no se emite. Una sección
// omitida no deja hueco: las siguientes suben exactamente su altura.
type section struct {
	name    string
	enabled bool
	rows    []row
}

func always(name string, rows ...row) section {
	return section{name: name, enabled: true, rows: rows}
}

func optional(name string, enabled bool, rows ...row) section {
	return section{name: name, enabled: enabled, rows: rows}
}

// fold recorre las secciones acumulando el cursor. Devuelve las instrucciones
// en orden y el desplazamiento (desde arriba) del elemento dibujado más bajo.
func fold(page PageGeometry, sections []section) ([]Instruction, float64) {
	var out []Instruction
	cursor := page.MarginTop
	lowest := cursor
	for _, s := range sections {
		if !s.enabled {
			continue
		}
		for _, r := range s.rows {
			if r.draw != nil {
				out = append(out, r.draw(pen{page: page, top: cursor})...)
				if b := cursor + r.bottom; b > lowest {
					lowest = b
				}
			}
			cursor += r.advance
		}
	}
	return out, lowest
}
