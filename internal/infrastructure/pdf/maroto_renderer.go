package pdf

import (
	"context"
	"fmt"
	"path/filepath"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

var _ billing.PageRenderer = (*MarotoRenderer)(nil)

// rowSlack margen para que la fila única no dispare un salto de página.
const rowSlack = 0.5 // mm

// MarotoRenderer dibuja el plan con Maroto v2 (unidad: milímetro).
//
// Maroto trabaja con filas y columnas, no con coordenadas absolutas: el plan se
// vuelca en una sola fila que ocupa toda el área útil y cada texto se coloca con
// Top/Left relativos a ella. Los textos centrados se centran en el área útil, lo
// que coincide con el centro de la página solo si los márgenes laterales son iguales.
type MarotoRenderer struct {
	family string
	fonts  []*entity.CustomFont
}

// NewMarotoRenderer registra la fuente TTF si existe.
func NewMarotoRenderer(font FontConfig, log *logger.Logger) (*MarotoRenderer, error) {
	if log == nil {
		log = logger.Nop()
	}
	data, err := loadFont(font, log)
	if err != nil {
		return nil, err
	}
	if data == nil || font.Family == "" {
		return &MarotoRenderer{family: fallbackFamily}, nil
	}
	path, err := filepath.Abs(font.Path)
	if err != nil {
		return nil, fmt.Errorf("pdf: ruta de fuente: %w", err)
	}
	fonts, err := repository.New().
		AddUTF8Font(font.Family, fontstyle.Normal, path).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: registrar fuente %s: %w", font.Family, err)
	}
	return &MarotoRenderer{family: font.Family, fonts: fonts}, nil
}

func (r *MarotoRenderer) ContentType() string { return "application/pdf" }
func (r *MarotoRenderer) Extension() string   { return "pdf" }

// Render genera el documento.
func (r *MarotoRenderer) Render(ctx context.Context, plan layout.DrawPlan, page layout.PageGeometry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	top := pt2mm(page.MarginTop)
	left := pt2mm(page.MarginLeft)
	bottom := pt2mm(page.MarginBottom)
	height := pt2mm(page.Height) - top - bottom - rowSlack

	b := config.NewBuilder().
		WithDimensions(pt2mm(page.Width), pt2mm(page.Height)).
		WithLeftMargin(left).
		WithRightMargin(pt2mm(page.MarginRight)).
		WithTopMargin(top).
		WithBottomMargin(bottom).
		WithDefaultFont(&props.Font{Family: r.family, Size: 10}).
		WithTitle("請求書", true)
	if len(r.fonts) > 0 {
		b = b.WithCustomFonts(r.fonts)
	}
	m := maroto.New(b.Build())

	components, err := r.components(plan, page, top, left, height)
	if err != nil {
		return nil, err
	}
	m.AddRows(row.New(height).Add(col.New(12).Add(components...)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *MarotoRenderer) components(plan layout.DrawPlan, page layout.PageGeometry, top, left, height float64) ([]core.Component, error) {
	out := make([]core.Component, 0, len(plan.Instructions))
	for _, in := range plan.Instructions {
		// Desplazamiento desde el borde superior del área útil, en mm.
		offset := pt2mm(page.Height-in.Y) - top
		switch in.Kind {
		case layout.KindText:
			// Maroto posiciona el borde superior del texto; el plan, la línea base.
			prop := props.Text{
				Family: r.family,
				Size:   in.FontSize,
				Top:    max(offset-pt2mm(in.FontSize), 0),
				Left:   pt2mm(in.X) - left,
				Align:  align.Left,
			}
			if in.Align == layout.AlignCenter {
				prop.Left = 0
				prop.Align = align.Center
			}
			out = append(out, text.New(in.Text, prop))
		case layout.KindRule:
			out = append(out, line.New(props.Line{
				Thickness:     ruleWidth * 25.4 / 72,
				OffsetPercent: offset / height * 100,
				SizePercent:   ruleSpanPercent(in, page),
			}))
		default:
			return nil, fmt.Errorf("pdf: instrucción desconocida %q (%s)", in.Kind, in.Role)
		}
	}
	return out, nil
}

// ruleSpanPercent ancho de la regla respecto al área útil (Maroto la centra).
func ruleSpanPercent(in layout.Instruction, page layout.PageGeometry) float64 {
	content := page.ContentRight() - page.MarginLeft
	if content <= 0 {
		return 100
	}
	return min((in.X2-in.X)/content*100, 100)
}
