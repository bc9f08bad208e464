package layout

import (
	"fmt"

	"github.com/jhoicas/seikyusho-api/internal/domain"
)

// Dimensiones A4 en puntos (1/72 pulgada).
const (
	A4Width  = 595.2755905511812
	A4Height = 841.8897637795277
)

// PageGeometry describe la página destino en puntos. El origen es la esquina
// inferior izquierda: las posiciones se calculan como Height − desplazamiento.
type PageGeometry struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"margin_top"`
	MarginBottom float64 `json:"margin_bottom"`
	MarginLeft   float64 `json:"margin_left"`
	MarginRight  float64 `json:"margin_right"`
}

// A4 geometría por defecto del documento.
func A4() PageGeometry {
	return PageGeometry{
		Width:        A4Width,
		Height:       A4Height,
		MarginTop:    50,
		MarginBottom: 40,
		MarginLeft:   50,
		MarginRight:  50,
	}
}

// PrintableBottom desplazamiento máximo (desde arriba) que puede ocupar una línea base.
func (g PageGeometry) PrintableBottom() float64 {
	return g.Height - g.MarginBottom
}

// ContentRight coordenada x del borde derecho del área útil.
func (g PageGeometry) ContentRight() float64 {
	return g.Width - g.MarginRight
}

// Validate rechaza geometrías sin área útil.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: página de %.2fx%.2f", domain.ErrInvalidParameter, g.Width, g.Height)
	}
	if g.MarginLeft < 0 || g.MarginRight < 0 || g.MarginTop < 0 || g.MarginBottom < 0 {
		return fmt.Errorf("%w: márgenes negativos", domain.ErrInvalidParameter)
	}
	if g.MarginLeft+g.MarginRight >= g.Width || g.MarginTop+g.MarginBottom >= g.Height {
		return fmt.Errorf("%w: los márgenes no dejan área imprimible", domain.ErrInvalidParameter)
	}
	return nil
}
