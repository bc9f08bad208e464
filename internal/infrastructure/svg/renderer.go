// Package svg dibuja el plan de la factura como documento SVG (vista previa en navegador).
package svg

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
)

var _ billing.PageRenderer = (*Renderer)(nil)

const (
	namespace   = "http://www.w3.org/2000/svg"
	defaultFont = `"IPAexGothic", "Hiragino Sans", "Noto Sans JP", sans-serif`
	strokeWidth = "0.5"
)

// Renderer genera SVG con las mismas coordenadas que el plan (1 unidad = 1 pt).
type Renderer struct {
	fontFamily string
}

// NewRenderer fontFamily vacío usa una lista de fuentes japonesas habituales.
func NewRenderer(fontFamily string) *Renderer {
	if fontFamily == "" {
		fontFamily = defaultFont
	}
	return &Renderer{fontFamily: fontFamily}
}

func (r *Renderer) ContentType() string { return "image/svg+xml" }
func (r *Renderer) Extension() string   { return "svg" }

// Render convierte el plan. SVG mide y desde arriba: y_svg = Height − y.
func (r *Renderer) Render(ctx context.Context, plan layout.DrawPlan, page layout.PageGeometry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", namespace)
	root.CreateAttr("width", num(page.Width)+"pt")
	root.CreateAttr("height", num(page.Height)+"pt")
	root.CreateAttr("viewBox", "0 0 "+num(page.Width)+" "+num(page.Height))

	bg := root.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("fill", "white")

	texts := root.CreateElement("g")
	texts.CreateAttr("font-family", r.fontFamily)
	texts.CreateAttr("fill", "black")
	rules := root.CreateElement("g")
	rules.CreateAttr("stroke", "black")
	rules.CreateAttr("stroke-width", strokeWidth)

	for _, in := range plan.Instructions {
		y := num(page.Height - in.Y)
		switch in.Kind {
		case layout.KindText:
			el := texts.CreateElement("text")
			el.CreateAttr("data-role", in.Role)
			el.CreateAttr("x", num(in.X))
			el.CreateAttr("y", y)
			el.CreateAttr("font-size", num(in.FontSize))
			if in.Align == layout.AlignCenter {
				el.CreateAttr("text-anchor", "middle")
			}
			el.SetText(in.Text)
		case layout.KindRule:
			el := rules.CreateElement("line")
			el.CreateAttr("data-role", in.Role)
			el.CreateAttr("x1", num(in.X))
			el.CreateAttr("y1", y)
			el.CreateAttr("x2", num(in.X2))
			el.CreateAttr("y2", y)
		default:
			return nil, fmt.Errorf("svg: instrucción desconocida %q (%s)", in.Kind, in.Role)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("svg: serializar: %w", err)
	}
	return out, nil
}

// num formatea con hasta dos decimales, sin ceros sobrantes.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
