package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

var _ billing.PageRenderer = (*GofpdfRenderer)(nil)

const ruleWidth = 0.5 // pt

// GofpdfRenderer dibuja el plan con posiciones absolutas exactas (unidad: punto).
type GofpdfRenderer struct {
	family string
	font   []byte // nil = fuente base
	now    func() time.Time
}

// NewGofpdfRenderer carga la fuente una sola vez; cada Render crea su propio documento.
func NewGofpdfRenderer(font FontConfig, log *logger.Logger) (*GofpdfRenderer, error) {
	if log == nil {
		log = logger.Nop()
	}
	data, err := loadFont(font, log)
	if err != nil {
		return nil, err
	}
	family := font.Family
	if data == nil || family == "" {
		family = fallbackFamily
	}
	return &GofpdfRenderer{family: family, font: data, now: time.Now}, nil
}

// WithClock fija la fecha de creación del PDF (salida reproducible).
func (r *GofpdfRenderer) WithClock(now func() time.Time) *GofpdfRenderer {
	r.now = now
	return r
}

func (r *GofpdfRenderer) ContentType() string { return "application/pdf" }
func (r *GofpdfRenderer) Extension() string   { return "pdf" }

// Render genera una página con todas las instrucciones del plan.
func (r *GofpdfRenderer) Render(ctx context.Context, plan layout.DrawPlan, page layout.PageGeometry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetMargins(page.MarginLeft, page.MarginTop, page.MarginRight)
	doc.SetAutoPageBreak(false, page.MarginBottom)
	doc.SetCreationDate(r.now())
	doc.SetCatalogSort(true)
	doc.SetTitle("請求書", true)
	doc.SetCreator("seikyusho-api", true)

	tr := func(s string) string { return s }
	if r.font != nil {
		doc.AddUTF8FontFromBytes(r.family, "", r.font)
	} else {
		tr = doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.AddPage()
	doc.SetLineWidth(ruleWidth)

	for _, in := range plan.Instructions {
		// El plan usa origen inferior izquierdo; gofpdf mide desde arriba.
		top := page.Height - in.Y
		switch in.Kind {
		case layout.KindText:
			doc.SetFont(r.family, "", in.FontSize)
			text := tr(in.Text)
			x := in.X
			if in.Align == layout.AlignCenter {
				x -= doc.GetStringWidth(text) / 2
			}
			doc.Text(x, top, text)
		case layout.KindRule:
			doc.Line(in.X, top, in.X2, top)
		default:
			return nil, fmt.Errorf("pdf: instrucción desconocida %q (%s)", in.Kind, in.Role)
		}
		if doc.Err() {
			return nil, fmt.Errorf("pdf: dibujar %s: %w", in.Role, doc.Error())
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return buf.Bytes(), nil
}
