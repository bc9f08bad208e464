package billing

import (
	"context"

	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
)

// AddressLookup resuelve un código postal japonés (ej. "2040023") a la dirección
// de prefectura + municipio + barrio. Retorna domain.ErrNotFound si no existe.
type AddressLookup interface {
	Resolve(ctx context.Context, postalCode string) (string, error)
}

// PageRenderer dibuja un plan ya maquetado. No decide posiciones: solo ejecuta
// las instrucciones sobre la geometría recibida.
type PageRenderer interface {
	Render(ctx context.Context, plan layout.DrawPlan, page layout.PageGeometry) ([]byte, error)
	ContentType() string
	Extension() string
}

// Format formato de salida solicitado.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatSVG Format = "svg"
)
