package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
	"github.com/jhoicas/seikyusho-api/internal/domain/invoice"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

// GenerateConfig valores por defecto de la generación.
type GenerateConfig struct {
	DefaultTaxRate int                 // 消費税 cuando la petición no trae tasa
	Page           layout.PageGeometry // geometría cuando la entrada no trae una; cero = A4
}

// GenerateInput petición de generación ya decodificada.
type GenerateInput struct {
	Request dto.GenerateInvoiceRequest
	Page    *layout.PageGeometry // opcional
}

// GenerateResult documento maquetado listo para renderizar.
type GenerateResult struct {
	Document entity.InvoiceDocument
	Params   entity.FiscalParams
	Totals   entity.Totals
	Page     layout.PageGeometry
	Plan     layout.DrawPlan
}

// RenderedDocument salida de un renderizador con su nombre de archivo sugerido.
type RenderedDocument struct {
	Content     []byte
	ContentType string
	Filename    string
	Totals      entity.Totals
}

// GenerateUseCase orquesta cálculo de totales, maquetación y renderizado.
type GenerateUseCase struct {
	address   *AddressUseCase
	renderers map[Format]PageRenderer
	cfg       GenerateConfig
	log       *logger.Logger
	now       func() time.Time
}

// NewGenerateUseCase construye el caso de uso inyectando todas sus dependencias.
func NewGenerateUseCase(
	address *AddressUseCase,
	renderers map[Format]PageRenderer,
	cfg GenerateConfig,
	log *logger.Logger,
) *GenerateUseCase {
	if address == nil {
		address = NewAddressUseCase(nil, log)
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Page == (layout.PageGeometry{}) {
		cfg.Page = layout.A4()
	}
	return &GenerateUseCase{
		address:   address,
		renderers: renderers,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock fija el reloj usado como fecha de emisión por defecto.
func (uc *GenerateUseCase) WithClock(now func() time.Time) *GenerateUseCase {
	uc.now = now
	return uc
}

// Generate calcula los totales y el plan de dibujo de la factura.
//
// Retorna:
//   - domain.ErrInvalidInput     si faltan nombres, una fecha es inválida o fee_burden no se reconoce.
//   - domain.ErrEmptyInvoice     si la factura no tiene líneas.
//   - domain.ErrInvalidParameter si una tasa o una línea no es válida.
//   - domain.ErrContentOverflow  si el contenido no cabe en una página.
func (uc *GenerateUseCase) Generate(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	req := in.Request

	// ── 1. Parámetros fiscales ────────────────────────────────────────────────
	params, err := toParams(req, uc.cfg.DefaultTaxRate)
	if err != nil {
		return nil, err
	}

	// ── 2. Partes y fechas ────────────────────────────────────────────────────
	issuer := toParty(req.Issuer)
	client := toParty(req.Client)
	if issuer.Name == "" || client.Name == "" {
		return nil, fmt.Errorf("%w: el nombre del emisor y del destinatario son obligatorios", domain.ErrInvalidInput)
	}
	issueDate, err := parseDate("issue_date", req.IssueDate, uc.today())
	if err != nil {
		return nil, err
	}
	dueDate, err := parseDate("due_date", req.DueDate, time.Time{})
	if err != nil {
		return nil, err
	}

	// ── 3. Líneas ─────────────────────────────────────────────────────────────
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyInvoice
	}
	items, err := toItems(req.Items)
	if err != nil {
		return nil, err
	}

	// ── 4. Autocompletar direcciones vacías ───────────────────────────────────
	uc.autofill(ctx, &issuer)
	uc.autofill(ctx, &client)

	// ── 5. Totales + layout ───────────────────────────────────────────────────
	totals, err := invoice.Compute(items, params)
	if err != nil {
		return nil, err
	}
	doc := entity.InvoiceDocument{
		Issuer:    issuer,
		Client:    client,
		IssueDate: issueDate,
		InvoiceID: strings.TrimSpace(req.InvoiceID),
		Items:     items,
		Totals:    totals,
		Footer: entity.Footer{
			DueDate:  dueDate,
			BankInfo: strings.TrimSpace(req.BankInfo),
		},
	}

	page := uc.cfg.Page
	if in.Page != nil {
		page = *in.Page
	}
	plan, err := layout.Layout(doc, params, page)
	if err != nil {
		return nil, err
	}

	uc.log.Debug().
		Int("items", len(items)).
		Int64("grand_total", totals.GrandTotal).
		Int("instructions", len(plan.Instructions)).
		Msg("factura maquetada")

	return &GenerateResult{
		Document: doc,
		Params:   params,
		Totals:   totals,
		Page:     page,
		Plan:     plan,
	}, nil
}

// Render genera la factura y la dibuja con el renderizador del formato pedido.
func (uc *GenerateUseCase) Render(ctx context.Context, in GenerateInput, format Format) (*RenderedDocument, error) {
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	res, err := uc.Generate(ctx, in)
	if err != nil {
		return nil, err
	}
	content, err := renderer.Render(ctx, res.Plan, res.Page)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return &RenderedDocument{
		Content:     content,
		ContentType: renderer.ContentType(),
		Filename:    Filename(res.Document.Client.Name, renderer.Extension()),
		Totals:      res.Totals,
	}, nil
}

func (uc *GenerateUseCase) autofill(ctx context.Context, p *entity.PartyInfo) {
	if p.HasAddress() || p.PostalCode == "" {
		return
	}
	if addr := uc.address.Autofill(ctx, p.PostalCode); addr != "" {
		p.AddressLines = []string{addr}
	}
}

func (uc *GenerateUseCase) today() time.Time {
	y, m, d := uc.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Filename nombre de descarga: 請求書_<destinatario>.<ext>.
func Filename(clientName, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(clientName))
	if name == "" {
		return "請求書." + ext
	}
	return "請求書_" + name + "." + ext
}
