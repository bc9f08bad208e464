package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
)

// GenerateInvoiceRequest body para POST /api/invoices/{preview,pdf,svg}.
// Las fechas van en formato YYYY-MM-DD.
type GenerateInvoiceRequest struct {
	Issuer    PartyRequest      `json:"issuer"`
	Client    PartyRequest      `json:"client"`
	IssueDate string            `json:"issue_date"`
	DueDate   string            `json:"due_date,omitempty"`
	InvoiceID string            `json:"invoice_id,omitempty"` // opcional; nunca se genera en el servidor
	BankInfo  string            `json:"bank_info,omitempty"`
	Items     []LineItemRequest `json:"items"`

	TaxRatePercent             *int             `json:"tax_rate_percent,omitempty"` // nil = DEFAULT_TAX_RATE
	WithholdingEnabled         bool             `json:"withholding_enabled"`
	WithholdingRatePercent     *decimal.Decimal `json:"withholding_rate_percent,omitempty"` // nil = 10.21
	FeeBurden                  string           `json:"fee_burden,omitempty"`               // "issuer" | "client"
	SuppressRegistrationNumber bool             `json:"suppress_registration_number"`
}

// PartyRequest emisor o destinatario.
type PartyRequest struct {
	Name               string   `json:"name"`
	PostalCode         string   `json:"postal_code,omitempty"`
	AddressLines       []string `json:"address_lines,omitempty"`
	RegistrationNumber string   `json:"registration_number,omitempty"`
}

// LineItemRequest línea de la factura. Cantidad y precio admiten decimales ("1.5").
type LineItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Unit        string          `json:"unit,omitempty"`
}

// PreviewResponse totales y plan de dibujo para POST /api/invoices/preview.
type PreviewResponse struct {
	Totals entity.Totals       `json:"totals"`
	Page   layout.PageGeometry `json:"page"`
	Plan   layout.DrawPlan     `json:"plan"`
}

// AddressResponse resultado de GET /api/address/:postalCode.
type AddressResponse struct {
	PostalCode string `json:"postal_code"`
	Address    string `json:"address"`
}
