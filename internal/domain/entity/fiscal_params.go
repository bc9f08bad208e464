package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seikyusho-api/internal/domain"
)

// FeeBurden indica quién asume la comisión de transferencia bancaria (informativo).
type FeeBurden string

const (
	FeeBurdenIssuerPays FeeBurden = "issuer"
	FeeBurdenClientPays FeeBurden = "client"
)

// ParseFeeBurden convierte el valor recibido en la petición. Vacío = IssuerPays.
func ParseFeeBurden(s string) (FeeBurden, error) {
	switch FeeBurden(strings.ToLower(strings.TrimSpace(s))) {
	case "", FeeBurdenIssuerPays:
		return FeeBurdenIssuerPays, nil
	case FeeBurdenClientPays:
		return FeeBurdenClientPays, nil
	default:
		return "", fmt.Errorf("%w: fee_burden %q (usar 'issuer' o 'client')", domain.ErrInvalidInput, s)
	}
}

// FiscalParams parámetros fiscales y de presentación de una factura.
type FiscalParams struct {
	TaxRatePercent               int
	WithholdingEnabled           bool
	WithholdingRatePercent       decimal.Decimal // ej. 10.21 (源泉徴収)
	FeeBurden                    FeeBurden
	RegistrationNumberSuppressed bool
}

var hundred = decimal.NewFromInt(100)

// Validate exige tasas dentro de [0,100].
func (p FiscalParams) Validate() error {
	if p.TaxRatePercent < 0 || p.TaxRatePercent > 100 {
		return fmt.Errorf("%w: tasa de impuesto %d%% fuera de [0,100]", domain.ErrInvalidParameter, p.TaxRatePercent)
	}
	if p.WithholdingRatePercent.IsNegative() || p.WithholdingRatePercent.GreaterThan(hundred) {
		return fmt.Errorf("%w: tasa de retención %s%% fuera de [0,100]", domain.ErrInvalidParameter, p.WithholdingRatePercent.String())
	}
	return nil
}
