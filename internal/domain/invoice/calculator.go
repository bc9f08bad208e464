// Package invoice contiene el cálculo de totales de una factura (servicio de dominio puro).
//
// Política de redondeo: se suman los importes exactos de todas las líneas y se
// trunca una sola vez (subtotal). Impuesto y retención se calculan sobre ese
// subtotal entero y se truncan hacia cero. Ningún valor se deriva de otro ya
// redondeado salvo el subtotal, que es la base documentada de ambos.
package invoice

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MaxSubtotal tope del subtotal en yenes (999兆円). Con tasas en [0,100] el
// total con impuesto queda muy por debajo de math.MaxInt64.
const MaxSubtotal int64 = 999_999_999_999_999

var maxSubtotal = decimal.NewFromInt(MaxSubtotal)

// Compute calcula los totales de la factura.
//
//	Subtotal          = floor(Σ cantidad × precio)
//	TaxAmount         = floor(Subtotal × TaxRatePercent / 100)
//	WithholdingAmount = floor(Subtotal × WithholdingRatePercent / 100)  (solo si está activa)
//	GrandTotal        = Subtotal + TaxAmount − WithholdingAmount
//
// Una lista vacía devuelve totales en cero sin error. Un subtotal por encima
// de MaxSubtotal devuelve domain.ErrInvalidParameter.
func Compute(items []entity.LineItem, params entity.FiscalParams) (entity.Totals, error) {
	if err := params.Validate(); err != nil {
		return entity.Totals{}, err
	}
	var errs []error
	for i, item := range items {
		if err := item.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return entity.Totals{}, errors.Join(errs...)
	}

	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount())
	}
	if sum.Floor().GreaterThan(maxSubtotal) {
		return entity.Totals{}, fmt.Errorf("%w: subtotal %s円 supera el máximo de %d円",
			domain.ErrInvalidParameter, sum.Floor().String(), MaxSubtotal)
	}
	subtotal := sum.Floor().IntPart()

	tax := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(int64(params.TaxRatePercent))).
		Div(hundred).
		Floor().
		IntPart()

	var withholding int64
	if params.WithholdingEnabled {
		withholding = decimal.NewFromInt(subtotal).
			Mul(params.WithholdingRatePercent).
			Div(hundred).
			Floor().
			IntPart()
	}

	return entity.Totals{
		Subtotal:          subtotal,
		TaxAmount:         tax,
		WithholdingAmount: withholding,
		GrandTotal:        subtotal + tax - withholding,
	}, nil
}

// LineAmount importe de una línea para mostrar en la tabla (truncado).
// Es solo presentación: los totales nunca se recalculan a partir de este valor.
// Solo es válido para líneas de una factura que Compute aceptó.
func LineAmount(item entity.LineItem) int64 {
	return item.Amount().Floor().IntPart()
}
