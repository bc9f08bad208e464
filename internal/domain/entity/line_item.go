package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seikyusho-api/internal/domain"
)

// LineItem representa una línea facturable (品目). El importe no se almacena:
// siempre se deriva de Quantity × UnitPrice en el momento de calcular.
type LineItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Unit        string // opcional, ej. "式", "時間"; se imprime junto a la cantidad
}

// NewLineItem construye una línea validando sus invariantes.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal, unit string) (LineItem, error) {
	item := LineItem{
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Unit:        strings.TrimSpace(unit),
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Validate comprueba descripción no vacía, cantidad > 0 y precio unitario >= 0.
func (i LineItem) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return fmt.Errorf("%w: descripción vacía", domain.ErrInvalidParameter)
	}
	if !i.Quantity.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: cantidad %s debe ser mayor que cero", domain.ErrInvalidParameter, i.Quantity.String())
	}
	if i.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: precio unitario %s negativo", domain.ErrInvalidParameter, i.UnitPrice.String())
	}
	return nil
}

// Amount devuelve el importe exacto (sin redondeo) de la línea.
func (i LineItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}
