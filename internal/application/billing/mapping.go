package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
)

const requestDateLayout = "2006-01-02"

// DefaultWithholdingRate tasa de 源泉徴収 para honorarios hasta 1.000.000 yenes.
var DefaultWithholdingRate = decimal.RequireFromString("10.21")

// toParams traduce la petición a parámetros fiscales aplicando los valores por defecto.
func toParams(req dto.GenerateInvoiceRequest, defaultTaxRate int) (entity.FiscalParams, error) {
	fee, err := entity.ParseFeeBurden(req.FeeBurden)
	if err != nil {
		return entity.FiscalParams{}, err
	}
	params := entity.FiscalParams{
		TaxRatePercent:               defaultTaxRate,
		WithholdingEnabled:           req.WithholdingEnabled,
		WithholdingRatePercent:       DefaultWithholdingRate,
		FeeBurden:                    fee,
		RegistrationNumberSuppressed: req.SuppressRegistrationNumber,
	}
	if req.TaxRatePercent != nil {
		params.TaxRatePercent = *req.TaxRatePercent
	}
	if req.WithholdingRatePercent != nil {
		params.WithholdingRatePercent = *req.WithholdingRatePercent
	}
	return params, nil
}

// toItems construye las líneas; devuelve todos los errores juntos, prefijados con el número de línea.
func toItems(in []dto.LineItemRequest) ([]entity.LineItem, error) {
	items := make([]entity.LineItem, 0, len(in))
	var errs []error
	for i, r := range in {
		item, err := entity.NewLineItem(r.Description, r.Quantity, r.UnitPrice, r.Unit)
		if err != nil {
			errs = append(errs, fmt.Errorf("línea %d: %w", i+1, err))
			continue
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return items, nil
}

func toParty(r dto.PartyRequest) entity.PartyInfo {
	lines := make([]string, 0, len(r.AddressLines))
	for _, l := range r.AddressLines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return entity.PartyInfo{
		Name:               strings.TrimSpace(r.Name),
		PostalCode:         strings.TrimSpace(r.PostalCode),
		AddressLines:       lines,
		RegistrationNumber: strings.TrimSpace(r.RegistrationNumber),
	}
}

// parseDate acepta YYYY-MM-DD. Vacío devuelve el valor por defecto recibido.
func parseDate(field, s string, def time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	t, err := time.Parse(requestDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, field, s)
	}
	return t, nil
}
