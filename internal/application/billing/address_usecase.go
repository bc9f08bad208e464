package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

// AddressUseCase autocompletado de direcciones a partir del código postal (郵便番号).
type AddressUseCase struct {
	lookup AddressLookup
	log    *logger.Logger
}

// NewAddressUseCase construye el caso de uso. Con lookup nil no se resuelve ninguna dirección.
func NewAddressUseCase(lookup AddressLookup, log *logger.Logger) *AddressUseCase {
	if lookup == nil {
		lookup = noLookup{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AddressUseCase{lookup: lookup, log: log}
}

// Lookup resuelve un código postal para el endpoint de autocompletado.
//
// Retorna:
//   - domain.ErrInvalidInput si el código no tiene 7 dígitos.
//   - domain.ErrNotFound     si no hay dirección registrada.
func (uc *AddressUseCase) Lookup(ctx context.Context, postalCode string) (*dto.AddressResponse, error) {
	code, ok := NormalizePostalCode(postalCode)
	if !ok {
		return nil, fmt.Errorf("%w: código postal %q", domain.ErrInvalidInput, postalCode)
	}
	addr, err := uc.lookup.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}
	if addr == "" {
		return nil, domain.ErrNotFound
	}
	return &dto.AddressResponse{PostalCode: FormatPostalCode(code), Address: addr}, nil
}

// Autofill devuelve la dirección del código postal o "" si no se puede resolver.
// Nunca falla: un error del directorio no debe impedir generar la factura.
func (uc *AddressUseCase) Autofill(ctx context.Context, postalCode string) string {
	code, ok := NormalizePostalCode(postalCode)
	if !ok {
		return ""
	}
	addr, err := uc.lookup.Resolve(ctx, code)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Warn().Err(err).Str("postal_code", code).Msg("autocompletado de dirección no disponible")
		}
		return ""
	}
	return addr
}

// NormalizePostalCode acepta "204-0023", "〒204-0023" o dígitos de ancho completo
// y devuelve los 7 dígitos ("2040023").
func NormalizePostalCode(s string) (string, bool) {
	s = width.Narrow.String(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '〒' || r == ' ':
		default:
			return "", false
		}
	}
	code := b.String()
	if len(code) != 7 {
		return "", false
	}
	return code, true
}

// FormatPostalCode "2040023" → "204-0023".
func FormatPostalCode(code string) string {
	if len(code) != 7 {
		return code
	}
	return code[:3] + "-" + code[3:]
}

type noLookup struct{}

func (noLookup) Resolve(context.Context, string) (string, error) { return "", domain.ErrNotFound }
