package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/domain"
)

var _ billing.AddressLookup = (*PostalCodeRepo)(nil)

// PostalCodeRepo directorio de códigos postales (tabla postal_codes).
type PostalCodeRepo struct {
	q Querier
}

// NewPostalCodeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPostalCodeRepository(q Querier) *PostalCodeRepo {
	return &PostalCodeRepo{q: q}
}

// PostalArea una fila del directorio.
type PostalArea struct {
	Code       string
	Prefecture string
	City       string
	Town       string
}

// Resolve devuelve la dirección (都道府県 + 市区町村 + 町域) de un código de 7 dígitos.
// Si el código cubre varios barrios devuelve solo la parte común.
func (r *PostalCodeRepo) Resolve(ctx context.Context, postalCode string) (string, error) {
	areas, err := r.ListByCode(ctx, postalCode)
	if err != nil {
		return "", err
	}
	if len(areas) == 0 {
		return "", domain.ErrNotFound
	}
	return commonAddress(areas), nil
}

// ListByCode lista todas las áreas de un código, ordenadas por barrio.
func (r *PostalCodeRepo) ListByCode(ctx context.Context, postalCode string) ([]PostalArea, error) {
	query := `
		SELECT code, prefecture, city, town
		FROM postal_codes WHERE code = $1
		ORDER BY prefecture, city, town`
	rows, err := r.q.Query(ctx, query, postalCode)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("postal_codes no existe (ejecutar migraciones): %w", err)
		}
		return nil, fmt.Errorf("list postal codes: %w", err)
	}
	defer rows.Close()

	var out []PostalArea
	for rows.Next() {
		var a PostalArea
		if err := rows.Scan(&a.Code, &a.Prefecture, &a.City, &a.Town); err != nil {
			return nil, fmt.Errorf("scan postal code: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate postal codes: %w", err)
	}
	return out, nil
}

// commonAddress une prefectura, municipio y barrio; descarta lo que difiere entre filas.
func commonAddress(areas []PostalArea) string {
	first := areas[0]
	prefecture, city, town := first.Prefecture, first.City, first.Town
	for _, a := range areas[1:] {
		if a.Prefecture != prefecture {
			return ""
		}
		if a.City != city {
			city, town = "", ""
		}
		if a.Town != town {
			town = ""
		}
	}
	return prefecture + city + town
}
