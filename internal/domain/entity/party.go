package entity

// PartyInfo datos de emisor o destinatario. El código postal es texto libre:
// no se valida contra ningún registro externo.
type PartyInfo struct {
	Name               string
	PostalCode         string
	AddressLines       []string
	RegistrationNumber string // 登録番号 (T + 13 dígitos); solo se usa para el emisor
}

// HasAddress indica si hay al menos una línea de dirección no vacía.
func (p PartyInfo) HasAddress() bool {
	for _, l := range p.AddressLines {
		if l != "" {
			return true
		}
	}
	return false
}
