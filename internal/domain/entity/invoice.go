package entity

import "time"

// Footer datos de pago impresos al pie del documento.
type Footer struct {
	DueDate  time.Time
	BankInfo string
}

// InvoiceDocument es el documento a maquetar. Se construye por cada petición de
// generación, no se modifica después del layout y no se persiste.
type InvoiceDocument struct {
	Issuer    PartyInfo
	Client    PartyInfo
	IssueDate time.Time
	InvoiceID string // opcional; siempre viene del llamador, nunca se genera aquí
	Items     []LineItem
	Totals    Totals
	Footer    Footer
}
