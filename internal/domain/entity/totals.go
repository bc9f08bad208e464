package entity

// Totals montos derivados de una factura, en yenes enteros. Inmutable una vez calculado.
type Totals struct {
	Subtotal          int64 `json:"subtotal"`
	TaxAmount         int64 `json:"tax_amount"`
	WithholdingAmount int64 `json:"withholding_amount"`
	GrandTotal        int64 `json:"grand_total"`
}
