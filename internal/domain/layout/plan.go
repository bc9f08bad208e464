package layout

// Kind tipo de instrucción de dibujo.
type Kind string

const (
	KindText Kind = "text"
	KindRule Kind = "rule"
)

// Align alineación horizontal de un texto respecto a X.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Roles estables de cada instrucción; permiten a renderizadores y tests
// localizar elementos sin depender de coordenadas.
const (
	RoleIssuerPostalCode   = "issuer.postal_code"
	RoleIssuerAddress      = "issuer.address"
	RoleIssuerRegistration = "issuer.registration_number"
	RoleIssuerName         = "issuer.name"
	RoleIssueDate          = "issuer.issue_date"
	RoleInvoiceID          = "issuer.invoice_id"

	RoleClientPostalCode = "client.postal_code"
	RoleClientAddress    = "client.address"
	RoleClientName       = "client.name"

	RoleTitle           = "title"
	RoleLead            = "amount.lead"
	RoleRequestedAmount = "amount.requested"
	RoleAmountCaption   = "amount.caption"

	RoleTableRule   = "table.rule"
	RoleTableHeader = "table.header"
	RoleItemCell    = "item.cell"

	RoleSubtotal    = "totals.subtotal"
	RoleTax         = "totals.tax"
	RoleWithholding = "totals.withholding"
	RoleGrandTotal  = "totals.grand_total"

	RoleTransferRequest = "footer.transfer_request"
	RoleDueDate         = "footer.due_date"
	RoleBankInfo        = "footer.bank_info"
	RoleFeeNotice       = "footer.fee_notice"
)

// Instruction primitiva de dibujo ya posicionada. Para KindText se usan X, Y,
// FontSize, Text y Align; para KindRule una línea horizontal de (X, Y) a (X2, Y).
type Instruction struct {
	Kind     Kind    `json:"kind"`
	Role     string  `json:"role"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	X2       float64 `json:"x2,omitempty"`
	FontSize float64 `json:"font_size,omitempty"`
	Text     string  `json:"text,omitempty"`
	Align    Align   `json:"align,omitempty"`
}

// PlaceText construye una instrucción de texto.
func PlaceText(role string, x, y, fontSize float64, text string, align Align) Instruction {
	return Instruction{Kind: KindText, Role: role, X: x, Y: y, FontSize: fontSize, Text: text, Align: align}
}

// DrawRule construye una línea horizontal.
func DrawRule(role string, x1, y, x2 float64) Instruction {
	return Instruction{Kind: KindRule, Role: role, X: x1, Y: y, X2: x2}
}

// DrawPlan secuencia ordenada de instrucciones que consume un renderizador.
type DrawPlan struct {
	Instructions []Instruction `json:"instructions"`
}

// Find devuelve la primera instrucción con el rol indicado.
func (p DrawPlan) Find(role string) (Instruction, bool) {
	for _, in := range p.Instructions {
		if in.Role == role {
			return in, true
		}
	}
	return Instruction{}, false
}

// FindAll devuelve todas las instrucciones con el rol indicado, en orden.
func (p DrawPlan) FindAll(role string) []Instruction {
	var out []Instruction
	for _, in := range p.Instructions {
		if in.Role == role {
			out = append(out, in)
		}
	}
	return out
}
