package layout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const dateLayout = "2006年01月02日"

// formatter formatea montos con separador de miles según la configuración regional japonesa.
type formatter struct {
	p *message.Printer
}

func newFormatter() formatter {
	return formatter{p: message.NewPrinter(language.Japanese)}
}

// yen 20000 → "20,000円".
func (f formatter) yen(n int64) string {
	return f.p.Sprintf("%d円", n)
}

// grouped 20000 → "20,000".
func (f formatter) grouped(n int64) string {
	return f.p.Sprintf("%d", n)
}

// decimal agrupa la parte entera y conserva la fracción exacta: 1234.5 → "1,234.5".
func (f formatter) decimal(d decimal.Decimal) string {
	if d.IsInteger() {
		return f.grouped(d.IntPart())
	}
	s := d.Abs().String()
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac = s[i:]
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + f.grouped(d.Abs().Truncate(0).IntPart()) + frac
}

func (f formatter) date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
