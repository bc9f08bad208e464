package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/entity"
	"github.com/jhoicas/seikyusho-api/internal/domain/invoice"
)

func item(desc string, qty, price string) entity.LineItem {
	return entity.LineItem{
		Description: desc,
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func params(tax int) entity.FiscalParams {
	return entity.FiscalParams{TaxRatePercent: tax, FeeBurden: entity.FeeBurdenIssuerPays}
}

// ── Ejemplos de referencia ────────────────────────────────────────────────────

func TestCompute_ImpuestoDiezPorCiento(t *testing.T) {
	totals, err := invoice.Compute([]entity.LineItem{item("イラスト", "1", "20000")}, params(10))
	require.NoError(t, err)

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(2000), totals.TaxAmount)
	assert.Equal(t, int64(0), totals.WithholdingAmount)
	assert.Equal(t, int64(22000), totals.GrandTotal)
}

func TestCompute_ConRetencion(t *testing.T) {
	p := params(10)
	p.WithholdingEnabled = true
	p.WithholdingRatePercent = decimal.RequireFromString("10.21")

	totals, err := invoice.Compute([]entity.LineItem{item("イラスト", "1", "20000")}, p)
	require.NoError(t, err)

	assert.Equal(t, int64(20000), totals.Subtotal)
	assert.Equal(t, int64(2000), totals.TaxAmount)
	assert.Equal(t, int64(2042), totals.WithholdingAmount)
	assert.Equal(t, int64(19958), totals.GrandTotal)
}

// La tasa de retención se ignora si la retención no está activa.
func TestCompute_RetencionDesactivadaIgnoraTasa(t *testing.T) {
	p := params(10)
	p.WithholdingRatePercent = decimal.RequireFromString("10.21")

	totals, err := invoice.Compute([]entity.LineItem{item("x", "1", "20000")}, p)
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.WithholdingAmount)
	assert.Equal(t, int64(22000), totals.GrandTotal)
}

func TestCompute_ListaVaciaDevuelveCeros(t *testing.T) {
	totals, err := invoice.Compute(nil, params(10))
	require.NoError(t, err)
	assert.Equal(t, entity.Totals{}, totals)
}

// ── Redondeo ──────────────────────────────────────────────────────────────────

// Se suma primero y se trunca una sola vez: 3 × 0.5 = 1.5 → 1, no 0+0+0.
func TestCompute_SumaPrimeroRedondeaUnaVez(t *testing.T) {
	items := []entity.LineItem{
		item("a", "1", "0.5"),
		item("b", "1", "0.5"),
		item("c", "1", "0.5"),
	}
	totals, err := invoice.Compute(items, params(0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), totals.Subtotal)
}

func TestCompute_ImpuestoTruncado(t *testing.T) {
	totals, err := invoice.Compute([]entity.LineItem{item("x", "1", "999")}, params(10))
	require.NoError(t, err)
	assert.Equal(t, int64(99), totals.TaxAmount, "99.9 se trunca a 99")
	assert.Equal(t, int64(1098), totals.GrandTotal)
}

func TestCompute_ImporteExactoConEnteros(t *testing.T) {
	cases := []struct{ qty, price int64 }{
		{1, 0}, {3, 333}, {7, 142857}, {12, 98765}, {1000, 1},
	}
	for _, c := range cases {
		it := item("x", decimal.NewFromInt(c.qty).String(), decimal.NewFromInt(c.price).String())
		assert.Equal(t, c.qty*c.price, invoice.LineAmount(it))
		totals, err := invoice.Compute([]entity.LineItem{it}, params(0))
		require.NoError(t, err)
		assert.Equal(t, c.qty*c.price, totals.Subtotal)
	}
}

// El subtotal no depende del orden de las líneas.
func TestCompute_ConmutativoRespectoAlOrden(t *testing.T) {
	a := item("a", "2.5", "1000.3")
	b := item("b", "1", "0.9")
	c := item("c", "3", "333.33")

	p := params(8)
	t1, err := invoice.Compute([]entity.LineItem{a, b, c}, p)
	require.NoError(t, err)
	t2, err := invoice.Compute([]entity.LineItem{c, a, b}, p)
	require.NoError(t, err)
	t3, err := invoice.Compute([]entity.LineItem{b, c, a}, p)
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Equal(t, t1, t3)
}

func TestCompute_Determinista(t *testing.T) {
	items := []entity.LineItem{item("a", "1", "12345"), item("b", "2", "678")}
	p := params(10)
	t1, _ := invoice.Compute(items, p)
	t2, _ := invoice.Compute(items, p)
	assert.Equal(t, t1, t2)
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestCompute_ErrorTasaFueraDeRango(t *testing.T) {
	for _, rate := range []int{-1, 101} {
		_, err := invoice.Compute(nil, params(rate))
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, "tasa %d", rate)
	}
	for _, rate := range []int{0, 100} {
		_, err := invoice.Compute(nil, params(rate))
		assert.NoError(t, err, "tasa %d", rate)
	}
}

func TestCompute_ErrorRetencionFueraDeRango(t *testing.T) {
	for _, rate := range []string{"-0.01", "100.01"} {
		p := params(10)
		p.WithholdingEnabled = true
		p.WithholdingRatePercent = decimal.RequireFromString(rate)
		_, err := invoice.Compute(nil, p)
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, "retención %s", rate)
	}
	for _, rate := range []string{"0", "100"} {
		p := params(10)
		p.WithholdingEnabled = true
		p.WithholdingRatePercent = decimal.RequireFromString(rate)
		_, err := invoice.Compute([]entity.LineItem{item("a", "1", "1000")}, p)
		assert.NoError(t, err, "retención %s", rate)
	}
}

func TestCompute_RetencionDelCienPorCiento(t *testing.T) {
	p := params(10)
	p.WithholdingEnabled = true
	p.WithholdingRatePercent = decimal.NewFromInt(100)
	totals, err := invoice.Compute([]entity.LineItem{item("a", "1", "1000")}, p)
	require.NoError(t, err)
	assert.Equal(t, entity.Totals{Subtotal: 1000, TaxAmount: 100, WithholdingAmount: 1000, GrandTotal: 100}, totals)
}

func TestCompute_SubtotalMaximo(t *testing.T) {
	p := params(100)
	p.WithholdingEnabled = true
	p.WithholdingRatePercent = decimal.RequireFromString("10.21")

	totals, err := invoice.Compute([]entity.LineItem{item("tope", "1", "999999999999999.99")}, p)
	require.NoError(t, err)
	assert.Equal(t, invoice.MaxSubtotal, totals.Subtotal)
	assert.Equal(t, invoice.MaxSubtotal, totals.TaxAmount)
	assert.Positive(t, totals.GrandTotal)
}

func TestCompute_ErrorSubtotalExcedeMaximo(t *testing.T) {
	cases := map[string][]entity.LineItem{
		"precio enorme":       {item("a", "1", "1e19")},
		"justo sobre el tope": {item("a", "1", "1000000000000000")},
		"suma de líneas":      {item("a", "1", "999999999999999"), item("b", "1", "1")},
		"cantidad enorme":     {item("a", "9e18", "1")},
	}
	for name, items := range cases {
		totals, err := invoice.Compute(items, params(10))
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, name)
		assert.Equal(t, entity.Totals{}, totals, name)
	}
}

func TestCompute_ErrorCantidadNoPositiva(t *testing.T) {
	for _, qty := range []string{"0", "-1"} {
		_, err := invoice.Compute([]entity.LineItem{item("x", qty, "100")}, params(10))
		assert.ErrorIs(t, err, domain.ErrInvalidParameter, "cantidad %s", qty)
	}
}

func TestCompute_ErrorPrecioNegativo(t *testing.T) {
	_, err := invoice.Compute([]entity.LineItem{item("x", "1", "-5")}, params(10))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestCompute_ErrorIndicaLinea(t *testing.T) {
	items := []entity.LineItem{item("ok", "1", "10"), item("mal", "0", "10")}
	_, err := invoice.Compute(items, params(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}
