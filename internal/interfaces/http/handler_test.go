package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/internal/domain"
	"github.com/jhoicas/seikyusho-api/internal/domain/layout"
	apphttp "github.com/jhoicas/seikyusho-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type stubRenderer struct {
	contentType, ext string
}

func (s stubRenderer) Render(_ context.Context, plan layout.DrawPlan, _ layout.PageGeometry) ([]byte, error) {
	return []byte(s.ext + ":" + plan.Instructions[0].Role), nil
}
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Extension() string   { return s.ext }

type mapLookup map[string]string

func (m mapLookup) Resolve(_ context.Context, code string) (string, error) {
	if a, ok := m[code]; ok {
		return a, nil
	}
	return "", domain.ErrNotFound
}

// buildTestApp aplicación completa con renderizadores falsos y sin base de datos.
func buildTestApp(limiter *apphttp.IPRateLimiter) *fiber.App {
	address := billing.NewAddressUseCase(mapLookup{"2040023": "東京都清瀬市竹丘"}, nil)
	generate := billing.NewGenerateUseCase(address, map[billing.Format]billing.PageRenderer{
		billing.FormatPDF: stubRenderer{contentType: "application/pdf", ext: "pdf"},
		billing.FormatSVG: stubRenderer{contentType: "image/svg+xml", ext: "svg"},
	}, billing.GenerateConfig{DefaultTaxRate: 10}, nil)

	app := apphttp.NewApp("seikyusho-test")
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:  "seikyusho-test",
		Generate: generate,
		Address:  address,
		Limiter:  limiter,
	})
	return app
}

func sampleBody() map[string]any {
	return map[string]any{
		"issuer": map[string]any{
			"name":                "横内 拓馬",
			"postal_code":         "204-0023",
			"address_lines":       []string{"東京都清瀬市竹丘2-33-23"},
			"registration_number": "T1234567890123",
		},
		"client": map[string]any{
			"name":          "株式会社 アットファンズ・マーケティング",
			"postal_code":   "150-0043",
			"address_lines": []string{"東京都渋谷区道玄坂1-21-1", "SHIBUYA SOLASTA 3F"},
		},
		"issue_date": "2025-12-15",
		"due_date":   "2026-01-31",
		"bank_info":  "みずほ銀行清瀬支店 普通 1228611",
		"items": []map[string]any{
			{"description": "請負成果物一式(イラスト)", "quantity": "1", "unit_price": 20000, "unit": "式"},
		},
	}
}

func post(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, ok := body.([]byte)
	if !ok {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func get(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/invoices/preview
// ──────────────────────────────────────────────────────────────────────────────

func TestPreview_DevuelveTotalesYPlan(t *testing.T) {
	resp := post(t, buildTestApp(nil), "/api/invoices/preview", sampleBody())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.PreviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(20000), body.Totals.Subtotal)
	assert.Equal(t, int64(2000), body.Totals.TaxAmount)
	assert.Equal(t, int64(22000), body.Totals.GrandTotal)
	assert.Equal(t, layout.A4(), body.Page)

	title, ok := body.Plan.Find(layout.RoleTitle)
	require.True(t, ok)
	assert.Equal(t, "御 請 求 書", title.Text)
}

func TestPreview_Retencion(t *testing.T) {
	body := sampleBody()
	body["withholding_enabled"] = true
	body["withholding_rate_percent"] = "10.21"

	resp := post(t, buildTestApp(nil), "/api/invoices/preview", body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.PreviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(2042), out.Totals.WithholdingAmount)
	assert.Equal(t, int64(19958), out.Totals.GrandTotal)
}

func TestPreview_Errores(t *testing.T) {
	tooMany := sampleBody()
	items := make([]map[string]any, 40)
	for i := range items {
		items[i] = map[string]any{"description": "作業", "quantity": 1, "unit_price": 100}
	}
	tooMany["items"] = items

	empty := sampleBody()
	empty["items"] = []any{}

	badRate := sampleBody()
	badRate["tax_rate_percent"] = 101

	badQty := sampleBody()
	badQty["items"] = []map[string]any{{"description": "x", "quantity": 0, "unit_price": 1}}

	badFee := sampleBody()
	badFee["fee_burden"] = "bank"

	cases := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"JSON inválido", []byte("{"), http.StatusBadRequest, "INVALID_BODY"},
		{"sin líneas", empty, http.StatusUnprocessableEntity, "EMPTY_INVOICE"},
		{"tasa fuera de rango", badRate, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", badQty, http.StatusBadRequest, "VALIDATION"},
		{"fee_burden desconocido", badFee, http.StatusBadRequest, "VALIDATION"},
		{"desbordamiento", tooMany, http.StatusUnprocessableEntity, "CONTENT_OVERFLOW"},
	}
	app := buildTestApp(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := post(t, app, "/api/invoices/preview", tc.body)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/invoices/{pdf,svg}
// ──────────────────────────────────────────────────────────────────────────────

func TestPDF_Adjunto(t *testing.T) {
	resp := post(t, buildTestApp(nil), "/api/invoices/pdf", sampleBody())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	cd := resp.Header.Get("Content-Disposition")
	assert.Contains(t, cd, "attachment;")
	assert.Contains(t, cd, `filename="invoice.pdf"`)
	assert.Contains(t, cd, "filename*=UTF-8''%E8%AB%8B%E6%B1%82%E6%9B%B8_")
	assert.Equal(t, "22000", resp.Header.Get("X-Invoice-Grand-Total"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "pdf:"+layout.RoleIssuerPostalCode, string(raw))
}

func TestSVG_EnLinea(t *testing.T) {
	resp := post(t, buildTestApp(nil), "/api/invoices/svg", sampleBody())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inline;")
}

func TestPDF_ErrorDeDominio(t *testing.T) {
	body := sampleBody()
	body["items"] = []any{}
	resp := post(t, buildTestApp(nil), "/api/invoices/pdf", body)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.NotEqual(t, "application/pdf", resp.Header.Get("Content-Type"), "no se devuelve documento parcial")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/address/:postalCode
// ──────────────────────────────────────────────────────────────────────────────

func TestAddress(t *testing.T) {
	app := buildTestApp(nil)

	resp := get(t, app, "/api/address/204-0023")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body dto.AddressResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, dto.AddressResponse{PostalCode: "204-0023", Address: "東京都清瀬市竹丘"}, body)

	notFound := get(t, app, "/api/address/999-9999")
	defer notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)

	invalid := get(t, app, "/api/address/12345")
	defer invalid.Body.Close()
	assert.Equal(t, http.StatusBadRequest, invalid.StatusCode)
}

func TestAddress_CodigoCodificadoEnURL(t *testing.T) {
	app := buildTestApp(nil)
	for _, raw := range []string{"〒204-0023", "２０４－００２３"} {
		resp := get(t, app, "/api/address/"+url.PathEscape(raw))
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, raw)
		var body dto.AddressResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "東京都清瀬市竹丘", body.Address, raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Middlewares
// ──────────────────────────────────────────────────────────────────────────────

func TestHealthYRequestID(t *testing.T) {
	app := buildTestApp(nil)

	resp := get(t, app, "/health")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36, "se genera un UUID")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp2, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, "abc-123", resp2.Header.Get(apphttp.HeaderRequestID))
}

func TestRutaInexistente(t *testing.T) {
	resp := get(t, buildTestApp(nil), "/api/nada")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "HTTP_404", decodeError(t, resp).Code)
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := apphttp.NewIPRateLimiter(ctx, apphttp.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		Burst:             1,
		CleanupInterval:   time.Hour,
	})
	app := buildTestApp(limiter)

	first := post(t, app, "/api/invoices/preview", sampleBody())
	defer first.Body.Close()
	assert.Equal(t, http.StatusOK, first.StatusCode)

	second := post(t, app, "/api/invoices/preview", sampleBody())
	defer second.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, second).Code)
	assert.Equal(t, 1, limiter.Size())

	// El autocompletado no está limitado.
	addr := get(t, app, "/api/address/204-0023")
	defer addr.Body.Close()
	assert.Equal(t, http.StatusOK, addr.StatusCode)
}

func TestOpenAPI(t *testing.T) {
	resp := get(t, buildTestApp(nil), "/api/openapi.json")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc["swagger"])
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/api/invoices/pdf")
	assert.Contains(t, paths, "/api/address/{postalCode}")
}
