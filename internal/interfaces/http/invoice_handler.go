package http

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/application/dto"
)

// InvoiceHandler maneja la generación de facturas (sin estado: nada se persiste).
type InvoiceHandler struct {
	uc *billing.GenerateUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.GenerateUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Preview godoc
// @Summary      Calcular totales y plan de dibujo
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GenerateInvoiceRequest  true  "emisor, destinatario, líneas y parámetros fiscales"
// @Success      200   {object}  dto.PreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/preview [post]
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.uc.Generate(c.UserContext(), billing.GenerateInput{Request: in})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PreviewResponse{Totals: res.Totals, Page: res.Page, Plan: res.Plan})
}

// PDF godoc
// @Summary      Descargar la factura en PDF
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.GenerateInvoiceRequest  true  "emisor, destinatario, líneas y parámetros fiscales"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/pdf [post]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	return h.render(c, billing.FormatPDF, "attachment")
}

// SVG godoc
// @Summary      Vista previa de la factura en SVG
// @Tags         invoices
// @Accept       json
// @Produce      image/svg+xml
// @Param        body  body  dto.GenerateInvoiceRequest  true  "emisor, destinatario, líneas y parámetros fiscales"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/invoices/svg [post]
func (h *InvoiceHandler) SVG(c *fiber.Ctx) error {
	return h.render(c, billing.FormatSVG, "inline")
}

func (h *InvoiceHandler) render(c *fiber.Ctx, format billing.Format, disposition string) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Render(c.UserContext(), billing.GenerateInput{Request: in}, format)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(disposition, out.Filename, string(format)))
	c.Set("X-Invoice-Grand-Total", strconv.FormatInt(out.Totals.GrandTotal, 10))
	return c.Send(out.Content)
}

// contentDisposition nombre ASCII de respaldo + nombre UTF-8 (RFC 5987) para 請求書_<cliente>.
func contentDisposition(kind, filename, ext string) string {
	return fmt.Sprintf(`%s; filename="invoice.%s"; filename*=UTF-8''%s`, kind, ext, url.PathEscape(filename))
}
