package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
)

// AddressHandler autocompletado de direcciones por código postal.
type AddressHandler struct {
	uc *billing.AddressUseCase
}

// NewAddressHandler construye el handler.
func NewAddressHandler(uc *billing.AddressUseCase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// Lookup godoc
// @Summary      Dirección a partir del código postal
// @Tags         address
// @Produce      json
// @Param        postalCode  path      string  true  "código postal (ej. 204-0023)"
// @Success      200         {object}  dto.AddressResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Failure      404         {object}  dto.ErrorResponse
// @Router       /api/address/{postalCode} [get]
func (h *AddressHandler) Lookup(c *fiber.Ctx) error {
	res, err := h.uc.Lookup(c.UserContext(), c.Params("postalCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
