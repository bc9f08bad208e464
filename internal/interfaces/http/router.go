package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/seikyusho-api/docs" // registra la especificación en swag

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

// bodyLimit las peticiones son JSON pequeños; 1 MiB cubre de sobra una página.
const bodyLimit = 1 << 20

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	Generate *billing.GenerateUseCase
	Address  *billing.AddressUseCase
	Limiter  *IPRateLimiter // nil = sin límite
	Log      *logger.Logger
}

// NewApp construye la aplicación Fiber con la configuración común (timeouts,
// recover y errores de Fiber como dto.ErrorResponse).
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		BodyLimit:    bodyLimit,
		UnescapePath: true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(code), Message: err.Error()})
		},
	})
	app.Use(recover.New())
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestLogging(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName})
	})

	api := app.Group("/api")

	// Especificación OpenAPI servida desde el registro de swag (la UI vive en /docs)
	api.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	// Generación (limitada por IP: cada petición renderiza un documento completo)
	invoices := api.Group("/invoices")
	if deps.Limiter != nil {
		invoices.Use(deps.Limiter.Middleware())
	}
	invoiceHandler := NewInvoiceHandler(deps.Generate)
	invoices.Post("/preview", invoiceHandler.Preview)
	invoices.Post("/pdf", invoiceHandler.PDF)
	invoices.Post("/svg", invoiceHandler.SVG)

	// Autocompletado de direcciones
	addressHandler := NewAddressHandler(deps.Address)
	api.Get("/address/:postalCode", addressHandler.Lookup)
}
