package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	infrapdf "github.com/jhoicas/seikyusho-api/internal/infrastructure/pdf"
	"github.com/jhoicas/seikyusho-api/internal/infrastructure/postgres"
	infrasvg "github.com/jhoicas/seikyusho-api/internal/infrastructure/svg"
	httpRouter "github.com/jhoicas/seikyusho-api/internal/interfaces/http"
	"github.com/jhoicas/seikyusho-api/pkg/config"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("renderer", cfg.PDF.Renderer).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Directorio postal opcional: sin base de datos el autocompletado queda deshabilitado.
	var lookup billing.AddressLookup
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		lookup = postgres.NewPostalCodeRepository(pool)
	} else {
		log.Warn().Msg("DATABASE_URL no definido: autocompletado de direcciones deshabilitado")
	}
	addressUC := billing.NewAddressUseCase(lookup, log)

	pdfRenderer, err := newPDFRenderer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("renderizador PDF")
	}
	generateUC := billing.NewGenerateUseCase(addressUC, map[billing.Format]billing.PageRenderer{
		billing.FormatPDF: pdfRenderer,
		billing.FormatSVG: infrasvg.NewRenderer(""),
	}, billing.GenerateConfig{DefaultTaxRate: cfg.Billing.DefaultTaxRate}, log)

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Seikyusho API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		Generate: generateUC,
		Address:  addressUC,
		Limiter: httpRouter.NewIPRateLimiter(ctx, httpRouter.RateLimiterConfig{
			RequestsPerSecond: cfg.RateLimit.RPS,
			Burst:             cfg.RateLimit.Burst,
		}),
		Log: log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newPDFRenderer(cfg *config.Config, log *logger.Logger) (billing.PageRenderer, error) {
	font := infrapdf.FontConfig{Path: cfg.PDF.FontPath, Family: cfg.PDF.FontFamily}
	if cfg.PDF.Renderer == "maroto" {
		return infrapdf.NewMarotoRenderer(font, log)
	}
	return infrapdf.NewGofpdfRenderer(font, log)
}
