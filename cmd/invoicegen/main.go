// invoicegen genera facturas (請求書) desde la línea de comandos a partir de un
// archivo JSON con el mismo formato que POST /api/invoices/pdf.
//
// Uso:
//
//	invoicegen generate -i factura.json [-o salida.pdf] [--format svg]
//	invoicegen preview  -i factura.json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/jhoicas/seikyusho-api/internal/application/billing"
	"github.com/jhoicas/seikyusho-api/internal/application/dto"
	infrapdf "github.com/jhoicas/seikyusho-api/internal/infrastructure/pdf"
	"github.com/jhoicas/seikyusho-api/internal/infrastructure/postgres"
	infrasvg "github.com/jhoicas/seikyusho-api/internal/infrastructure/svg"
	"github.com/jhoicas/seikyusho-api/pkg/config"
	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	inputFlag := &cli.StringFlag{
		Name:     "input",
		Aliases:  []string{"i"},
		Usage:    "archivo JSON de la factura (\"-\" = stdin)",
		Required: true,
	}
	return &cli.App{
		Name:  "invoicegen",
		Usage: "genera facturas japonesas (請求書) en PDF o SVG",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "tax-rate", Usage: "消費税 por defecto (%)", EnvVars: []string{"DEFAULT_TAX_RATE"}, Value: 10},
			&cli.StringFlag{Name: "font", Usage: "TTF con glifos japoneses", EnvVars: []string{"PDF_FONT_PATH"}, Value: "ipaexg.ttf"},
			&cli.StringFlag{Name: "font-family", EnvVars: []string{"PDF_FONT_FAMILY"}, Value: "ipaexg"},
			&cli.StringFlag{Name: "renderer", Usage: "gofpdf | maroto", EnvVars: []string{"PDF_RENDERER"}, Value: "gofpdf"},
			&cli.StringFlag{Name: "database-url", Usage: "directorio postal para autocompletar direcciones", EnvVars: []string{"DATABASE_URL"}},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}},
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "escribe el documento en disco",
				Flags: []cli.Flag{
					inputFlag,
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "ruta de salida (por defecto 請求書_<cliente>.<ext>)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "pdf | svg", Value: string(billing.FormatPDF)},
				},
				Action: generateAction,
			},
			{
				Name:   "preview",
				Usage:  "imprime totales y plan de dibujo en JSON",
				Flags:  []cli.Flag{inputFlag},
				Action: previewAction,
			},
		},
	}
}

func generateAction(c *cli.Context) error {
	uc, cleanup, err := buildUseCase(c)
	if err != nil {
		return err
	}
	defer cleanup()

	req, err := readRequest(c)
	if err != nil {
		return err
	}
	out, err := uc.Render(c.Context, billing.GenerateInput{Request: req}, billing.Format(c.String("format")))
	if err != nil {
		return err
	}

	path := c.String("output")
	if path == "" {
		path = out.Filename
	}
	if err := os.WriteFile(path, out.Content, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	abs, _ := filepath.Abs(path)
	fmt.Fprintf(c.App.Writer, "%s (総計 %d円)\n", abs, out.Totals.GrandTotal)
	return nil
}

func previewAction(c *cli.Context) error {
	uc, cleanup, err := buildUseCase(c)
	if err != nil {
		return err
	}
	defer cleanup()

	req, err := readRequest(c)
	if err != nil {
		return err
	}
	res, err := uc.Generate(c.Context, billing.GenerateInput{Request: req})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.PreviewResponse{Totals: res.Totals, Page: res.Page, Plan: res.Plan})
}

// buildUseCase arma el caso de uso con los flags globales. El logger escribe en
// stderr para no mezclarse con la salida de preview.
func buildUseCase(c *cli.Context) (*billing.GenerateUseCase, func(), error) {
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Out: c.App.ErrWriter})
	cleanup := func() {}

	var lookup billing.AddressLookup
	if dsn := c.String("database-url"); dsn != "" {
		pool, err := postgres.NewPool(c.Context, config.DBConfig{DatabaseURL: dsn, MaxConns: 1})
		if err != nil {
			return nil, nil, err
		}
		cleanup = pool.Close
		lookup = postgres.NewPostalCodeRepository(pool)
	}

	font := infrapdf.FontConfig{Path: c.String("font"), Family: c.String("font-family")}
	var (
		pdfRenderer billing.PageRenderer
		err         error
	)
	switch c.String("renderer") {
	case "maroto":
		pdfRenderer, err = infrapdf.NewMarotoRenderer(font, log)
	case "gofpdf":
		pdfRenderer, err = infrapdf.NewGofpdfRenderer(font, log)
	default:
		err = fmt.Errorf("renderer %q desconocido (gofpdf | maroto)", c.String("renderer"))
	}
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	uc := billing.NewGenerateUseCase(
		billing.NewAddressUseCase(lookup, log),
		map[billing.Format]billing.PageRenderer{
			billing.FormatPDF: pdfRenderer,
			billing.FormatSVG: infrasvg.NewRenderer(""),
		},
		billing.GenerateConfig{DefaultTaxRate: c.Int("tax-rate")},
		log,
	)
	return uc, cleanup, nil
}

func readRequest(c *cli.Context) (dto.GenerateInvoiceRequest, error) {
	var r io.Reader = c.App.Reader
	if name := c.String("input"); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return dto.GenerateInvoiceRequest{}, fmt.Errorf("abrir entrada: %w", err)
		}
		defer f.Close()
		r = f
	}
	var req dto.GenerateInvoiceRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("decodificar JSON: %w", err)
	}
	return req, nil
}
