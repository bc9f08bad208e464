package pdf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/jhoicas/seikyusho-api/pkg/logger"
)

// fallbackFamily fuente base de PDF; no contiene kanji ni kana.
const fallbackFamily = "helvetica"

// FontConfig fuente TrueType con glifos japoneses (ej. IPAex Gothic, ipaexg.ttf).
type FontConfig struct {
	Path   string
	Family string
}

// loadFont lee el TTF. Si no existe devuelve nil y deja constancia en el log:
// el documento se genera igualmente con la fuente base.
func loadFont(cfg FontConfig, log *logger.Logger) ([]byte, error) {
	if cfg.Path == "" {
		log.Warn().Msg("PDF_FONT_PATH vacío: el texto japonés no se mostrará")
		return nil, nil
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("font_path", cfg.Path).Msg("fuente no encontrada: se usa la fuente base")
			return nil, nil
		}
		return nil, fmt.Errorf("pdf: leer fuente %s: %w", cfg.Path, err)
	}
	return data, nil
}

// pt2mm convierte puntos tipográficos a milímetros.
func pt2mm(pt float64) float64 {
	return pt * 25.4 / 72
}
