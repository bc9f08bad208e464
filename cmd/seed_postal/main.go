// seed_postal genera el script SQL que puebla postal_codes a partir del archivo
// oficial KEN_ALL.CSV de Japan Post (Shift_JIS).
//
// Uso: go run ./cmd/seed_postal [ruta/KEN_ALL.CSV] [salida.sql]
// Por defecto busca KEN_ALL.CSV en el directorio actual.
// Escribe: internal/infrastructure/postgres/seeds/postal_codes.sql (fuera de las
// migraciones embebidas; se carga con psql -f).
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Columnas de KEN_ALL.CSV (base 0).
const (
	colCode       = 2
	colPrefecture = 6
	colCity       = 7
	colTown       = 8
	minColumns    = 9
)

const batchSize = 1000

type area struct {
	code, prefecture, city, town string
}

func main() {
	csvPath := "KEN_ALL.CSV"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := defaultOutPath(findModuleRoot())
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	areas, err := parseKenAll(transform.NewReader(f, japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, areas); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d filas\n", outPath, len(areas))
}

// parseKenAll lee filas ya decodificadas a UTF-8. Las filas partidas (町域 largo
// con paréntesis sin cerrar) se unen con las siguientes del mismo código.
func parseKenAll(r io.Reader) ([]area, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var (
		areas   []area
		pending *area
		seen    = make(map[area]bool)
	)
	add := func(a area) {
		a.town = cleanTown(a.town)
		if !seen[a] {
			seen[a] = true
			areas = append(areas, a)
		}
	}

	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < minColumns {
			return nil, fmt.Errorf("línea %d: %d columnas, se esperaban al menos %d", line, len(rec), minColumns)
		}
		cur := area{
			code:       strings.TrimSpace(rec[colCode]),
			prefecture: strings.TrimSpace(rec[colPrefecture]),
			city:       strings.TrimSpace(rec[colCity]),
			town:       strings.TrimSpace(rec[colTown]),
		}

		if pending != nil && pending.code == cur.code {
			pending.town += cur.town
			if isClosed(pending.town) {
				add(*pending)
				pending = nil
			}
			continue
		}
		if pending != nil {
			add(*pending)
			pending = nil
		}
		if !isClosed(cur.town) {
			pending = &cur
			continue
		}
		add(cur)
	}
	if pending != nil {
		add(*pending)
	}
	return areas, nil
}

func isClosed(town string) bool {
	return strings.Count(town, "（") <= strings.Count(town, "）")
}

// cleanTown descarta los rótulos que no forman parte de la dirección.
func cleanTown(town string) string {
	if town == "以下に掲載がない場合" || strings.HasSuffix(town, "の次に番地がくる場合") || strings.HasSuffix(town, "一円") {
		return ""
	}
	if i := strings.Index(town, "（"); i >= 0 {
		town = town[:i]
	}
	return strings.TrimSpace(town)
}

func writeSQL(w io.Writer, areas []area) error {
	var b strings.Builder
	b.WriteString("-- Directorio postal de Japan Post\n")
	b.WriteString("-- Generado desde KEN_ALL.CSV por cmd/seed_postal\n")
	for start := 0; start < len(areas); start += batchSize {
		end := min(start+batchSize, len(areas))
		b.WriteString("\nINSERT INTO postal_codes (code, prefecture, city, town) VALUES\n")
		for i, a := range areas[start:end] {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s')", escapeSQL(a.code), escapeSQL(a.prefecture), escapeSQL(a.city), escapeSQL(a.town))
			if start+i < end-1 {
				b.WriteString(",\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString("ON CONFLICT DO NOTHING;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func defaultOutPath(moduleRoot string) string {
	return filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "seeds", "postal_codes.sql")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
