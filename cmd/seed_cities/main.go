// seed_cities genera el script SQL que puebla el catálogo de ciudades (código IBGE)
// a partir de un CSV en ISO-8859-1 con columnas codigo;nombre;uf.
//
// Uso: go run ./cmd/seed_cities [ruta/municipios.csv]
// Por defecto busca municipios.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_cities.sql
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type city struct {
	code  string
	name  string
	state string
}

func main() {
	csvPath := "municipios.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cities, err := parseCities(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_cities.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, cities); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d ciudades\n", outPath, len(cities))
}

// parseCities decodifica Latin-1, salta la cabecera y filas incompletas, y deduplica por código.
func parseCities(r io.Reader) ([]city, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	byCode := make(map[string]city)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if len(rec) < 3 {
			continue
		}
		c := city{
			code:  strings.TrimSpace(rec[0]),
			name:  strings.TrimSpace(rec[1]),
			state: strings.ToUpper(strings.TrimSpace(rec[2])),
		}
		if c.code == "" || c.name == "" || c.state == "" || !isDigits(c.code) {
			continue // cabecera o fila vacía
		}
		byCode[c.code] = c
	}

	cities := make([]city, 0, len(byCode))
	for _, c := range byCode {
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].code < cities[j].code })
	return cities, nil
}

// writeSQL escribe un upsert por ciudad; el id es el código IBGE.
func writeSQL(w io.Writer, cities []city) error {
	var b strings.Builder
	b.WriteString("-- Ciudades (código IBGE)\n")
	b.WriteString("-- Generado por cmd/seed_cities\n\n")
	for _, c := range cities {
		fmt.Fprintf(&b, "INSERT INTO cities (id, code, name, state) VALUES ('%s', '%s', '%s', '%s')\n",
			c.code, c.code, escapeSQL(c.name), escapeSQL(c.state))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, state = EXCLUDED.state;\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
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
