package seed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/taller-api/internal/domain/money"
)

// Encodings admitidos para el CSV del catálogo.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1251 = "windows-1251"
)

// ReadCatalogCSV lee filas "nombre;precio" (o con coma). El precio va en rublos
// ("1500", "1 500,50"). Se ignoran líneas vacías y una cabecera cuyo precio no sea número.
func ReadCatalogCSV(r io.Reader, encoding string) ([]ServiceRow, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
	case EncodingWindows1251, "cp1251":
		r = transform.NewReader(r, charmap.Windows1251.NewDecoder())
	default:
		return nil, fmt.Errorf("catálogo: encoding no soportado %q", encoding)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catálogo: leer: %w", err)
	}
	text := strings.TrimPrefix(string(raw), "\ufeff")
	sep := ','
	if first, _, _ := strings.Cut(text, "\n"); strings.Contains(first, ";") {
		sep = ';'
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []ServiceRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catálogo: línea %d: %w", line, err)
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("catálogo: línea %d: se esperan nombre y precio", line)
		}
		name := strings.TrimSpace(rec[0])
		cents, perr := money.Parse(rec[1])
		if perr != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("catálogo: línea %d: precio %q: %w", line, rec[1], perr)
		}
		if n := utf8.RuneCountInString(name); n < 1 || n > 60 {
			return nil, fmt.Errorf("catálogo: línea %d: nombre de 1..60 caracteres", line)
		}
		out = append(out, ServiceRow{Name: name, DefaultPriceCents: cents})
	}
	return out, nil
}
