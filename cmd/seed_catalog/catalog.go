package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// catalogRow un renglón del CSV ya normalizado.
type catalogRow struct {
	Line     int
	Code     string
	Name     string
	Category string
	Prices   [4]decimal.Decimal
	Cost     decimal.Decimal
	Stock    decimal.Decimal
	MinStock decimal.Decimal
}

// Encabezados aceptados por columna (en minúsculas, sin acentos).
var columnAliases = map[string][]string{
	"code":      {"codigo", "code", "clave"},
	"name":      {"nombre", "name", "descripcion"},
	"category":  {"categoria", "category"},
	"price1":    {"precio1", "price1", "publico"},
	"price2":    {"precio2", "price2", "mayoreo"},
	"price3":    {"precio3", "price3", "distribuidor"},
	"price4":    {"precio4", "price4", "especial"},
	"cost":      {"costo", "cost"},
	"stock":     {"stock", "existencia"},
	"min_stock": {"stock_minimo", "min_stock", "minimo"},
}

// decodeCatalog convierte el contenido a UTF-8. Los archivos que no son UTF-8 válido se leen como Latin-1,
// que es lo que exporta Excel en español.
func decodeCatalog(raw []byte, forceLatin1 bool) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if !forceLatin1 && utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar Latin-1: %w", err)
	}
	return bytes.NewReader(out), nil
}

// parseCatalog lee el CSV con encabezado. Detecta ';' o ',' como separador según la primera línea.
func parseCatalog(r io.Reader) ([]catalogRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectComma(data)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := mapColumns(header)
	if _, ok := idx["code"]; !ok {
		return nil, fmt.Errorf("encabezado sin columna de código")
	}
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("encabezado sin columna de nombre")
	}

	var rows []catalogRow
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		if get("code") == "" && get("name") == "" {
			continue
		}
		row := catalogRow{Line: line, Code: get("code"), Name: get("name"), Category: get("category")}
		if row.Name == "" {
			return nil, fmt.Errorf("línea %d: nombre vacío", line)
		}
		fields := []struct {
			col string
			dst *decimal.Decimal
		}{
			{"price1", &row.Prices[0]},
			{"price2", &row.Prices[1]},
			{"price3", &row.Prices[2]},
			{"price4", &row.Prices[3]},
			{"cost", &row.Cost},
			{"stock", &row.Stock},
			{"min_stock", &row.MinStock},
		}
		for _, f := range fields {
			d, err := parseAmount(get(f.col))
			if err != nil {
				return nil, fmt.Errorf("línea %d, %s: %w", line, f.col, err)
			}
			if d.IsNegative() {
				return nil, fmt.Errorf("línea %d, %s: valor negativo", line, f.col)
			}
			*f.dst = d
		}
		// Sin precios de mayoreo se usa el de público.
		for i := 1; i < len(row.Prices); i++ {
			if row.Prices[i].IsZero() {
				row.Prices[i] = row.Prices[0]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func detectComma(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

func mapColumns(header []string) map[string]int {
	idx := make(map[string]int)
	for i, h := range header {
		key := normalizeHeader(h)
		for col, aliases := range columnAliases {
			if _, seen := idx[col]; seen {
				continue
			}
			for _, a := range aliases {
				if key == a {
					idx[col] = i
				}
			}
		}
	}
	return idx
}

var accentReplacer = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", " ", "_")

func normalizeHeader(h string) string {
	return accentReplacer.Replace(strings.ToLower(strings.TrimSpace(h)))
}

// parseAmount acepta "1,234.50", "1234,50" y "$ 99". Vacío es cero.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero, nil
	}
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		s = strings.ReplaceAll(s, ",", "")
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
