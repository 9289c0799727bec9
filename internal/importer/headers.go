package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Header aliases, in priority order. Headers are compared after NormalizeHeader.
var (
	PrimaryIDAliases = []string{"SERIAL", "S/N", "IMEI", "IDENTIFICADOR"}
	AssetTagAliases  = []string{"ETIQUETA", "TAG", "PLAQUETA", "GSA", "PATRIMONIO"}
	TypeAliases      = []string{"TIPO", "CATEGORIA", "ESPECIE"}
	BrandAliases     = []string{"MARCA", "FABRICANTE"}
	ConditionAliases = []string{"ESTADO", "CONDICAO"}
	ValueAliases     = []string{"VALOR", "PRECO", "CUSTO", "R$"}
	DetailsAliases   = []string{"DETALHES", "MODELO", "OBS"}
	ColorAliases     = []string{"COR"}
)

// NormalizeHeader trims, strips diacritics and uppercases a column header
// so that "Condição " and "CONDICAO" compare equal.
func NormalizeHeader(h string) string {
	return strings.ToUpper(stripDiacritics(strings.TrimSpace(h)))
}

// stripDiacritics decomposes s into NFD form and drops the combining marks.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// lookup resolves a field from a row. For each alias in order it tries the exact
// header first, then the first header in sheet order containing the alias.
// Only cells with a non-empty value match.
func lookup(cells []Cell, aliases []string) (Cell, bool) {
	for _, alias := range aliases {
		for _, c := range cells {
			if c.Header == alias && c.Value != "" {
				return c, true
			}
		}
		for _, c := range cells {
			if strings.Contains(c.Header, alias) && c.Value != "" {
				return c, true
			}
		}
	}
	return Cell{}, false
}
