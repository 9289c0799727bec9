package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseCurrency converts a spreadsheet value into a decimal amount.
// Numeric cells are taken as-is. Text is read in Brazilian notation ("R$ 1.234,56"):
// the currency symbol and spaces are dropped, "." is a thousands separator and ","
// the decimal mark. Empty or unparsable values yield zero.
func ParseCurrency(c Cell) decimal.Decimal {
	if c.Value == "" {
		return decimal.Zero
	}

	if c.Numeric {
		d, err := decimal.NewFromString(strings.TrimSpace(c.Value))
		if err != nil {
			return decimal.Zero
		}
		return d.Round(2)
	}

	s := strings.ReplaceAll(c.Value, "R$", "")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\u00a0':
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(2)
}
