package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell is one value of a data row, keyed by its normalized column header
type Cell struct {
	Header  string
	Value   string
	Numeric bool
}

// RawRow is a data row in sheet order. Line is the 1-based sheet line (header is line 1).
type RawRow struct {
	Line  int
	Cells []Cell
}

// IsBlank reports whether every cell of the row is empty
func (r RawRow) IsBlank() bool {
	for _, c := range r.Cells {
		if c.Value != "" {
			return false
		}
	}
	return true
}

// ReadSpreadsheet reads the first sheet of an .xlsx workbook. The first row is the header row.
// Numeric cells keep their raw value and are flagged so currency parsing can skip text rules.
func ReadSpreadsheet(r io.Reader) ([]RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet has no header row")
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	out := make([]RawRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		raw := RawRow{Line: line, Cells: make([]Cell, 0, len(headers))}
		for col, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			raw.Cells = append(raw.Cells, Cell{
				Header:  header,
				Value:   value,
				Numeric: value != "" && isNumericCell(f, sheet, col+1, line, value),
			})
		}
		out = append(out, raw)
	}

	return out, nil
}

func isNumericCell(f *excelize.File, sheet string, col, row int, value string) bool {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return false
	}
	switch cellType {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeFormula:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	}
	return false
}
