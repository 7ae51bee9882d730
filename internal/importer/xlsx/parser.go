package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// Parser reads the first worksheet of an XLSX workbook. Cells are taken as
// displayed, so number formats with thousands separators come through as
// text and are handled by the numeric coercion.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*revenue.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &revenue.RawTable{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	// Trailing empty rows come back as zero-length slices.
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}

	if len(rows) == 0 {
		return &revenue.RawTable{}, nil
	}

	return &revenue.RawTable{Header: rows[0], Rows: rows[1:]}, nil
}
