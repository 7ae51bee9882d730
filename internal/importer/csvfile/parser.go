package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/revdash/internal/encoding"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

// Parser reads comma-separated revenue tables. The first record is the
// header; the remaining records are kept verbatim.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*revenue.RawTable, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return &revenue.RawTable{}, nil
	}

	return &revenue.RawTable{Header: rows[0], Rows: rows[1:]}, nil
}
