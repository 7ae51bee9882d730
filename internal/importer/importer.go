package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

type Importer interface {
	Parse(r io.Reader) (*revenue.RawTable, error)
}

// FormatFromFilename picks the format by extension, defaulting to CSV.
func FormatFromFilename(name string) Format {
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return FormatXLSX
	}

	return FormatCSV
}
