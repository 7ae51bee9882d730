package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/revdash/internal/importer/csvfile"
	"github.com/MrJamesThe3rd/revdash/internal/importer/xlsx"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

type Service struct {
	csvImporter  Importer
	xlsxImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter:  csvfile.NewParser(),
		xlsxImporter: xlsx.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) (*revenue.RawTable, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	case FormatXLSX:
		importer = s.xlsxImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// Sample returns the built-in dataset.
func (s *Service) Sample() *revenue.RawTable {
	return revenue.Sample()
}
