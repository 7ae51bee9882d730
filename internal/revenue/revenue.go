package revenue

import (
	"slices"
	"strings"
)

// Column labels of the revenue table. They are fixed and not configurable.
const (
	ColPeriod     = "월"
	ColRevenue    = "매출액"
	ColPriorYear  = "전년동월"
	ColChange     = "증감률"
	ColCumulative = "누적매출"
	ColMonth      = "월번호"
)

// RequiredColumns lists the input columns in the order they are checked.
var RequiredColumns = []string{ColPeriod, ColRevenue, ColPriorYear, ColChange}

// CleanColumns is the column order of the normalized export.
var CleanColumns = []string{ColPeriod, ColRevenue, ColPriorYear, ColChange, ColCumulative, ColMonth}

// RawTable is untyped tabular input as read from a file. Header keeps the
// cells exactly as read.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Index returns the position of the named column, or -1. Surrounding
// whitespace in header cells is ignored.
func (t *RawTable) Index(name string) int {
	return slices.IndexFunc(t.Header, func(h string) bool {
		return strings.TrimSpace(h) == name
	})
}

// Cell returns the value at row i of the column at index col. Short rows
// read as empty cells.
func (t *RawTable) Cell(i, col int) string {
	row := t.Rows[i]
	if col < 0 || col >= len(row) {
		return ""
	}

	return row[col]
}

// Clone returns a deep copy.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Header: slices.Clone(t.Header),
		Rows:   make([][]string, len(t.Rows)),
	}

	for i, row := range t.Rows {
		out.Rows[i] = slices.Clone(row)
	}

	return out
}

// Record is one normalized month.
type Record struct {
	Period            string `json:"period"`
	Revenue           Number `json:"revenue"`
	PriorYearRevenue  Number `json:"prior_year_revenue"`
	YoYChangePct      Number `json:"yoy_change_pct"`
	CumulativeRevenue Number `json:"cumulative_revenue"`
	Month             int    `json:"period_month"`
}

// Table is the validated table, sorted ascending by period.
type Table struct {
	Records []Record
}

func (t *Table) Len() int {
	return len(t.Records)
}

// Periods returns the period labels in table order.
func (t *Table) Periods() []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r.Period
	}

	return out
}
