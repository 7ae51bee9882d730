package csvfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/MrJamesThe3rd/revdash/internal/importer/csvfile"
)

func TestParser_Standard(t *testing.T) {
	csv := `월,매출액,전년동월,증감률
2024-01,"12,000,000",10500000,14.3
2024-02, 13500000 ,11200000,20.5
`

	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"월", "매출액", "전년동월", "증감률"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "12,000,000", tbl.Rows[0][1])
	assert.Equal(t, " 13500000 ", tbl.Rows[1][1])
}

func TestParser_BOMHeader(t *testing.T) {
	csv := "\xEF\xBB\xBF월,매출액,전년동월,증감률\n2024-01,1,1,1\n"

	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, "월", tbl.Header[0])
}

func TestParser_PaddedHeaderCells(t *testing.T) {
	csv := " 월 ,매출액 ,전년동월,증감률\n2024-01,1,1,1\n"

	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{" 월 ", "매출액 ", "전년동월", "증감률"}, tbl.Header)
	assert.Equal(t, 0, tbl.Index("월"))
	assert.Equal(t, 1, tbl.Index("매출액"))
}

func TestParser_EUCKR(t *testing.T) {
	utf8CSV := "월,매출액,전년동월,증감률\n2024-01,100,90,11.1\n"

	euckr, err := korean.EUCKR.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := csvfile.NewParser()
	tbl, err := p.Parse(bytes.NewReader(euckr))
	require.NoError(t, err)

	assert.Equal(t, []string{"월", "매출액", "전년동월", "증감률"}, tbl.Header)
}

func TestParser_VariableFieldCounts(t *testing.T) {
	csv := "월,매출액,전년동월,증감률\n2024-01,1\n2024-02,1,1,1,extra\n"

	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)

	assert.Len(t, tbl.Rows[0], 2)
	assert.Len(t, tbl.Rows[1], 5)
}

func TestParser_EmptyFile(t *testing.T) {
	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader(""))
	require.NoError(t, err)

	assert.Empty(t, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestParser_HeaderOnly(t *testing.T) {
	p := csvfile.NewParser()
	tbl, err := p.Parse(strings.NewReader("월,매출액,전년동월,증감률\n"))
	require.NoError(t, err)

	assert.Len(t, tbl.Header, 4)
	assert.Empty(t, tbl.Rows)
}
