package revenue

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// maxMalformedSamples caps how many bad period values a ValidationError carries.
const maxMalformedSamples = 3

// Normalize validates raw and returns the typed table sorted by period with
// the cumulative and month columns derived. Structural problems (missing
// columns, malformed periods) fail the whole dataset with *ValidationError;
// unparseable numbers become invalid Numbers and are kept.
func Normalize(raw *RawTable) (*Table, error) {
	in := raw.Clone()

	cols := make(map[string]int, len(RequiredColumns))

	var missing []string

	for _, name := range RequiredColumns {
		idx := in.Index(name)
		if idx < 0 {
			missing = append(missing, name)
			continue
		}

		cols[name] = idx
	}

	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	records := make([]Record, len(in.Rows))

	var malformed []string

	for i := range in.Rows {
		period := strings.TrimSpace(in.Cell(i, cols[ColPeriod]))
		if !periodPattern.MatchString(period) && len(malformed) < maxMalformedSamples {
			malformed = append(malformed, period)
		}

		records[i] = Record{
			Period:           period,
			Revenue:          ParseNumber(in.Cell(i, cols[ColRevenue])),
			PriorYearRevenue: ParseNumber(in.Cell(i, cols[ColPriorYear])),
			YoYChangePct:     ParseNumber(in.Cell(i, cols[ColChange])),
		}
	}

	if len(malformed) > 0 {
		return nil, &ValidationError{Malformed: malformed}
	}

	slices.SortStableFunc(records, func(a, b Record) int {
		return cmp.Compare(a.Period, b.Period)
	})

	running := Valid(0)
	for i := range records {
		running = running.Add(records[i].Revenue)
		records[i].CumulativeRevenue = running
		records[i].Month = periodMonth(records[i].Period)
	}

	return &Table{Records: records}, nil
}

// periodMonth reads the month from a validated YYYY-MM period.
func periodMonth(period string) int {
	m, _ := strconv.Atoi(period[len(period)-2:])
	return m
}
