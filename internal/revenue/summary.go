package revenue

// Summary holds the KPIs derived from a normalized table.
type Summary struct {
	Last         Record `json:"last"`
	TotalRevenue Number `json:"total_revenue"`
	// MaxIndex and MinIndex point into Table.Records; the first occurrence
	// wins ties. They are -1 when no revenue value is valid.
	MaxIndex    int    `json:"max_record_index"`
	MinIndex    int    `json:"min_record_index"`
	FirstPeriod string `json:"first_period"`
	LastPeriod  string `json:"last_period"`
}

// Summarize computes the KPIs of t. It returns ErrEmptyDataset for a table
// without rows.
func Summarize(t *Table) (*Summary, error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrEmptyDataset
	}

	recs := t.Records
	s := &Summary{
		Last:         recs[len(recs)-1],
		TotalRevenue: Valid(0),
		MaxIndex:     -1,
		MinIndex:     -1,
		FirstPeriod:  recs[0].Period,
		LastPeriod:   recs[len(recs)-1].Period,
	}

	for i, r := range recs {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)

		if !r.Revenue.IsValid() {
			continue
		}

		if s.MaxIndex < 0 || recs[s.MaxIndex].Revenue.Less(r.Revenue) {
			s.MaxIndex = i
		}

		if s.MinIndex < 0 || r.Revenue.Less(recs[s.MinIndex].Revenue) {
			s.MinIndex = i
		}
	}

	return s, nil
}

// MaxRecord returns the highest-revenue record, if any.
func (s *Summary) MaxRecord(t *Table) (Record, bool) {
	if s.MaxIndex < 0 {
		return Record{}, false
	}

	return t.Records[s.MaxIndex], true
}

// MinRecord returns the lowest-revenue record, if any.
func (s *Summary) MinRecord(t *Table) (Record, bool) {
	if s.MinIndex < 0 {
		return Record{}, false
	}

	return t.Records[s.MinIndex], true
}
