package revenue

// Sample returns the built-in five month dataset shown when nothing is uploaded.
func Sample() *RawTable {
	return &RawTable{
		Header: []string{ColPeriod, ColRevenue, ColPriorYear, ColChange},
		Rows: [][]string{
			{"2024-01", "12000000", "10500000", "14.3"},
			{"2024-02", "13500000", "11200000", "20.5"},
			{"2024-03", "11000000", "12800000", "-14.1"},
			{"2024-04", "18000000", "15200000", "18.4"},
			{"2024-05", "21000000", "18500000", "13.5"},
		},
	}
}
