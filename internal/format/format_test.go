package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/revdash/internal/format"
	"github.com/MrJamesThe3rd/revdash/internal/revenue"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		in   revenue.Number
		want string
	}{
		{name: "Grouping", in: revenue.Valid(12000000), want: "12,000,000"},
		{name: "Truncates", in: revenue.Valid(1234.99), want: "1,234"},
		{name: "Negative", in: revenue.Valid(-98765.4), want: "-98,765"},
		{name: "Small", in: revenue.Valid(999), want: "999"},
		{name: "Zero", in: revenue.Valid(0), want: "0"},
		{name: "Invalid", in: revenue.Invalid(), want: "NaN"},
		{name: "Negative Fraction", in: revenue.Valid(-0.5), want: "0"},
		{name: "Beyond Int64", in: revenue.Valid(1e20), want: "100,000,000,000,000,000,000"},
		{name: "Beyond Int64 Negative", in: revenue.Valid(-1.5e19), want: "-15,000,000,000,000,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.want, format.Money(tt.in))
			})
		})
	}
}

func TestWon(t *testing.T) {
	assert.Equal(t, "75,500,000 원", format.Won(revenue.Valid(75500000)))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		in   revenue.Number
		want string
	}{
		{name: "Zero", in: revenue.Valid(0), want: "0.0%"},
		{name: "Positive", in: revenue.Valid(14.3), want: "+14.3%"},
		{name: "Negative", in: revenue.Valid(-14.1), want: "-14.1%"},
		{name: "Invalid", in: revenue.Invalid(), want: "NaN%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Percent(tt.in))
		})
	}
}
