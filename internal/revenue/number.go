package revenue

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a float that can also be "invalid", the result of a failed
// numeric parse. Arithmetic on an invalid Number yields an invalid Number.
type Number struct {
	value float64
	valid bool
}

// Valid wraps v as a valid Number. NaN and the infinities come back Invalid.
func Valid(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Invalid()
	}

	return Number{value: v, valid: true}
}

// Invalid returns the not-a-number sentinel.
func Invalid() Number {
	return Number{}
}

// ParseNumber strips comma and space characters from s and parses the rest.
// Anything unparseable becomes Invalid, as do literals that overflow a
// float64 (e.g. "1e400"); it never fails.
func ParseNumber(s string) Number {
	clean := strings.ReplaceAll(s, ",", "")
	clean = strings.ReplaceAll(clean, " ", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return Invalid()
	}

	return Valid(d.InexactFloat64())
}

func (n Number) IsValid() bool {
	return n.valid
}

// Float64 returns the value and whether it is valid.
func (n Number) Float64() (float64, bool) {
	return n.value, n.valid
}

// Add returns n+o, invalid if either operand is or the sum overflows.
func (n Number) Add(o Number) Number {
	if !n.valid || !o.valid {
		return Invalid()
	}

	return Valid(n.value + o.value)
}

// Less reports n < o. Invalid numbers never compare.
func (n Number) Less(o Number) bool {
	return n.valid && o.valid && n.value < o.value
}

// Text is the cell representation used by the CSV exports: the shortest
// decimal form, or an empty cell for invalid numbers.
func (n Number) Text() string {
	if !n.valid {
		return ""
	}

	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func (n Number) String() string {
	if !n.valid {
		return "NaN"
	}

	return n.Text()
}

// MarshalJSON encodes invalid numbers as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}

	return json.Marshal(n.value)
}
