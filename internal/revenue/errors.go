package revenue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyDataset is returned when a table has no rows to summarize.
var ErrEmptyDataset = errors.New("dataset has no rows")

// ValidationError reports structural problems with the input. Exactly one of
// Missing or Malformed is set.
type ValidationError struct {
	// Missing holds the absent required columns in check order.
	Missing []string
	// Malformed holds up to three offending period values in input order.
	Malformed []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("필수 컬럼 누락: %s", strings.Join(e.Missing, ", "))
	}

	return fmt.Sprintf("월 형식(YYYY-MM) 오류 예: [%s]", strings.Join(e.Malformed, " "))
}
