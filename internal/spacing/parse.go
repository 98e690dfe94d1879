package spacing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Delimiter separates the spacing values in a text list
const Delimiter = ","

// ParseError reports a non-blank segment that is not a real number
type ParseError struct {
	Token string // offending segment, trimmed
	Index int    // position among the non-blank segments (0-based)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid spacing value %q at position %d: only numbers and commas are allowed", e.Token, e.Index+1)
}

// Parse converts a comma-separated list such as "610, 1219, 1524" into
// spacing values in millimetres. Blank segments are skipped, so "610,,1219"
// yields two values. Each value is a plain decimal such as "1219", "-0.5"
// or "1.2e3"; hexadecimal and digit-separator forms are rejected. An empty or all-blank string yields an empty slice and
// no error; the caller decides whether that is missing input.
func Parse(text string) ([]float64, error) {
	values := make([]float64, 0, strings.Count(text, Delimiter)+1)

	for _, segment := range strings.Split(text, Delimiter) {
		token := strings.TrimSpace(segment)
		if token == "" {
			continue
		}

		v, err := strconv.ParseFloat(token, 64)
		if err != nil || strings.ContainsAny(token, "xX_") || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ParseError{Token: token, Index: len(values)}
		}
		values = append(values, v)
	}

	return values, nil
}

// Format writes spacing values back into the list form accepted by Parse
func Format(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
