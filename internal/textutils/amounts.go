// Package textutils holds the low-level text scanners used by the statement
// extractor: monetary amount tokens, date-shaped tokens and string helpers.
package textutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountPattern matches digit runs with optional comma grouping (western
// 3-digit and Indian 2-digit groups) and an optional fractional part of one
// or two digits. Signs and currency symbols are not part of the shape.
var amountPattern = regexp.MustCompile(`\d+(?:,\d{2,3})*(?:\.\d{1,2})?`)

// AmountMatch is one positive amount found in a line, with its byte offsets.
type AmountMatch struct {
	Value decimal.Decimal
	Raw   string
	Start int
	End   int
}

// FindAmounts returns every positive amount in text, left to right. Zero
// values are dropped.
func FindAmounts(text string) []AmountMatch {
	var matches []AmountMatch
	for _, loc := range amountPattern.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		value, err := ParseAmount(raw)
		if err != nil || !value.IsPositive() {
			continue
		}
		matches = append(matches, AmountMatch{
			Value: value,
			Raw:   raw,
			Start: loc[0],
			End:   loc[1],
		})
	}
	return matches
}

// ExtractAmounts returns the positive amounts of line in order of appearance.
func ExtractAmounts(line string) []decimal.Decimal {
	matches := FindAmounts(line)
	values := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		values = append(values, m.Value)
	}
	return values
}

// ParseAmount strips grouping commas and parses the remainder as a decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
}
