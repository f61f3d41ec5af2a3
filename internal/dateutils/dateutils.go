// Package dateutils normalizes statement date tokens into ISO calendar dates.
package dateutils

import (
	"strings"
	"time"
)

// Date layouts understood by the normalizer.
const (
	DateLayoutISO           = "2006-01-02"
	DateLayoutMonth         = "2006-01"
	DateLayoutDMYSlash      = "2/1/2006"
	DateLayoutDMYDash       = "2-1-2006"
	DateLayoutDMYShortSlash = "2/1/06"
	DateLayoutDMYShortDash  = "2-1-06"
	DateLayoutTimestamp     = "2006-01-02 15:04:05"
)

// StatementFormats is the ordered list of layouts tried by NormalizeDate.
// The first layout that parses wins.
var StatementFormats = []string{
	DateLayoutDMYSlash,
	DateLayoutDMYDash,
	DateLayoutDMYShortSlash,
	DateLayoutDMYShortDash,
}

// ParseStatementDate parses raw with the first matching statement layout.
func ParseStatementDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range StatementFormats {
		t, err := time.Parse(layout, value)
		if err == nil && t.Year() >= 1 {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate converts a day-first date token to YYYY-MM-DD. When no layout
// matches, or the token is not a real calendar date, raw is returned unchanged.
func NormalizeDate(raw string) string {
	t, ok := ParseStatementDate(raw)
	if !ok {
		return raw
	}
	return ToISODate(t)
}

// ToISODate formats t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// ParseISODate parses a YYYY-MM-DD string.
func ParseISODate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayoutISO, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsISODate reports whether value is a valid YYYY-MM-DD date.
func IsISODate(value string) bool {
	_, ok := ParseISODate(value)
	return ok
}

// MonthKey returns the YYYY-MM bucket of a normalized date. Dates that never
// normalized are returned as-is so they still form their own bucket.
func MonthKey(date string) string {
	t, ok := ParseISODate(date)
	if !ok {
		return date
	}
	return t.Format(DateLayoutMonth)
}
