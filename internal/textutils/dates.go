package textutils

import "regexp"

// DefaultDateShapes are the date-token shapes a statement line is scanned
// for, in priority order.
var DefaultDateShapes = []*regexp.Regexp{
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
	regexp.MustCompile(`\d{2}-\d{2}-\d{4}`),
	regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
}

// DateToken is a date-shaped substring and its byte offsets.
type DateToken struct {
	Raw   string
	Start int
	End   int
}

// FindDateToken returns the first match of the first shape that matches line.
func FindDateToken(line string, shapes []*regexp.Regexp) (DateToken, bool) {
	for _, shape := range shapes {
		loc := shape.FindStringIndex(line)
		if loc == nil {
			continue
		}
		return DateToken{Raw: line[loc[0]:loc[1]], Start: loc[0], End: loc[1]}, true
	}
	return DateToken{}, false
}
