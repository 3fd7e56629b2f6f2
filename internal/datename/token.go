package datename

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"photodate/internal/textutil"
)

// Precision is the granularity a name states explicitly.
type Precision string

const (
	PrecisionYear  Precision = "year"
	PrecisionMonth Precision = "month"
	PrecisionDay   Precision = "day"
)

// Token is the date carried by a single name.
//
// Value is always midday local time. RangeEnd is zero for single-point names;
// for month ranges it holds the first day of the last month, for day ranges
// the last day, both at midday.
type Token struct {
	Value     time.Time
	Precision Precision
	RangeEnd  time.Time
}

// HasRange reports whether the name stated a range.
func (t Token) HasRange() bool {
	return !t.RangeEnd.IsZero()
}

// String renders the token at its own precision, e.g. "2018-01" or
// "2018-01-29..2018-01-31".
func (t Token) String() string {
	if t.Value.IsZero() {
		return ""
	}
	layout := layoutFor(t.Precision)
	if !t.HasRange() {
		return t.Value.Format(layout)
	}
	return t.Value.Format(layout) + ".." + t.RangeEnd.Format(layout)
}

func layoutFor(p Precision) string {
	switch p {
	case PrecisionYear:
		return "2006"
	case PrecisionMonth:
		return "2006-01"
	default:
		return "2006-01-02"
	}
}

var (
	// prefixPattern matches YYYY, YYYY.MM or YYYY.MM.DD at the start of a
	// name. The boundary after the match is checked separately.
	prefixPattern = regexp.MustCompile(`^(\d{4})(?:\.(\d{2})(?:\.(\d{2}))?)?`)

	// dayRangePattern matches "-DD" or "-MM.DD" right after a day token.
	dayRangePattern = regexp.MustCompile(`^-(\d{2})(?:\.(\d{2}))?`)

	// monthRangePattern matches "-MM" right after a month token.
	monthRangePattern = regexp.MustCompile(`^-(\d{2})`)
)

// Parse extracts the date token at the start of name.
//
// Accepted forms are "YYYY", "YYYY.MM" and "YYYY.MM.DD", each followed by
// whitespace or the end of the name; month and day forms may also be
// followed by a dash. A dash after a bare year is rejected so that
// "2009-09-25 Concert" carries no date. Month and day tokens may carry a
// range suffix ("-MM" after a month, "-DD" or "-MM.DD" after a day); an
// unusable suffix is dropped and the token kept.
func Parse(name string) (Token, bool) {
	name = textutil.NormalizeName(name)
	m := prefixPattern.FindStringSubmatch(name)
	if m == nil {
		return Token{}, false
	}
	rest := name[len(m[0]):]

	year := atoi(m[1])
	month, day := 1, 1
	precision := PrecisionYear
	if m[2] != "" {
		month = atoi(m[2])
		precision = PrecisionMonth
	}
	if m[3] != "" {
		day = atoi(m[3])
		precision = PrecisionDay
	}

	if !atBoundary(rest, precision != PrecisionYear) {
		return Token{}, false
	}
	value, ok := Midday(year, month, day)
	if !ok {
		return Token{}, false
	}

	token := Token{Value: value, Precision: precision}
	if strings.HasPrefix(rest, "-") {
		if end, ok := parseRangeEnd(token, rest); ok {
			token.RangeEnd = end
		}
	}
	return token, true
}

// ExtractDate returns only the point value of the token at the start of
// name. It follows the same grammar and validation as Parse.
func ExtractDate(name string) (time.Time, bool) {
	token, ok := Parse(name)
	if !ok {
		return time.Time{}, false
	}
	return token.Value, true
}

func parseRangeEnd(start Token, suffix string) (time.Time, bool) {
	year := start.Value.Year()
	var (
		end time.Time
		ok  bool
	)
	switch start.Precision {
	case PrecisionDay:
		m := dayRangePattern.FindStringSubmatch(suffix)
		if m == nil || !atBoundary(suffix[len(m[0]):], false) {
			return time.Time{}, false
		}
		if m[2] != "" {
			end, ok = Midday(year, atoi(m[1]), atoi(m[2]))
		} else {
			end, ok = Midday(year, int(start.Value.Month()), atoi(m[1]))
		}
	case PrecisionMonth:
		m := monthRangePattern.FindStringSubmatch(suffix)
		if m == nil || !atBoundary(suffix[len(m[0]):], false) {
			return time.Time{}, false
		}
		end, ok = Midday(year, atoi(m[1]), 1)
	default:
		return time.Time{}, false
	}
	if !ok || end.Before(start.Value) {
		return time.Time{}, false
	}
	return end, true
}

// atBoundary reports whether rest starts where a date token may end: at the
// end of the name, at whitespace, or (when allowDash is set) at a dash.
func atBoundary(rest string, allowDash bool) bool {
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rest)
	if unicode.IsSpace(r) {
		return true
	}
	return allowDash && r == '-'
}

// atoi converts a regexp digit group; the patterns only capture ASCII digits.
func atoi(digits string) int {
	n, _ := strconv.Atoi(digits)
	return n
}
