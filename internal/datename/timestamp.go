package datename

import (
	"regexp"
	"time"
)

// timestampPattern matches an 8-digit date and 6-digit time block joined by
// "_" or "-". Candidates are tried at the start of the stem and after every
// "_" or "-". The block may carry a 3-digit millisecond suffix (Pixel's
// "PXL_20190104_160000123") but must not run into any other digits.
var timestampPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})[_-](\d{2})(\d{2})(\d{2})`)

// ExtractTimestamp finds a camera-style timestamp in a file stem, as in
// "IMG_20190102_160000", "Screenshot_20190102-160000" or "20190102_160000".
// The result is local time, exact to the second; milliseconds are dropped. The first block that forms
// a valid date and clock time wins.
func ExtractTimestamp(stem string) (time.Time, bool) {
	for i := 0; i < len(stem); i++ {
		if i > 0 && stem[i-1] != '_' && stem[i-1] != '-' {
			continue
		}
		m := timestampPattern.FindStringSubmatch(stem[i:])
		if m == nil {
			continue
		}
		if !subsecondTail(stem[i+len(m[0]):]) {
			continue
		}
		year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
		hour, minute, second := atoi(m[4]), atoi(m[5]), atoi(m[6])
		if !ValidDate(year, month, day) || !ValidClock(hour, minute, second) {
			continue
		}
		return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local), true
	}
	return time.Time{}, false
}

// subsecondTail reports whether rest, the text after the time block, starts
// with no digits or with exactly three.
func subsecondTail(rest string) bool {
	n := 0
	for n < len(rest) && isDigit(rest[n]) {
		n++
	}
	return n == 0 || n == 3
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
