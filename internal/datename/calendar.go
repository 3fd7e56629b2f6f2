package datename

import "time"

// MiddayHour is the hour assigned to every date derived from a name. Midday
// keeps the calendar day stable when the value is later shifted by a few
// hours of timezone offset.
const MiddayHour = 12

// Midday returns the given calendar day at 12:00:00 local time, or false when
// the numbers do not form a real calendar date.
func Midday(year, month, day int) (time.Time, bool) {
	if !ValidDate(year, month, day) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, MiddayHour, 0, 0, 0, time.Local), true
}

// ValidDate reports whether year, month and day name an existing proleptic
// Gregorian calendar day. Years start at 1.
func ValidDate(year, month, day int) bool {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= daysIn(year, time.Month(month))
}

// ValidClock reports whether hour, minute and second form a wall-clock time.
func ValidClock(hour, minute, second int) bool {
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60 && second >= 0 && second < 60
}

// DayOf truncates t to its calendar day at midday, in t's location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), MiddayHour, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in their own
// locations.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func daysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
