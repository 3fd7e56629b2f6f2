package datename

import (
	"testing"
	"time"
)

func TestValidDate(t *testing.T) {
	tests := []struct {
		y, m, d int
		want    bool
	}{
		{2024, 2, 29, true},
		{2023, 2, 29, false},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2023, 2, 31, false},
		{2024, 13, 1, false},
		{2024, 4, 31, false},
		{2024, 12, 31, true},
		{0, 1, 1, false},
		{2024, 0, 1, false},
		{2024, 1, 0, false},
	}
	for _, tt := range tests {
		if got := ValidDate(tt.y, tt.m, tt.d); got != tt.want {
			t.Fatalf("ValidDate(%d, %d, %d) = %v, want %v", tt.y, tt.m, tt.d, got, tt.want)
		}
	}
}

func TestDayOfAndSameDay(t *testing.T) {
	ts := time.Date(2023, 5, 15, 16, 30, 0, 0, time.Local)
	day := DayOf(ts)
	if day.Hour() != MiddayHour || day.Day() != 15 {
		t.Fatalf("DayOf = %s", day)
	}
	if !SameDay(ts, day) {
		t.Fatal("expected same day")
	}
	if SameDay(ts, ts.AddDate(0, 0, 1)) {
		t.Fatal("expected different day")
	}
}
