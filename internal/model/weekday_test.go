package model

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	for _, in := range []string{"monday", "Monday", " SUNDAY "} {
		if _, err := ParseWeekday(in); err != nil {
			t.Errorf("ParseWeekday(%q): %v", in, err)
		}
	}
	for _, in := range []string{"", "mon", "funday", "월요일"} {
		if _, err := ParseWeekday(in); err == nil {
			t.Errorf("ParseWeekday(%q): expected error", in)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-02 is a Monday.
	base := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	for i, want := range Weekdays {
		got := WeekdayOf(base.AddDate(0, 0, i))
		if got != want {
			t.Errorf("day %d: got %s, want %s", i, got, want)
		}
	}
}
