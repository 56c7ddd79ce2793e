package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is one of the seven named days a store schedule row can be
// keyed to. Values are stored lowercase in the store_hours.weekday
// column.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all valid values in calendar order starting at Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normalizes and validates a weekday name supplied by a
// client. Hours updates reference days by name, so an unknown name is
// a validation error rather than silently ignored.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Weekdays {
		if w == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid weekday: %q", s)
}

// WeekdayOf returns the schedule key for the calendar day of t.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
