package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time with no date and no timezone attached,
// expressed as seconds since midnight. Operating hours are civil times
// in the store's local day ("opens at 09:00"), so time.Time — which
// always carries a date and a location — is the wrong representation
// for the MySQL TIME columns backing them.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Each segment must be a
// plain decimal; anything before, between or after the segments is
// rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day: %q", s)
	}
	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time of day: %q", s)
		}
		fields[i] = n
	}
	h, m, sec := fields[0], fields[1], fields[2]
	if h > 23 || m > 59 || sec > 59 {
		return 0, fmt.Errorf("time of day out of range: %q", s)
	}
	return TimeOfDay(h*3600 + m*60 + sec), nil
}

// ClockOf truncates t to the second and drops its date, yielding the
// wall-clock position within t's own day.
func ClockOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) / 60 % 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String renders the full "HH:MM:SS" form used when writing TIME columns.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Short renders "HH:MM", the form clients send and receive.
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// MarshalJSON emits the short form to match the API contract.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Short())
}

// UnmarshalJSON accepts either form; null is handled by callers using
// *TimeOfDay fields.
func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Scan reads a MySQL TIME value. The driver hands TIME columns back as
// text since parseTime only covers DATE/DATETIME types.
func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		p, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = p
		return nil
	case string:
		p, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = p
		return nil
	case time.Time:
		*t = ClockOf(v)
		return nil
	}
	return fmt.Errorf("cannot scan %T into TimeOfDay", src)
}

// Value writes the full text form.
func (t TimeOfDay) Value() (driver.Value, error) { return t.String(), nil }
