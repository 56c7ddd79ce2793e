package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 9 * 3600, false},
		{"14:30:15", 14*3600 + 30*60 + 15, false},
		{"23:59:59", 23*3600 + 59*60 + 59, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"09:00:00xyz", 0, true},
		{"xyz09:00", 0, true},
		{"09:00:00:00", 0, true},
		{"nope", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	v, err := ParseTimeOfDay("18:45:07")
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "18:45:07" {
		t.Errorf("String() = %q", v.String())
	}
	if v.Short() != "18:45" {
		t.Errorf("Short() = %q", v.Short())
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"18:45"` {
		t.Errorf("MarshalJSON = %s", b)
	}

	var back TimeOfDay
	if err := json.Unmarshal([]byte(`"18:45"`), &back); err != nil {
		t.Fatal(err)
	}
	if back.Hour() != 18 || back.Minute() != 45 || back.Second() != 0 {
		t.Errorf("UnmarshalJSON short form = %s", back)
	}
}

// Hours updates bind into structs with nullable *TimeOfDay fields, and
// clients commonly echo back the short form the API emitted. Both
// directions must agree through such a struct.
func TestTimeOfDayPointerFieldRoundTrip(t *testing.T) {
	type entry struct {
		OpeningTime *TimeOfDay `json:"opening_time"`
		ClosingTime *TimeOfDay `json:"closing_time"`
	}

	// Given a marshalled schedule entry with one null bound
	opening := TimeOfDay(9 * 3600)
	b, err := json.Marshal(entry{OpeningTime: &opening})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"opening_time":"09:00","closing_time":null}` {
		t.Fatalf("Marshal = %s", b)
	}

	// When unmarshalling it back
	var got entry
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal short form: %v", err)
	}

	// Then the set field survives and the null stays nil
	if got.OpeningTime == nil || *got.OpeningTime != opening {
		t.Errorf("opening_time = %v, want 09:00", got.OpeningTime)
	}
	if got.ClosingTime != nil {
		t.Errorf("closing_time = %v, want nil", got.ClosingTime)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	var v TimeOfDay
	if err := v.Scan([]byte("09:30:00")); err != nil {
		t.Fatal(err)
	}
	if v.Short() != "09:30" {
		t.Errorf("Scan bytes = %s", v)
	}
	if err := v.Scan("21:00:00"); err != nil {
		t.Fatal(err)
	}
	if v.Short() != "21:00" {
		t.Errorf("Scan string = %s", v)
	}
	ts := time.Date(2025, 3, 1, 7, 15, 30, 999_000_000, time.UTC)
	if err := v.Scan(ts); err != nil {
		t.Fatal(err)
	}
	if v.String() != "07:15:30" { // sub-second precision truncated
		t.Errorf("Scan time.Time = %s", v)
	}
	if err := v.Scan(42); err == nil {
		t.Error("Scan(int): expected error")
	}
}

func TestClockOfTruncatesToSecond(t *testing.T) {
	ts := time.Date(2025, 6, 2, 14, 30, 59, 750_000_000, time.UTC)
	if got := ClockOf(ts); got.String() != "14:30:59" {
		t.Errorf("ClockOf = %s", got)
	}
}
