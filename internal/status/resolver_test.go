package status

import (
	"testing"

	"github.com/haeun-dev/campus-life-server/internal/model"
)

func tod(t *testing.T, s string) model.TimeOfDay {
	t.Helper()
	v, err := model.ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return v
}

func todPtr(t *testing.T, s string) *model.TimeOfDay {
	t.Helper()
	v := tod(t, s)
	return &v
}

func schedule(t *testing.T, opening, closing, breakStart, breakExit string) *model.StoreHours {
	t.Helper()
	h := &model.StoreHours{Weekday: model.Monday}
	if opening != "" {
		h.OpeningTime = todPtr(t, opening)
	}
	if closing != "" {
		h.ClosingTime = todPtr(t, closing)
	}
	if breakStart != "" {
		h.BreakStartTime = todPtr(t, breakStart)
	}
	if breakExit != "" {
		h.BreakExitTime = todPtr(t, breakExit)
	}
	return h
}

func TestResolveClosedWithoutSchedule(t *testing.T) {
	times := []string{"00:00", "09:00", "12:30:15", "23:59:59"}
	for _, now := range times {
		if got := Resolve(nil, tod(t, now)); got != model.StatusClosed {
			t.Errorf("nil schedule at %s: got %s, want closed", now, got)
		}
		if got := Resolve(schedule(t, "", "21:00", "", ""), tod(t, now)); got != model.StatusClosed {
			t.Errorf("nil opening at %s: got %s, want closed", now, got)
		}
		if got := Resolve(schedule(t, "09:00", "", "", ""), tod(t, now)); got != model.StatusClosed {
			t.Errorf("nil closing at %s: got %s, want closed", now, got)
		}
	}
}

func TestResolveBasicWindow(t *testing.T) {
	h := schedule(t, "09:00", "21:00", "", "")
	cases := []struct {
		now  string
		want model.Status
	}{
		{"08:59:59", model.StatusClosed},
		{"09:00:00", model.StatusOpened}, // inclusive lower bound
		{"12:00:00", model.StatusOpened},
		{"21:00:00", model.StatusOpened}, // inclusive upper bound
		{"21:00:01", model.StatusClosed},
	}
	for _, tc := range cases {
		if got := Resolve(h, tod(t, tc.now)); got != tc.want {
			t.Errorf("at %s: got %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestResolveMidnightClosing(t *testing.T) {
	h := schedule(t, "18:00", "00:00", "", "")
	cases := []struct {
		now  string
		want model.Status
	}{
		{"17:59:59", model.StatusClosed},
		{"18:00:00", model.StatusOpened},
		{"23:30:00", model.StatusOpened},
		{"23:59:59", model.StatusOpened},
	}
	for _, tc := range cases {
		if got := Resolve(h, tod(t, tc.now)); got != tc.want {
			t.Errorf("at %s: got %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestResolveBreakWindow(t *testing.T) {
	h := schedule(t, "09:00", "21:00", "14:00", "15:00")
	cases := []struct {
		now  string
		want model.Status
	}{
		{"13:59:59", model.StatusOpened},
		{"14:00:00", model.StatusBreakTime}, // inclusive
		{"14:30:00", model.StatusBreakTime},
		{"15:00:00", model.StatusBreakTime}, // inclusive
		{"15:00:01", model.StatusOpened},
		{"20:00:00", model.StatusOpened},
		{"22:00:00", model.StatusClosed}, // break never applies outside opening hours
	}
	for _, tc := range cases {
		if got := Resolve(h, tod(t, tc.now)); got != tc.want {
			t.Errorf("at %s: got %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestResolveHalfBreakIgnored(t *testing.T) {
	onlyStart := schedule(t, "09:00", "21:00", "14:00", "")
	onlyExit := schedule(t, "09:00", "21:00", "", "15:00")
	if got := Resolve(onlyStart, tod(t, "14:30")); got != model.StatusOpened {
		t.Errorf("break with only start: got %s, want opened", got)
	}
	if got := Resolve(onlyExit, tod(t, "14:30")); got != model.StatusOpened {
		t.Errorf("break with only exit: got %s, want opened", got)
	}
}

func TestResolveInvertedRangeAlwaysClosed(t *testing.T) {
	// Overnight schedules are unsupported; the literal comparison
	// leaves an inverted range permanently closed.
	h := schedule(t, "22:00", "02:00", "", "")
	for _, now := range []string{"23:00", "01:00", "12:00"} {
		if got := Resolve(h, tod(t, now)); got != model.StatusClosed {
			t.Errorf("inverted range at %s: got %s, want closed", now, got)
		}
	}
}
