package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func at(hour, minute, sec int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, sec, 0, time.UTC)
}

func TestNextMark(t *testing.T) {
	cases := []struct {
		now  time.Time
		want time.Time
	}{
		{at(10, 0, 0), at(10, 1, 0)},
		{at(10, 1, 0), at(10, 11, 0)}, // exactly on a mark fires the next one
		{at(10, 1, 30), at(10, 11, 0)},
		{at(10, 10, 59), at(10, 11, 0)},
		{at(10, 45, 0), at(10, 51, 0)},
		{at(10, 51, 5), at(11, 1, 0)}, // hour rollover
		{time.Date(2025, 6, 2, 23, 55, 0, 0, time.UTC), time.Date(2025, 6, 3, 0, 1, 0, 0, time.UTC)}, // day rollover
	}
	for _, tc := range cases {
		if got := nextMark(tc.now); !got.Equal(tc.want) {
			t.Errorf("nextMark(%s) = %s, want %s", tc.now.Format("15:04:05"), got.Format("2006-01-02 15:04:05"), tc.want.Format("2006-01-02 15:04:05"))
		}
	}
}

func TestNextMarkAlwaysAligned(t *testing.T) {
	now := at(0, 0, 0)
	for i := 0; i < 200; i++ {
		next := nextMark(now)
		if !next.After(now) {
			t.Fatalf("nextMark(%s) = %s is not after now", now, next)
		}
		if next.Second() != 0 || next.Minute()%10 != 1 {
			t.Fatalf("nextMark(%s) = %s is not a minute-1-mod-10 mark", now, next)
		}
		now = next
	}
}

// fakeRefresher counts firings and can fail on demand.
type fakeRefresher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeRefresher) RefreshStatuses(ctx context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return 0, f.err
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestRunStopsOnCancel(t *testing.T) {
	ref := &fakeRefresher{}
	s := New(ref)
	// Pin the clock one millisecond before a mark so the first timer
	// fires almost immediately, then advance past it so subsequent
	// waits are long and the test exits during one of them.
	base := at(10, 0, 59).Add(999 * time.Millisecond)
	var mu sync.Mutex
	current := base
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		current = current.Add(time.Minute)
		return t
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for ref.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never fired")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestRunSurvivesBatchErrors(t *testing.T) {
	ref := &fakeRefresher{err: errors.New("db down")}
	s := New(ref)
	base := at(10, 0, 59).Add(999 * time.Millisecond)
	var mu sync.Mutex
	current := base
	s.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := current
		// Step just shy of the next mark each call so every loop
		// iteration fires quickly.
		current = current.Add(10 * time.Minute)
		return t
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for ref.count() < 2 {
		select {
		case <-deadline:
			t.Fatalf("scheduler stopped firing after an error (fired %d times)", ref.count())
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	<-done
}
