// Package scheduler runs the periodic store-status refresh: at fixed
// minute marks within every hour it re-resolves and persists the
// status of every store. It is the only autonomous control flow in the
// process and is owned by main, which starts it once and stops it via
// context cancellation.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/haeun-dev/campus-life-server/internal/utils"
)

// refreshMinutes are the wall-clock minute marks the refresh fires at:
// every ten minutes, offset one minute past the hour so edits landing
// on the hour are picked up shortly after.
var refreshMinutes = [...]int{1, 11, 21, 31, 41, 51}

// StatusRefresher is the storage operation a firing executes. The
// store repository implements it as one all-or-nothing transaction.
type StatusRefresher interface {
	RefreshStatuses(ctx context.Context, now time.Time) (int, error)
}

// StatusScheduler fires StatusRefresher at the minute marks. Clock is
// injectable for tests and defaults to KST wall-clock time.
type StatusScheduler struct {
	refresher StatusRefresher
	now       func() time.Time
}

func New(refresher StatusRefresher) *StatusScheduler {
	return &StatusScheduler{refresher: refresher, now: utils.NowKST}
}

// nextMark returns the first instant strictly after now whose minute
// is one of the refresh marks, at second zero. Firings are wall-clock
// aligned: a slow batch delays the next firing but the marks
// themselves never drift.
func nextMark(now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	for hour := 0; hour < 2; hour++ {
		for _, m := range refreshMinutes {
			candidate := at.Add(time.Duration(hour)*time.Hour + time.Duration(m)*time.Minute)
			if candidate.After(now) {
				return candidate
			}
		}
	}
	// Unreachable: minute 1 of the next hour always lies ahead.
	return at.Add(time.Hour + time.Minute)
}

// Run blocks until ctx is cancelled, firing a refresh batch at every
// mark. Batch errors are logged and swallowed; the loop keeps going so
// a transient storage failure never kills the refresh. Cancellation
// between firings stops the loop immediately; a batch already running
// commits or rolls back as a unit.
func (s *StatusScheduler) Run(ctx context.Context) {
	log.Printf("status scheduler started (marks %v)", refreshMinutes)
	for {
		now := s.now()
		timer := time.NewTimer(nextMark(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Printf("status scheduler stopped: %v", ctx.Err())
			return
		case <-timer.C:
		}

		fired := s.now()
		updated, err := s.refresher.RefreshStatuses(ctx, fired)
		if err != nil {
			log.Printf("store status refresh failed at %s: %v", fired.Format(time.RFC3339), err)
			continue
		}
		log.Printf("store status refresh at %s: %d store(s) changed", fired.Format(time.RFC3339), updated)
	}
}
