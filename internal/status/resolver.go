// Package status derives a store's current operating state from its
// weekly schedule. Resolve is pure; persisting the result onto the
// store row is the caller's job (the hours-update handler and the
// periodic refresh scheduler both do so inside their own transaction).
package status

import "github.com/haeun-dev/campus-life-server/internal/model"

// endOfDay substitutes for a 00:00:00 closing time so "open until
// midnight" works without cross-day arithmetic. Schedules whose
// closing time crosses into the next calendar day are not supported;
// an inverted range (opening > closing) always resolves closed.
const endOfDay = model.TimeOfDay(23*3600 + 59*60 + 59)

// Resolve computes the status for one store given today's schedule row
// (nil when no row exists for the current weekday) and the current
// wall-clock time truncated to the second. All range checks are
// inclusive at both ends.
func Resolve(hours *model.StoreHours, now model.TimeOfDay) model.Status {
	if hours == nil || hours.OpeningTime == nil || hours.ClosingTime == nil {
		return model.StatusClosed
	}

	opening := *hours.OpeningTime
	closing := *hours.ClosingTime
	if closing == 0 {
		closing = endOfDay
	}

	if now < opening || now > closing {
		return model.StatusClosed
	}

	// A break window counts only when both bounds are set.
	if hours.BreakStartTime != nil && hours.BreakExitTime != nil {
		if now >= *hours.BreakStartTime && now <= *hours.BreakExitTime {
			return model.StatusBreakTime
		}
	}

	return model.StatusOpened
}
