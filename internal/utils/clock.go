package utils

import "time"

// The service runs on a single civil timezone: schedules and the
// scheduler's minute marks are Korea Standard Time regardless of the
// host clock.
var kst = loadKST()

func loadKST() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// KST has no DST, so a fixed offset is an exact fallback when
		// the tzdata files are missing from the container.
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// KST returns the service's civil timezone.
func KST() *time.Location { return kst }

// NowKST returns the current wall-clock time in Korea Standard Time.
func NowKST() time.Time { return time.Now().In(kst) }
