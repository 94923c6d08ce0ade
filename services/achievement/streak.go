package achievement

import (
	"time"

	"github.com/SohaibKhaliq/Volunteer-System-sub001/services/activity"
)

// MaxConsecutiveQualifyingMonths scans monthly approved-hours totals (most
// recent first) and returns the longest run of adjacent qualifying months.
// A month qualifies when its total meets minHours. A qualifying month that is
// not exactly one calendar month older than the previously accepted
// qualifying month restarts the run at 1, since it still counts itself.
// A non-qualifying month resets the run to 0.
func MaxConsecutiveQualifyingMonths(months []activity.MonthlyHours, minHours float64) int {
	var best, run int
	var lastAccepted time.Time

	for _, m := range months {
		if m.Hours < minHours {
			run = 0
			continue
		}

		if lastAccepted.IsZero() || monthIndex(lastAccepted)-monthIndex(m.Month) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
		lastAccepted = m.Month
	}

	return best
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month())
}
