package analytics

import (
	"time"
)

// DefaultWindowDays is used when the caller supplies an unsupported window.
const DefaultWindowDays = 14

const dateLayout = "2006-01-02"

// NormalizeWindowDays clamps the requested window to one of the supported
// lengths. Anything else silently becomes the 14-day default, never an
// error.
func NormalizeWindowDays(days int) int {
	switch days {
	case 7, 14, 30:
		return days
	default:
		return DefaultWindowDays
	}
}

// DayStart normalizes a timestamp to local midnight.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd normalizes a timestamp to the last nanosecond of its calendar day.
func DayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, t.Location())
}

// BuildDailyActivity buckets task events into a gap-free daily sequence
// covering [now-(windowDays-1), now] at local midnight boundaries. Creation
// is attributed to the CreatedAt day; completion to the UpdatedAt day, and
// only for tasks whose completed flag is set.
func BuildDailyActivity(tasks []TaskRecord, windowDays int, now time.Time) []DailyActivity {
	windowDays = NormalizeWindowDays(windowDays)
	start := DayStart(now).AddDate(0, 0, -(windowDays - 1))

	activity := make([]DailyActivity, windowDays)
	index := make(map[string]int, windowDays)
	for i := range activity {
		date := start.AddDate(0, 0, i).Format(dateLayout)
		activity[i] = DailyActivity{Date: date}
		index[date] = i
	}

	for _, task := range tasks {
		if i, ok := index[DayStart(task.CreatedAt).Format(dateLayout)]; ok {
			activity[i].Created++
		}
		if task.Completed {
			if i, ok := index[DayStart(task.UpdatedAt).Format(dateLayout)]; ok {
				activity[i].Completed++
			}
		}
	}

	return activity
}

// BuildCumulativeActivity derives running totals and the backlog series
// from a daily activity sequence.
func BuildCumulativeActivity(activity []DailyActivity) []CumulativeActivity {
	result := make([]CumulativeActivity, len(activity))
	created, completed := 0, 0
	for i, day := range activity {
		created += day.Created
		completed += day.Completed
		result[i] = CumulativeActivity{
			DailyActivity:       day,
			CumulativeCreated:   created,
			CumulativeCompleted: completed,
			Backlog:             created - completed,
		}
	}
	return result
}
