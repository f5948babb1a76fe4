package analytics

import (
	"math"
	"time"
)

// CountTaskMetrics tallies the headline status counts. Archived tasks are
// not counted as incomplete.
func CountTaskMetrics(tasks []TaskRecord) TaskMetrics {
	m := TaskMetrics{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			m.Completed++
		}
		if t.Archived {
			m.Archived++
		}
		if !t.Completed && !t.Archived {
			m.Incomplete++
		}
	}
	return m
}

// BucketTasksByDueDate classifies every non-completed task into exactly one
// due-date bucket relative to now. The week ends at the upcoming Sunday
// midnight, so dueThisWeek runs through Saturday.
func BucketTasksByDueDate(tasks []TaskRecord, now time.Time) TasksByDueDate {
	today := DayStart(now)
	endOfToday := DayEnd(now)
	endOfWeek := today.AddDate(0, 0, 7-int(today.Weekday()))

	var b TasksByDueDate
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if t.DueDate == nil {
			b.NoDueDate++
			continue
		}
		due := *t.DueDate
		switch {
		case due.Before(today):
			b.Overdue++
		case !due.After(endOfToday):
			b.DueToday++
		case !due.After(endOfWeek):
			b.DueThisWeek++
		default:
			b.DueLater++
		}
	}
	return b
}

// CalculateMemberPerformance aggregates per-member workload metrics.
// Members without a single assigned task are omitted from the result.
func CalculateMemberPerformance(members []MemberRecord, tasks []TaskRecord, now time.Time) []MemberPerformance {
	today := DayStart(now)

	performance := make([]MemberPerformance, 0, len(members))
	for _, member := range members {
		perf := MemberPerformance{UserID: member.UserID, Name: member.Name}

		var completionDays float64
		for _, t := range tasks {
			if t.AssignedTo != member.ID {
				continue
			}
			perf.TasksAssigned++
			if t.Completed {
				perf.TasksCompleted++
				completionDays += t.UpdatedAt.Sub(t.CreatedAt).Hours() / 24
			} else if t.DueDate != nil && t.DueDate.Before(today) {
				perf.TasksOverdue++
			}
		}

		if perf.TasksAssigned == 0 {
			continue
		}
		if perf.TasksCompleted > 0 {
			avg := round1(completionDays / float64(perf.TasksCompleted))
			perf.AvgCompletionTime = &avg
		}
		performance = append(performance, perf)
	}
	return performance
}

// CalculateCycleTime returns the mean creation-to-completion span in days
// across all completed tasks, or nil when nothing has completed yet.
func CalculateCycleTime(tasks []TaskRecord) *float64 {
	var days float64
	count := 0
	for _, t := range tasks {
		if t.Completed {
			days += t.UpdatedAt.Sub(t.CreatedAt).Hours() / 24
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := round1(days / float64(count))
	return &avg
}

// CalculateThroughput returns completed tasks per day over the window.
func CalculateThroughput(activity []DailyActivity, windowDays int) float64 {
	total := 0
	for _, day := range activity {
		total += day.Completed
	}
	if windowDays <= 0 {
		return 0
	}
	return round1(float64(total) / float64(windowDays))
}

// velocityLookbackDays is the fixed denominator for the recent completion
// velocity. Windows shorter than 14 days contribute implicit zero days.
const velocityLookbackDays = 14

// EstimateCompletion projects a completion date for the remaining backlog
// from the mean of the last 14 daily completion counts. Nil when there is
// nothing left to do or the team has no recent velocity.
func EstimateCompletion(activity []DailyActivity, incomplete int, now time.Time) *EstimatedCompletion {
	if incomplete == 0 {
		return nil
	}

	start := len(activity) - velocityLookbackDays
	if start < 0 {
		start = 0
	}
	total := 0
	for _, day := range activity[start:] {
		total += day.Completed
	}
	velocity := float64(total) / float64(velocityLookbackDays)
	if velocity <= 0 {
		return nil
	}

	days := int(math.Ceil(float64(incomplete) / velocity))
	return &EstimatedCompletion{
		Date:          DayStart(now).AddDate(0, 0, days).Format(dateLayout),
		DaysRemaining: days,
	}
}

// CalculateOnTimeDelivery returns the percentage of completed tasks that
// finished by the end of their due day, or nil when no completed task had a
// due date.
func CalculateOnTimeDelivery(tasks []TaskRecord) *int {
	withDue, onTime := 0, 0
	for _, t := range tasks {
		if !t.Completed || t.DueDate == nil {
			continue
		}
		withDue++
		if !t.UpdatedAt.After(DayEnd(*t.DueDate)) {
			onTime++
		}
	}
	if withDue == 0 {
		return nil
	}
	pct := int(math.Round(float64(onTime) / float64(withDue) * 100))
	return &pct
}
