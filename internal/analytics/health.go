package analytics

import (
	"math"
)

// Health score weights. Completion and overdue-avoidance carry most of the
// signal; recent activity breaks ties between idle and busy projects.
const (
	healthWeightCompletion = 0.4
	healthWeightOverdue    = 0.4
	healthWeightActivity   = 0.2
)

// CalculateProjectHealth derives the composite 0..100 health score from
// completion rate, overdue avoidance (measured against tasks that carry a
// due date) and the share of recent days with any activity.
func CalculateProjectHealth(metrics TaskMetrics, due TasksByDueDate, activity []DailyActivity) ProjectHealth {
	completionRate := 0
	if metrics.Total > 0 {
		completionRate = int(math.Round(float64(metrics.Completed) / float64(metrics.Total) * 100))
	}

	overdueRate := 100
	if withDue := metrics.Total - due.NoDueDate; withDue > 0 {
		overdueRate = 100 - int(math.Round(float64(due.Overdue)/float64(withDue)*100))
		if overdueRate < 0 {
			overdueRate = 0
		}
	}

	recentDays := len(activity)
	if recentDays > 7 {
		recentDays = 7
	}
	activityLevel := 0
	if recentDays > 0 {
		daysWithActivity := 0
		for _, day := range activity[len(activity)-recentDays:] {
			if day.Created > 0 {
				daysWithActivity++
			}
			if day.Completed > 0 {
				daysWithActivity++
			}
		}
		activityLevel = int(math.Round(float64(daysWithActivity) / float64(recentDays*2) * 100))
	}

	score := int(math.Round(float64(completionRate)*healthWeightCompletion +
		float64(overdueRate)*healthWeightOverdue +
		float64(activityLevel)*healthWeightActivity))

	status := HealthNeedsAttention
	switch {
	case score >= 80:
		status = HealthExcellent
	case score >= 65:
		status = HealthGood
	case score >= 50:
		status = HealthFair
	}

	return ProjectHealth{
		Score:  score,
		Status: status,
		Details: HealthDetails{
			CompletionRate: completionRate,
			OverdueRate:    overdueRate,
			ActivityLevel:  activityLevel,
		},
	}
}
