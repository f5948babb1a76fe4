package analytics

import (
	"fmt"
	"math"
	"time"
)

// Thresholds is the tunable trigger table for the insight rules. Keeping
// the values in one named structure lets deployments adjust the rule set
// from configuration instead of code.
type Thresholds struct {
	VelocityRising     float64 `yaml:"velocityRising" json:"velocityRising"`         // completed-trend slope, tasks/day
	VelocityFalling    float64 `yaml:"velocityFalling" json:"velocityFalling"`       // completed-trend slope, tasks/day
	BacklogGrowing     float64 `yaml:"backlogGrowing" json:"backlogGrowing"`         // backlog-trend slope, tasks/day
	BacklogShrinking   float64 `yaml:"backlogShrinking" json:"backlogShrinking"`     // backlog-trend slope, tasks/day
	OverduePercent     float64 `yaml:"overduePercent" json:"overduePercent"`         // share of all tasks
	WorkloadRatio      float64 `yaml:"workloadRatio" json:"workloadRatio"`           // max/min assigned tasks
	AnomalyRecencyDays int     `yaml:"anomalyRecencyDays" json:"anomalyRecencyDays"` // anomaly must fall in the trailing buckets
}

// DefaultThresholds returns the stock rule triggers.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VelocityRising:     0.1,
		VelocityFalling:    -0.1,
		BacklogGrowing:     0.2,
		BacklogShrinking:   -0.1,
		OverduePercent:     20,
		WorkloadRatio:      3,
		AnomalyRecencyDays: 7,
	}
}

// Band maps a threshold crossing to a point contribution. Bands are
// evaluated in order; the first match wins.
type Band struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Points    int     `yaml:"points" json:"points"`
}

// RiskPolicy defines the four banded risk contributions and the level
// boundaries. Overdue and Backlog bands match when the signal exceeds the
// threshold, Velocity and Completion when it falls below.
type RiskPolicy struct {
	Overdue    []Band `yaml:"overdue" json:"overdue"`       // percent of tasks overdue
	Backlog    []Band `yaml:"backlog" json:"backlog"`       // backlog-trend slope
	Velocity   []Band `yaml:"velocity" json:"velocity"`     // completed-trend slope
	Completion []Band `yaml:"completion" json:"completion"` // percent of tasks completed
	MediumAt   int    `yaml:"mediumAt" json:"mediumAt"`
	HighAt     int    `yaml:"highAt" json:"highAt"`
}

// DefaultRiskPolicy returns the stock banding, each factor capped at 25.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		Overdue:    []Band{{20, 25}, {10, 15}, {5, 5}},
		Backlog:    []Band{{0.3, 25}, {0.1, 15}, {0, 5}},
		Velocity:   []Band{{-0.2, 25}, {-0.1, 15}, {0, 5}},
		Completion: []Band{{30, 25}, {50, 15}, {70, 5}},
		MediumAt:   30,
		HighAt:     60,
	}
}

// BuildInsights runs every heuristic rule against the computed signals and
// collects one insight per triggered rule, in rule order.
func BuildInsights(th Thresholds, ts TimeSeriesAnalysis, metrics TaskMetrics, due TasksByDueDate, members []MemberPerformance, activity []DailyActivity) []Insight {
	insights := []Insight{}

	velocityTrend := ts.Trends.Completed.Slope
	if velocityTrend > th.VelocityRising {
		insights = append(insights, Insight{
			Type:        InsightPositive,
			Title:       "Increasing Velocity",
			Description: "Task completion rate is trending upward, indicating improved team productivity.",
			Metric:      fmt.Sprintf("+%v tasks/day", round2(velocityTrend)),
		})
	} else if velocityTrend < th.VelocityFalling {
		insights = append(insights, Insight{
			Type:        InsightNegative,
			Title:       "Decreasing Velocity",
			Description: "Task completion rate is trending downward. Consider checking for blockers or team capacity issues.",
			Metric:      fmt.Sprintf("%v tasks/day", round2(velocityTrend)),
		})
	}

	backlogTrend := ts.Trends.Backlog.Slope
	if backlogTrend > th.BacklogGrowing {
		insights = append(insights, Insight{
			Type:        InsightWarning,
			Title:       "Growing Backlog",
			Description: "The backlog is growing faster than the completion rate. Consider scope management or increasing capacity.",
			Metric:      fmt.Sprintf("+%v tasks/day", round2(backlogTrend)),
		})
	} else if backlogTrend < th.BacklogShrinking {
		insights = append(insights, Insight{
			Type:        InsightPositive,
			Title:       "Shrinking Backlog",
			Description: "The team is completing tasks faster than new ones are being added, reducing the backlog.",
			Metric:      fmt.Sprintf("%v tasks/day", round2(backlogTrend)),
		})
	}

	if metrics.Total > 0 {
		overduePct := float64(due.Overdue) / float64(metrics.Total) * 100
		if overduePct > th.OverduePercent {
			insights = append(insights, Insight{
				Type:        InsightWarning,
				Title:       "High Overdue Rate",
				Description: fmt.Sprintf("%d%% of tasks are overdue. Consider reviewing due dates or reallocating resources.", int(math.Round(overduePct))),
				Metric:      fmt.Sprintf("%d tasks", due.Overdue),
			})
		}
	}

	if insight, ok := workloadInsight(th, members); ok {
		insights = append(insights, insight)
	}

	if insight, ok := anomalyInsight(th, ts.Anomalies.Completed, activity); ok {
		insights = append(insights, insight)
	}

	if ts.Seasonality.Completed.HasSeasonality {
		insights = append(insights, seasonalityInsight(ts.Seasonality.Completed, activity))
	}

	return insights
}

func workloadInsight(th Thresholds, members []MemberPerformance) (Insight, bool) {
	if len(members) < 2 {
		return Insight{}, false
	}

	most, fewest := members[0], members[0]
	for _, m := range members[1:] {
		if m.TasksAssigned > most.TasksAssigned {
			most = m
		}
		if m.TasksAssigned < fewest.TasksAssigned {
			fewest = m
		}
	}

	minTasks := fewest.TasksAssigned
	if minTasks == 0 {
		minTasks = 1
	}
	ratio := float64(most.TasksAssigned) / float64(minTasks)
	if ratio <= th.WorkloadRatio {
		return Insight{}, false
	}

	return Insight{
		Type:  InsightWarning,
		Title: "Unbalanced Workload",
		Description: fmt.Sprintf("Workload is unevenly distributed. %s has %d tasks while %s has only %d.",
			most.Name, most.TasksAssigned, fewest.Name, fewest.TasksAssigned),
		Metric: fmt.Sprintf("%vx difference", round1(ratio)),
	}, true
}

func anomalyInsight(th Thresholds, anomalies []Anomaly, activity []DailyActivity) (Insight, bool) {
	if len(anomalies) == 0 {
		return Insight{}, false
	}

	latest := anomalies[len(anomalies)-1]
	if latest.Index < 0 || latest.Index >= len(activity) {
		return Insight{}, false
	}
	if latest.Index < len(activity)-th.AnomalyRecencyDays {
		return Insight{}, false
	}

	date := activity[latest.Index].Date
	if latest.Value > 0 {
		return Insight{
			Type:        InsightPositive,
			Title:       "Productivity Spike",
			Description: fmt.Sprintf("Unusual increase in task completion detected on %s.", date),
			Metric:      fmt.Sprintf("%v tasks", latest.Value),
		}, true
	}
	return Insight{
		Type:        InsightNegative,
		Title:       "Productivity Drop",
		Description: fmt.Sprintf("Unusual decrease in task completion detected on %s.", date),
		Metric:      fmt.Sprintf("%v tasks", latest.Value),
	}, true
}

func seasonalityInsight(season SeasonalityResult, activity []DailyActivity) Insight {
	maxIdx, minIdx := 0, 0
	for i, v := range season.Pattern {
		if v > season.Pattern[maxIdx] {
			maxIdx = i
		}
		if v < season.Pattern[minIdx] {
			minIdx = i
		}
	}

	// Pattern position 0 lines up with the first day of the window, so the
	// weekday is offset by the window's starting weekday.
	startWeekday := 0
	if len(activity) > 0 {
		if t, err := time.Parse(dateLayout, activity[0].Date); err == nil {
			startWeekday = int(t.Weekday())
		}
	}
	peakDay := time.Weekday((startWeekday + maxIdx) % 7)
	dipDay := time.Weekday((startWeekday + minIdx) % 7)

	return Insight{
		Type:        InsightInfo,
		Title:       "Weekly Pattern Detected",
		Description: fmt.Sprintf("Team productivity tends to peak on %ss and dip on %ss.", peakDay, dipDay),
		Metric:      fmt.Sprintf("%d%% confidence", int(math.Round(season.Strength*100))),
	}
}

// AssessRisk sums the four banded contributions into the composite risk
// score and maps it onto a level.
func AssessRisk(policy RiskPolicy, metrics TaskMetrics, due TasksByDueDate, backlogTrend, velocityTrend float64) RiskAssessment {
	score := 0

	overduePct := 0.0
	completionPct := 0.0
	if metrics.Total > 0 {
		overduePct = float64(due.Overdue) / float64(metrics.Total) * 100
		completionPct = float64(metrics.Completed) / float64(metrics.Total) * 100
	}

	score += scoreAbove(policy.Overdue, overduePct)
	score += scoreAbove(policy.Backlog, backlogTrend)
	score += scoreBelow(policy.Velocity, velocityTrend)
	score += scoreBelow(policy.Completion, completionPct)

	level := RiskLow
	switch {
	case score >= policy.HighAt:
		level = RiskHigh
	case score >= policy.MediumAt:
		level = RiskMedium
	}

	return RiskAssessment{Score: score, Level: level}
}

func scoreAbove(bands []Band, v float64) int {
	for _, b := range bands {
		if v > b.Threshold {
			return b.Points
		}
	}
	return 0
}

func scoreBelow(bands []Band, v float64) int {
	for _, b := range bands {
		if v < b.Threshold {
			return b.Points
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
