// Package analytics derives a project analytics report from a task
// snapshot: daily activity buckets, trend/seasonality/anomaly detection,
// forecasts, member performance, a composite health score and rule-based
// insights. Every function is pure and the engine holds no mutable state,
// so a single Engine may serve concurrent requests.
package analytics

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSnapshot is returned when the snapshot is structurally unusable
// (nil task or member sets). Everything short of that degrades gracefully.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Engine computes analytics reports. Construct it once with the deployment
// rule configuration and reuse it across requests.
type Engine struct {
	thresholds Thresholds
	risk       RiskPolicy
}

// NewEngine builds an engine with the given rule configuration.
func NewEngine(th Thresholds, risk RiskPolicy) *Engine {
	return &Engine{thresholds: th, risk: risk}
}

// NewDefaultEngine builds an engine with the stock thresholds and risk
// bands.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultThresholds(), DefaultRiskPolicy())
}

// Compute assembles a full report for the snapshot over the requested
// window. Unsupported window lengths fall back to 14 days. The caller
// supplies now so repeated computations over the same snapshot are
// reproducible.
//
// Degenerate inputs (no tasks, no members, no completions, short windows)
// produce neutral values per component rather than errors.
func (e *Engine) Compute(snapshot Snapshot, windowDays int, now time.Time) (*Report, error) {
	if snapshot.Tasks == nil {
		return nil, fmt.Errorf("%w: nil tasks", ErrInvalidSnapshot)
	}
	if snapshot.Members == nil {
		return nil, fmt.Errorf("%w: nil members", ErrInvalidSnapshot)
	}

	windowDays = NormalizeWindowDays(windowDays)

	activity := BuildDailyActivity(snapshot.Tasks, windowDays, now)
	metrics := CountTaskMetrics(snapshot.Tasks)
	due := BucketTasksByDueDate(snapshot.Tasks, now)
	members := CalculateMemberPerformance(snapshot.Members, snapshot.Tasks, now)
	timeSeries := AnalyzeTimeSeries(activity, now)

	business := BusinessMetrics{
		CycleTime:           CalculateCycleTime(snapshot.Tasks),
		Throughput:          CalculateThroughput(activity, windowDays),
		EstimatedCompletion: EstimateCompletion(activity, metrics.Incomplete, now),
		OnTimeDelivery:      CalculateOnTimeDelivery(snapshot.Tasks),
		RiskAssessment: AssessRisk(e.risk, metrics, due,
			timeSeries.Trends.Backlog.Slope, timeSeries.Trends.Completed.Slope),
	}

	return &Report{
		Project:              snapshot.Project,
		WindowDays:           windowDays,
		TaskMetrics:          metrics,
		TasksByDueDate:       due,
		TaskActivityOverTime: activity,
		CumulativeActivity:   BuildCumulativeActivity(activity),
		MemberPerformance:    members,
		TimeSeriesAnalysis:   timeSeries,
		ProjectHealth:        CalculateProjectHealth(metrics, due, activity),
		AIInsights:           BuildInsights(e.thresholds, timeSeries, metrics, due, members, activity),
		BusinessMetrics:      business,
	}, nil
}
