package analytics

import (
	"time"
)

// TaskRecord is the read-only task snapshot the engine consumes. The
// persistence layer resolves assignee linkage before handing it over.
//
// UpdatedAt doubles as the completion timestamp for completed tasks. The
// schema has no dedicated completedAt field, so any later edit shifts the
// apparent completion day.
type TaskRecord struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Completed  bool       `json:"completed"`
	Archived   bool       `json:"archived"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	AssignedTo string     `json:"assignedTo,omitempty"`
}

// MemberRecord is a project member with the user display name resolved.
type MemberRecord struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// ProjectSummary carries the project fields echoed back in the report.
type ProjectSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snapshot is the joined project state the engine computes a report from.
type Snapshot struct {
	Project ProjectSummary `json:"project"`
	Tasks   []TaskRecord   `json:"tasks"`
	Members []MemberRecord `json:"members"`
}

// DailyActivity is one calendar day's created/completed counts. A window's
// sequence is contiguous and gap-free, days without events carry zeros.
type DailyActivity struct {
	Date      string `json:"date"` // 2006-01-02
	Created   int    `json:"created"`
	Completed int    `json:"completed"`
}

// CumulativeActivity extends DailyActivity with running totals and the
// derived backlog (cumulative created minus cumulative completed).
type CumulativeActivity struct {
	DailyActivity
	CumulativeCreated   int `json:"cumulativeCreated"`
	CumulativeCompleted int `json:"cumulativeCompleted"`
	Backlog             int `json:"backlog"`
}

// TrendResult is an ordinary-least-squares fit over index/value pairs.
type TrendResult struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
}

// Anomaly flags a data point whose z-score exceeds the detection threshold.
type Anomaly struct {
	Index     int     `json:"index"`
	Value     float64 `json:"value"`
	ZScore    float64 `json:"zScore"`
	IsAnomaly bool    `json:"isAnomaly"`
}

// SeasonalityResult describes a repeating weekly pattern. Pattern holds the
// mean value per position within the period; empty when the series is too
// short to cover two full periods.
type SeasonalityResult struct {
	HasSeasonality bool      `json:"hasSeasonality"`
	Strength       float64   `json:"strength"`
	Pattern        []float64 `json:"pattern"`
}

// ForecastResult extrapolates the linear trend 7 days ahead. Values are nil
// placeholders when fewer than 10 historical points are available.
type ForecastResult struct {
	Created   []*float64 `json:"created"`
	Completed []*float64 `json:"completed"`
	Dates     []string   `json:"dates"`
}

// SeriesTrends groups the per-series regression results.
type SeriesTrends struct {
	Created   TrendResult `json:"created"`
	Completed TrendResult `json:"completed"`
	Backlog   TrendResult `json:"backlog"`
}

// SeriesMovingAverages groups the smoothed created/completed series.
type SeriesMovingAverages struct {
	Created   []float64 `json:"created"`
	Completed []float64 `json:"completed"`
}

// SeriesAnomalies groups detected outliers per series.
type SeriesAnomalies struct {
	Created   []Anomaly `json:"created"`
	Completed []Anomaly `json:"completed"`
}

// SeriesSeasonality groups weekly-pattern detection per series.
type SeriesSeasonality struct {
	Created   SeasonalityResult `json:"created"`
	Completed SeasonalityResult `json:"completed"`
}

// TimeSeriesAnalysis is the full derived view over the daily activity.
type TimeSeriesAnalysis struct {
	Trends         SeriesTrends         `json:"trends"`
	MovingAverages SeriesMovingAverages `json:"movingAverages"`
	Anomalies      SeriesAnomalies      `json:"anomalies"`
	Seasonality    SeriesSeasonality    `json:"seasonality"`
	Forecast       ForecastResult       `json:"forecast"`
}

// TaskMetrics are the headline status counts. Incomplete excludes archived
// tasks.
type TaskMetrics struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
	Archived   int `json:"archived"`
}

// TasksByDueDate partitions non-completed tasks by urgency. A task lands in
// exactly one bucket; completed tasks appear in none.
type TasksByDueDate struct {
	Overdue     int `json:"overdue"`
	DueToday    int `json:"dueToday"`
	DueThisWeek int `json:"dueThisWeek"`
	DueLater    int `json:"dueLater"`
	NoDueDate   int `json:"noDueDate"`
}

// MemberPerformance aggregates one member's workload. Members with zero
// assigned tasks are dropped from the report entirely.
type MemberPerformance struct {
	UserID            string   `json:"userId"`
	Name              string   `json:"name"`
	TasksAssigned     int      `json:"tasksAssigned"`
	TasksCompleted    int      `json:"tasksCompleted"`
	AvgCompletionTime *float64 `json:"avgCompletionTime"` // days, nil without completions
	TasksOverdue      int      `json:"tasksOverdue"`
}

// EstimatedCompletion projects when the remaining backlog empties at the
// recent completion velocity.
type EstimatedCompletion struct {
	Date          string `json:"date"`
	DaysRemaining int    `json:"daysRemaining"`
}

// RiskAssessment is the banded composite risk score (0..100).
type RiskAssessment struct {
	Score int    `json:"score"`
	Level string `json:"level"` // Low, Medium, High
}

// Risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// BusinessMetrics are the delivery-oriented aggregates.
type BusinessMetrics struct {
	CycleTime           *float64             `json:"cycleTime"`  // days, nil without completions
	Throughput          float64              `json:"throughput"` // tasks per day over the window
	EstimatedCompletion *EstimatedCompletion `json:"estimatedCompletion"`
	OnTimeDelivery      *int                 `json:"onTimeDelivery"` // percent, nil without completed tasks that had a due date
	RiskAssessment      RiskAssessment       `json:"riskAssessment"`
}

// Insight types.
const (
	InsightPositive = "positive"
	InsightNegative = "negative"
	InsightWarning  = "warning"
	InsightInfo     = "info"
)

// Insight is one triggered heuristic observation. Order follows rule
// evaluation order, not severity.
type Insight struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Metric      string `json:"metric"`
}

// Health statuses.
const (
	HealthExcellent      = "Excellent"
	HealthGood           = "Good"
	HealthFair           = "Fair"
	HealthNeedsAttention = "Needs Attention"
)

// HealthDetails are the three inputs to the composite health score, each
// expressed 0..100.
type HealthDetails struct {
	CompletionRate int `json:"completionRate"`
	OverdueRate    int `json:"overdueRate"` // inverted, higher is better
	ActivityLevel  int `json:"activityLevel"`
}

// ProjectHealth is the weighted composite project score.
type ProjectHealth struct {
	Score   int           `json:"score"`
	Status  string        `json:"status"`
	Details HealthDetails `json:"details"`
}

// Report is the root aggregate returned to the caller. It is assembled once
// per request and never mutated afterwards.
type Report struct {
	Project              ProjectSummary       `json:"project"`
	WindowDays           int                  `json:"windowDays"`
	TaskMetrics          TaskMetrics          `json:"taskMetrics"`
	TasksByDueDate       TasksByDueDate       `json:"tasksByDueDate"`
	TaskActivityOverTime []DailyActivity      `json:"taskActivityOverTime"`
	CumulativeActivity   []CumulativeActivity `json:"cumulativeActivity"`
	MemberPerformance    []MemberPerformance  `json:"memberPerformance"`
	TimeSeriesAnalysis   TimeSeriesAnalysis   `json:"timeSeriesAnalysis"`
	ProjectHealth        ProjectHealth        `json:"projectHealth"`
	AIInsights           []Insight            `json:"aiInsights"`
	BusinessMetrics      BusinessMetrics      `json:"businessMetrics"`
}
