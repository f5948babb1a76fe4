package analytics

import (
	"errors"
	"reflect"
	"testing"
)

func TestCompute_InvalidSnapshot(t *testing.T) {
	engine := NewDefaultEngine()

	tests := []struct {
		name     string
		snapshot Snapshot
	}{
		{"NilTasks", Snapshot{Members: []MemberRecord{}}},
		{"NilMembers", Snapshot{Tasks: []TaskRecord{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Compute(tt.snapshot, 14, testNow)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("err = %v, want ErrInvalidSnapshot", err)
			}
		})
	}
}

func TestCompute_EmptyProject(t *testing.T) {
	engine := NewDefaultEngine()
	snapshot := Snapshot{
		Project: ProjectSummary{ID: "p1", Title: "Empty"},
		Tasks:   []TaskRecord{},
		Members: []MemberRecord{},
	}

	report, err := engine.Compute(snapshot, 14, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if report.TaskMetrics != (TaskMetrics{}) {
		t.Errorf("TaskMetrics = %+v, want all zero", report.TaskMetrics)
	}
	if len(report.MemberPerformance) != 0 {
		t.Errorf("MemberPerformance has %d entries, want none", len(report.MemberPerformance))
	}
	if len(report.AIInsights) != 0 {
		t.Errorf("AIInsights = %+v, want none", report.AIInsights)
	}
	if report.BusinessMetrics.CycleTime != nil {
		t.Errorf("CycleTime = %v, want nil", *report.BusinessMetrics.CycleTime)
	}
	if report.BusinessMetrics.EstimatedCompletion != nil {
		t.Errorf("EstimatedCompletion = %+v, want nil", report.BusinessMetrics.EstimatedCompletion)
	}
	if len(report.TaskActivityOverTime) != 14 {
		t.Errorf("activity has %d buckets, want 14", len(report.TaskActivityOverTime))
	}
	if report.ProjectHealth.Status != HealthNeedsAttention {
		t.Errorf("health status = %s, want %s", report.ProjectHealth.Status, HealthNeedsAttention)
	}
}

func TestCompute_EchoesProjectSummary(t *testing.T) {
	engine := NewDefaultEngine()
	summary := ProjectSummary{
		ID:          "p1",
		Title:       "Apollo",
		Description: "Launch prep",
		CreatedAt:   testNow.AddDate(0, -1, 0),
		UpdatedAt:   testNow.AddDate(0, 0, -2),
	}
	snapshot := Snapshot{Project: summary, Tasks: []TaskRecord{}, Members: []MemberRecord{}}

	report, err := engine.Compute(snapshot, 14, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if report.Project != summary {
		t.Errorf("Project = %+v, want %+v", report.Project, summary)
	}
}

func TestCompute_ForecastFallback(t *testing.T) {
	// A 14-day window yields 14 activity points, which is enough for a
	// forecast, but a 7-day window is not: both arrays stay nil-filled.
	engine := NewDefaultEngine()
	snapshot := Snapshot{Tasks: []TaskRecord{}, Members: []MemberRecord{}}

	report, err := engine.Compute(snapshot, 7, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	forecast := report.TimeSeriesAnalysis.Forecast
	if len(forecast.Created) != 7 || len(forecast.Completed) != 7 {
		t.Fatalf("forecast lengths = %d/%d, want 7/7", len(forecast.Created), len(forecast.Completed))
	}
	for i := 0; i < 7; i++ {
		if forecast.Created[i] != nil || forecast.Completed[i] != nil {
			t.Errorf("forecast[%d] not nil with insufficient history", i)
		}
	}
	if len(forecast.Dates) != 7 {
		t.Fatalf("forecast has %d dates, want 7", len(forecast.Dates))
	}
	if forecast.Dates[0] != DayStart(testNow).AddDate(0, 0, 1).Format(dateLayout) {
		t.Errorf("first forecast date = %s, want tomorrow", forecast.Dates[0])
	}
}

func TestCompute_SingleOverdueTask(t *testing.T) {
	engine := NewDefaultEngine()
	snapshot := Snapshot{
		Project: ProjectSummary{ID: "p1", Title: "Late"},
		Tasks: []TaskRecord{
			{
				ID:        "t1",
				Title:     "Ship it",
				DueDate:   datePtr(testNow.AddDate(0, 0, -3)),
				CreatedAt: testNow.AddDate(0, 0, -10),
				UpdatedAt: testNow.AddDate(0, 0, -10),
			},
		},
		Members: []MemberRecord{},
	}

	report, err := engine.Compute(snapshot, 14, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if report.TasksByDueDate.Overdue != 1 {
		t.Errorf("Overdue = %d, want 1", report.TasksByDueDate.Overdue)
	}
	risk := report.BusinessMetrics.RiskAssessment
	if risk.Score < 30 {
		t.Errorf("risk score = %d, want at least medium", risk.Score)
	}
	if risk.Level == RiskLow {
		t.Errorf("risk level = %s, want above low", risk.Level)
	}
	if insight := findInsight(report.AIInsights, "High Overdue Rate"); insight == nil {
		t.Errorf("missing overdue insight: %+v", report.AIInsights)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	engine := NewDefaultEngine()
	snapshot := Snapshot{
		Project: ProjectSummary{ID: "p1", Title: "Steady"},
		Tasks: []TaskRecord{
			{ID: "t1", Completed: true, CreatedAt: testNow.AddDate(0, 0, -5), UpdatedAt: testNow.AddDate(0, 0, -2), AssignedTo: "m1"},
			{ID: "t2", CreatedAt: testNow.AddDate(0, 0, -4), UpdatedAt: testNow.AddDate(0, 0, -4), AssignedTo: "m1", DueDate: datePtr(testNow.AddDate(0, 0, 2))},
			{ID: "t3", CreatedAt: testNow.AddDate(0, 0, -1), UpdatedAt: testNow.AddDate(0, 0, -1)},
		},
		Members: []MemberRecord{{ID: "m1", UserID: "u1", Name: "Ada"}},
	}

	first, err := engine.Compute(snapshot, 30, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := engine.Compute(snapshot, 30, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated computation over the same snapshot diverged")
	}
}

func TestCompute_WindowFallback(t *testing.T) {
	engine := NewDefaultEngine()
	snapshot := Snapshot{Tasks: []TaskRecord{}, Members: []MemberRecord{}}

	report, err := engine.Compute(snapshot, 21, testNow)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if report.WindowDays != DefaultWindowDays {
		t.Errorf("WindowDays = %d, want %d", report.WindowDays, DefaultWindowDays)
	}
}
