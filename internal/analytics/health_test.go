package analytics

import (
	"testing"
)

func TestCalculateProjectHealth_EmptyProject(t *testing.T) {
	got := CalculateProjectHealth(TaskMetrics{}, TasksByDueDate{}, nil)

	// No tasks with due dates means perfect overdue avoidance; everything
	// else is zero. 100*0.4 = 40.
	if got.Score != 40 {
		t.Errorf("Score = %d, want 40", got.Score)
	}
	if got.Status != HealthNeedsAttention {
		t.Errorf("Status = %s, want %s", got.Status, HealthNeedsAttention)
	}
	if got.Details.OverdueRate != 100 {
		t.Errorf("OverdueRate = %d, want 100", got.Details.OverdueRate)
	}
}

func TestCalculateProjectHealth_HealthyProject(t *testing.T) {
	metrics := TaskMetrics{Total: 10, Completed: 9, Incomplete: 1}
	due := TasksByDueDate{NoDueDate: 10} // nothing overdue, nothing with a due date
	activity := []DailyActivity{
		{Created: 1, Completed: 1}, {Created: 1, Completed: 1}, {Created: 1, Completed: 1},
		{Created: 1, Completed: 1}, {Created: 1, Completed: 1}, {Created: 1, Completed: 1},
		{Created: 1, Completed: 1},
	}

	got := CalculateProjectHealth(metrics, due, activity)

	// 90*0.4 + 100*0.4 + 100*0.2 = 96.
	if got.Score != 96 {
		t.Errorf("Score = %d, want 96", got.Score)
	}
	if got.Status != HealthExcellent {
		t.Errorf("Status = %s, want %s", got.Status, HealthExcellent)
	}
}

func TestCalculateProjectHealth_OverdueHeavyProject(t *testing.T) {
	metrics := TaskMetrics{Total: 10, Completed: 2, Incomplete: 8}
	due := TasksByDueDate{Overdue: 6, DueLater: 2} // every task carries a due date

	got := CalculateProjectHealth(metrics, due, []DailyActivity{{}, {}, {}, {}, {}, {}, {}})

	// completion 20*0.4 + overdue (100-60)*0.4 + activity 0*0.2 = 24.
	if got.Score != 24 {
		t.Errorf("Score = %d, want 24", got.Score)
	}
	if got.Status != HealthNeedsAttention {
		t.Errorf("Status = %s, want %s", got.Status, HealthNeedsAttention)
	}
	if got.Details.CompletionRate != 20 || got.Details.OverdueRate != 40 {
		t.Errorf("Details = %+v", got.Details)
	}
}

func TestCalculateProjectHealth_StatusBands(t *testing.T) {
	tests := []struct {
		completed int
		want      string
	}{
		{10, HealthExcellent}, // 100*0.4 + 100*0.4 = 80
		{7, HealthGood},       // 70*0.4 + 40 = 68
		{3, HealthFair},       // 12 + 40 = 52
		{0, HealthNeedsAttention},
	}

	for _, tt := range tests {
		metrics := TaskMetrics{Total: 10, Completed: tt.completed, Incomplete: 10 - tt.completed}
		due := TasksByDueDate{NoDueDate: 10 - tt.completed}
		got := CalculateProjectHealth(metrics, due, nil)
		if got.Status != tt.want {
			t.Errorf("completed=%d: Status = %s (score %d), want %s", tt.completed, got.Status, got.Score, tt.want)
		}
	}
}
