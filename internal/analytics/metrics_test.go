package analytics

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestCountTaskMetrics(t *testing.T) {
	tasks := []TaskRecord{
		{ID: "1", Completed: true},
		{ID: "2"},
		{ID: "3", Archived: true},
		{ID: "4", Completed: true, Archived: true},
	}

	got := CountTaskMetrics(tasks)
	want := TaskMetrics{Total: 4, Completed: 2, Incomplete: 1, Archived: 2}
	if got != want {
		t.Errorf("CountTaskMetrics() = %+v, want %+v", got, want)
	}
}

func TestBucketTasksByDueDate_Partition(t *testing.T) {
	today := DayStart(testNow)
	tests := []struct {
		name string
		task TaskRecord
		want TasksByDueDate
	}{
		{"Overdue", TaskRecord{DueDate: datePtr(today.AddDate(0, 0, -1))}, TasksByDueDate{Overdue: 1}},
		{"DueTodayMorning", TaskRecord{DueDate: datePtr(today.Add(9 * time.Hour))}, TasksByDueDate{DueToday: 1}},
		{"DueTodayMidnight", TaskRecord{DueDate: datePtr(today)}, TasksByDueDate{DueToday: 1}},
		// testNow is a Wednesday; Saturday is still this week.
		{"DueSaturday", TaskRecord{DueDate: datePtr(today.AddDate(0, 0, 3))}, TasksByDueDate{DueThisWeek: 1}},
		{"DueNextMonday", TaskRecord{DueDate: datePtr(today.AddDate(0, 0, 5).Add(8 * time.Hour))}, TasksByDueDate{DueLater: 1}},
		{"NoDueDate", TaskRecord{}, TasksByDueDate{NoDueDate: 1}},
		{"CompletedExcluded", TaskRecord{Completed: true, DueDate: datePtr(today.AddDate(0, 0, -1))}, TasksByDueDate{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BucketTasksByDueDate([]TaskRecord{tt.task}, testNow)
			if got != tt.want {
				t.Errorf("BucketTasksByDueDate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBucketTasksByDueDate_ExactlyOneBucket(t *testing.T) {
	today := DayStart(testNow)
	var tasks []TaskRecord
	for offset := -10; offset <= 10; offset++ {
		tasks = append(tasks, TaskRecord{DueDate: datePtr(today.AddDate(0, 0, offset).Add(10 * time.Hour))})
	}

	got := BucketTasksByDueDate(tasks, testNow)
	sum := got.Overdue + got.DueToday + got.DueThisWeek + got.DueLater + got.NoDueDate
	if sum != len(tasks) {
		t.Errorf("buckets sum to %d, want %d", sum, len(tasks))
	}
}

func TestCalculateMemberPerformance(t *testing.T) {
	members := []MemberRecord{
		{ID: "m1", UserID: "u1", Name: "Ada"},
		{ID: "m2", UserID: "u2", Name: "Grace"},
		{ID: "m3", UserID: "u3", Name: "Idle"},
	}
	created := testNow.AddDate(0, 0, -4)
	tasks := []TaskRecord{
		{ID: "1", AssignedTo: "m1", Completed: true, CreatedAt: created, UpdatedAt: created.AddDate(0, 0, 2)},
		{ID: "2", AssignedTo: "m1", Completed: true, CreatedAt: created, UpdatedAt: created.AddDate(0, 0, 3)},
		{ID: "3", AssignedTo: "m1", DueDate: datePtr(testNow.AddDate(0, 0, -1)), CreatedAt: created, UpdatedAt: created},
		{ID: "4", AssignedTo: "m2", CreatedAt: created, UpdatedAt: created},
	}

	got := CalculateMemberPerformance(members, tasks, testNow)

	if len(got) != 2 {
		t.Fatalf("got %d members, want 2 (idle member excluded)", len(got))
	}

	ada := got[0]
	if ada.TasksAssigned != 3 || ada.TasksCompleted != 2 || ada.TasksOverdue != 1 {
		t.Errorf("ada = %+v", ada)
	}
	if ada.AvgCompletionTime == nil || *ada.AvgCompletionTime != 2.5 {
		t.Errorf("ada.AvgCompletionTime = %v, want 2.5", ada.AvgCompletionTime)
	}

	grace := got[1]
	if grace.TasksCompleted != 0 {
		t.Errorf("grace.TasksCompleted = %d, want 0", grace.TasksCompleted)
	}
	if grace.AvgCompletionTime != nil {
		t.Errorf("grace.AvgCompletionTime = %v, want nil", *grace.AvgCompletionTime)
	}
}

func TestCalculateCycleTime(t *testing.T) {
	if got := CalculateCycleTime(nil); got != nil {
		t.Errorf("no tasks: got %v, want nil", *got)
	}
	if got := CalculateCycleTime([]TaskRecord{{ID: "1"}}); got != nil {
		t.Errorf("no completions: got %v, want nil", *got)
	}

	created := testNow.AddDate(0, 0, -10)
	tasks := []TaskRecord{
		{ID: "1", Completed: true, CreatedAt: created, UpdatedAt: created.AddDate(0, 0, 2)},
		{ID: "2", Completed: true, CreatedAt: created, UpdatedAt: created.AddDate(0, 0, 4)},
	}
	got := CalculateCycleTime(tasks)
	if got == nil || *got != 3 {
		t.Errorf("cycle time = %v, want 3", got)
	}
}

func TestCalculateThroughput(t *testing.T) {
	activity := []DailyActivity{{Completed: 2}, {Completed: 0}, {Completed: 5}}
	if got := CalculateThroughput(activity, 14); got != 0.5 {
		t.Errorf("throughput = %v, want 0.5", got)
	}
	if got := CalculateThroughput(nil, 14); got != 0 {
		t.Errorf("empty throughput = %v, want 0", got)
	}
}

func TestEstimateCompletion(t *testing.T) {
	activity := make([]DailyActivity, 14)
	for i := range activity {
		activity[i] = DailyActivity{Completed: 1} // velocity 1/day
	}

	t.Run("NothingLeft", func(t *testing.T) {
		if got := EstimateCompletion(activity, 0, testNow); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("NoVelocity", func(t *testing.T) {
		idle := make([]DailyActivity, 14)
		if got := EstimateCompletion(idle, 5, testNow); got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("Projected", func(t *testing.T) {
		got := EstimateCompletion(activity, 5, testNow)
		if got == nil {
			t.Fatal("got nil")
		}
		if got.DaysRemaining != 5 {
			t.Errorf("DaysRemaining = %d, want 5", got.DaysRemaining)
		}
		want := DayStart(testNow).AddDate(0, 0, 5).Format(dateLayout)
		if got.Date != want {
			t.Errorf("Date = %s, want %s", got.Date, want)
		}
	})

	t.Run("ShortWindowDilutesVelocity", func(t *testing.T) {
		// 7 buckets with 1 completion each still divide by the fixed
		// 14-day lookback: velocity 0.5/day.
		week := make([]DailyActivity, 7)
		for i := range week {
			week[i] = DailyActivity{Completed: 1}
		}
		got := EstimateCompletion(week, 7, testNow)
		if got == nil || got.DaysRemaining != 14 {
			t.Errorf("got %+v, want 14 days remaining", got)
		}
	})
}

func TestCalculateOnTimeDelivery(t *testing.T) {
	if got := CalculateOnTimeDelivery([]TaskRecord{{ID: "1", Completed: true}}); got != nil {
		t.Errorf("no due dates: got %v, want nil", *got)
	}

	due := DayStart(testNow)
	tasks := []TaskRecord{
		// Finished late in the due day: still on time.
		{ID: "1", Completed: true, DueDate: &due, UpdatedAt: due.Add(20 * time.Hour)},
		// Finished the day after: late.
		{ID: "2", Completed: true, DueDate: &due, UpdatedAt: due.AddDate(0, 0, 1).Add(time.Hour)},
		// Open tasks never count.
		{ID: "3", DueDate: &due, UpdatedAt: due},
	}

	got := CalculateOnTimeDelivery(tasks)
	if got == nil || *got != 50 {
		t.Errorf("on-time = %v, want 50", got)
	}
}
