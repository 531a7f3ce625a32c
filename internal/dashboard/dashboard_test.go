package dashboard

import (
	"fmt"
	"strings"
	"testing"

	"taskboard/internal/task"
)

func TestScenario_TwoTasks(t *testing.T) {
	tasks := []task.Task{
		{Status: task.StatusCompleted, DueDate: "2025-04-01", EstimatedHours: 8},
		{Status: task.StatusInProgress, DueDate: "2025-04-02", EstimatedHours: 3},
	}
	s := Summarize(tasks)
	if s.Total != 2 || s.Completed != 1 || s.InProgress != 1 || s.Blocked != 0 {
		t.Fatalf("summary=%+v", s)
	}

	want := map[string]int{"0-2": 0, "3-5": 1, "6-8": 1, "9-16": 0, "17+": 0}
	buckets := HoursHistogram(tasks)
	order := []string{"0-2", "3-5", "6-8", "9-16", "17+"}
	for i, b := range buckets {
		if b.Label != order[i] {
			t.Fatalf("bucket %d label=%q", i, b.Label)
		}
		if b.Count != want[b.Label] {
			t.Fatalf("bucket %s=%d want %d", b.Label, b.Count, want[b.Label])
		}
	}

	done := CompletedPerDay(tasks)
	if len(done) != 1 || done[0] != (DayCount{Date: "2025-04-01", Count: 1}) {
		t.Fatalf("completed per day=%v", done)
	}
	due := DuePerDay(tasks)
	if len(due) != 2 || due[0].Date != "2025-04-01" || due[1].Date != "2025-04-02" {
		t.Fatalf("due per day=%v", due)
	}
}

func TestPerDay_KeepsMostRecent14(t *testing.T) {
	var tasks []task.Task
	for d := 1; d <= 20; d++ {
		tasks = append(tasks, task.Task{DueDate: fmt.Sprintf("2025-03-%02d", d)})
	}
	tasks = append(tasks, task.Task{DueDate: "2025-03-20"}, task.Task{DueDate: "not a date"})
	got := DuePerDay(tasks)
	if len(got) != MaxDays {
		t.Fatalf("len=%d", len(got))
	}
	if got[0].Date != "2025-03-07" || got[len(got)-1] != (DayCount{Date: "2025-03-20", Count: 2}) {
		t.Fatalf("unexpected window: first=%v last=%v", got[0], got[len(got)-1])
	}
}

func TestCalendarDate(t *testing.T) {
	cases := map[string]string{
		"2025-04-01":                "2025-04-01",
		"2025-04-01T23:30:00Z":      "2025-04-01",
		"2025-04-01T23:30:00-05:00": "2025-04-02",
		"2025-04-01T10:00:00":       "2025-04-01",
	}
	for in, want := range cases {
		got, ok := CalendarDate(in)
		if !ok || got != want {
			t.Fatalf("CalendarDate(%q)=%q,%v want %q", in, got, ok, want)
		}
	}
	if _, ok := CalendarDate("yesterday"); ok {
		t.Fatalf("expected parse failure")
	}
}

func TestHoursHistogram_Edges(t *testing.T) {
	hours := []float64{0, 2, 2.5, 3, 5.9, 6, 8, 9, 16, 16.5, 17, 40, -1}
	var tasks []task.Task
	for _, h := range hours {
		tasks = append(tasks, task.Task{EstimatedHours: h})
	}
	got := HoursHistogram(tasks)
	want := []int{3, 2, 2, 3, 2}
	for i, b := range got {
		if b.Count != want[i] {
			t.Fatalf("bucket %s=%d want %d", b.Label, b.Count, want[i])
		}
	}
}

func TestDescribe(t *testing.T) {
	days := []DayCount{{Date: "2025-04-01", Count: 2}, {Date: "2025-04-12", Count: 1}}
	if got := DescribeDays("Tasks due per day", days); got != "Tasks due per day: 4/1: 2 tasks, 4/12: 1 tasks" {
		t.Fatalf("got %q", got)
	}
	if got := DescribeDays("Completed tasks per day", nil); got != "No data available for completed tasks per day" {
		t.Fatalf("got %q", got)
	}
	got := DescribeHours([]Bucket{{"0-2", 1}, {"3-5", 3}}, 4)
	if !strings.Contains(got, "0-2 hours: 1 tasks (25%)") || !strings.Contains(got, "3-5 hours: 3 tasks (75%)") {
		t.Fatalf("got %q", got)
	}
}
