package storage

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/task"
)

var (
	sampleStatuses = []task.Status{
		task.StatusNotStarted, task.StatusInProgress, task.StatusBlocked,
		task.StatusInReview, task.StatusCompleted, task.StatusDeferred,
	}
	samplePriorities = []task.Priority{
		task.PriorityLow, task.PriorityNormal, task.PriorityMedium,
		task.PriorityHigh, task.PriorityCritical,
	}
	sampleAssignees = []string{"Alice Johnson", "Bob Smith", "Carol White", "David Brown", "Eve Davis"}
	sampleHours     = []float64{1, 2, 4, 3, 8, 6, 12, 16, 24, 5, 0.5}
)

// SampleTasks builds n deterministic tasks with due dates spread around start.
func SampleTasks(n int, start time.Time) []task.Task {
	out := make([]task.Task, 0, n)
	for i := 0; i < n; i++ {
		due := start.AddDate(0, 0, i%21-7)
		out = append(out, task.Task{
			ID:             fmt.Sprintf("TASK-%03d", i+1),
			Name:           fmt.Sprintf("Task %d", i+1),
			Status:         sampleStatuses[(i*7)%len(sampleStatuses)],
			Priority:       samplePriorities[(i*3)%len(samplePriorities)],
			DueDate:        due.Format(time.DateOnly),
			EstimatedHours: sampleHours[i%len(sampleHours)],
			Description:    fmt.Sprintf("Description for task %d", i+1),
			Assignee:       sampleAssignees[i%len(sampleAssignees)],
			Remarks:        fmt.Sprintf("Remarks for task %d", i+1),
		})
	}
	return out
}

// SeedIfEmpty fills an empty store with n sample tasks and reports whether it did.
func (s *Store) SeedIfEmpty(ctx context.Context, n int, start time.Time) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, s.ReplaceAll(ctx, SampleTasks(n, start))
}
