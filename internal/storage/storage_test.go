package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/task"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplaceAllAndFetchKeepsOrder(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	in := []task.Task{
		{ID: "z", Name: "Last id first", Status: task.StatusBlocked, Priority: task.PriorityHigh, DueDate: "2025-04-02", EstimatedHours: 2.5, Remarks: "r"},
		{ID: "a", Name: "Second", Status: task.StatusCompleted, Priority: task.PriorityLow},
	}
	if err := s.ReplaceAll(ctx, in); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, err := s.FetchTasks(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 || got[0] != in[0] || got[1] != in[1] {
		t.Fatalf("got %+v", got)
	}
}

func TestGetTask(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	if err := s.ReplaceAll(ctx, SampleTasks(3, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok, err := s.GetTask(ctx, "TASK-002")
	if err != nil || !ok || got.Name != "Task 2" {
		t.Fatalf("get: %+v ok=%v err=%v", got, ok, err)
	}
	if _, ok, err := s.GetTask(ctx, "missing"); ok || err != nil {
		t.Fatalf("missing task: ok=%v err=%v", ok, err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	seeded, err := s.SeedIfEmpty(ctx, 25, start)
	if err != nil || !seeded {
		t.Fatalf("first seed: seeded=%v err=%v", seeded, err)
	}
	seeded, err = s.SeedIfEmpty(ctx, 25, start)
	if err != nil || seeded {
		t.Fatalf("second seed should be skipped: seeded=%v err=%v", seeded, err)
	}
	n, err := s.Count(ctx)
	if err != nil || n != 25 {
		t.Fatalf("count=%d err=%v", n, err)
	}
}

func TestSampleTasks_Deterministic(t *testing.T) {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	a := SampleTasks(10, start)
	b := SampleTasks(10, start)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs", i)
		}
	}
	if a[0].ID != "TASK-001" || a[0].DueDate != "2025-03-25" {
		t.Fatalf("unexpected first sample %+v", a[0])
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOpen_FreshSchemaHasRemarks(t *testing.T) {
	s := openTemp(t)
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('tasks') WHERE name = 'remarks';`).Scan(&n)
	if err != nil || n != 1 {
		t.Fatalf("remarks column: n=%d err=%v", n, err)
	}
}

func TestOpen_UpgradesDatabaseWithoutRemarks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		t.Fatalf("open raw: %v", err)
	}
	_, err = db.Exec(`
CREATE TABLE tasks (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL DEFAULT 0,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'not_started',
	priority TEXT NOT NULL DEFAULT 'normal',
	due_date TEXT NOT NULL DEFAULT '',
	estimated_hours REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	assignee TEXT NOT NULL DEFAULT ''
);
INSERT INTO tasks (id, name) VALUES ('old-1', 'Legacy');`)
	db.Close()
	if err != nil {
		t.Fatalf("create old schema: %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	got, err := s.FetchTasks(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != "old-1" || got[0].Remarks != "" {
		t.Fatalf("got %+v", got)
	}
}
