package storage

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"taskboard/internal/task"
)

// Store is the SQLite task set served by the mock endpoint.
type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL DEFAULT 0,
	name TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'not_started',
	priority TEXT NOT NULL DEFAULT 'normal',
	due_date TEXT NOT NULL DEFAULT '',
	estimated_hours REAL NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	assignee TEXT NOT NULL DEFAULT '',
	remarks TEXT NOT NULL DEFAULT ''
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns upgrades databases created before a column existed.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"remarks": "ALTER TABLE tasks ADD COLUMN remarks TEXT NOT NULL DEFAULT '';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

const taskColumns = `id, name, status, priority, due_date, estimated_hours, description, assignee, remarks`

func (s *Store) FetchTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY position, id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns the task with id; ok is false when none exists.
func (s *Store) GetTask(ctx context.Context, id string) (task.Task, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, false, nil
	}
	if err != nil {
		return task.Task{}, false, err
	}
	return t, true, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks;`).Scan(&n)
	return n, err
}

// ReplaceAll swaps the stored set for tasks, keeping their order.
func (s *Store) ReplaceAll(ctx context.Context, tasks []task.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks;`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO tasks (position, `+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range tasks {
		if _, err := stmt.ExecContext(ctx, i, t.ID, t.Name, string(t.Status), string(t.Priority), t.DueDate,
			t.EstimatedHours, t.Description, t.Assignee, t.Remarks); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(r scanner) (task.Task, error) {
	var t task.Task
	var status, priority string
	if err := r.Scan(&t.ID, &t.Name, &status, &priority, &t.DueDate, &t.EstimatedHours, &t.Description, &t.Assignee, &t.Remarks); err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	t.Priority = task.Priority(priority)
	return t, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
