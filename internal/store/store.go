package store

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"taskboard/internal/task"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

const defaultErrorMessage = "Failed to fetch tasks"

// Fetcher is the remote collaborator the store loads tasks from.
type Fetcher interface {
	FetchTasks(ctx context.Context) (task.Response, error)
}

// Snapshot is a read-only copy of the store state.
type Snapshot struct {
	Status     Status
	Items      []task.Task
	Error      string
	TotalTasks int
}

func (s Snapshot) Loading() bool { return s.Status == StatusLoading }

// Store owns the canonical task list and the fetch lifecycle.
type Store struct {
	fetcher Fetcher
	logger  *slog.Logger

	mu     sync.Mutex
	state  Snapshot
	subs   map[int]func(Snapshot)
	nextID int
}

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(f Fetcher, opts ...Option) *Store {
	s := &Store{
		fetcher: f,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:   Snapshot{Status: StatusIdle},
		subs:    map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	out := s.state
	out.Items = slices.Clone(s.state.Items)
	return out
}

// Subscribe registers fn for every state change. The returned func removes it;
// changes that land after removal are dropped.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// EnsureLoaded fetches only while the store has never been asked to load.
// A failed store stays failed until FetchAll is called explicitly.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	return s.fetch(ctx, true)
}

// FetchAll loads the task list. It is a no-op while a fetch is in flight.
// On failure the previous items are kept and the error message is recorded.
func (s *Store) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, false)
}

// fetch checks and enters the loading state under one lock, so concurrent
// callers start at most one request.
func (s *Store) fetch(ctx context.Context, onlyIdle bool) error {
	s.mu.Lock()
	if s.state.Status == StatusLoading {
		s.mu.Unlock()
		s.logger.Debug("fetch skipped, already loading")
		return nil
	}
	if onlyIdle && s.state.Status != StatusIdle {
		s.mu.Unlock()
		return nil
	}
	s.state.Status = StatusLoading
	s.state.Error = ""
	s.publishLocked()

	s.logger.Info("fetching tasks")
	resp, err := s.fetcher.FetchTasks(ctx)

	s.mu.Lock()
	if err != nil {
		s.state.Status = StatusFailed
		s.state.Error = errorMessage(err)
		s.logger.Error("fetch tasks failed", "error", err)
	} else {
		s.state.Status = StatusSucceeded
		s.state.Items = slices.Clone(resp.Tasks)
		s.state.TotalTasks = resp.TotalTasks
		s.logger.Info("fetched tasks", "count", len(resp.Tasks), "total", resp.TotalTasks)
	}
	s.publishLocked()
	return err
}

// publishLocked releases mu before calling subscribers.
func (s *Store) publishLocked() {
	snap := s.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultErrorMessage
	}
	return err.Error()
}
