// Package server exposes the task set over HTTP in the same JSON envelope the
// dashboard client consumes.
package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"taskboard/internal/task"
)

// TaskSource is the read side of the task storage.
type TaskSource interface {
	FetchTasks(ctx context.Context) ([]task.Task, error)
	GetTask(ctx context.Context, id string) (task.Task, bool, error)
}

type Server struct {
	src    TaskSource
	logger *slog.Logger
	delay  time.Duration
	router *mux.Router
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDelay holds every task response for d, which makes loading states visible.
func WithDelay(d time.Duration) Option {
	return func(s *Server) { s.delay = d }
}

func New(src TaskSource, opts ...Option) *Server {
	s := &Server{
		src:    src,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		router: mux.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)
	s.router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/api/tasks", s.listTasks).Methods(http.MethodGet)
	s.router.HandleFunc("/api/tasks/{taskID}", s.getTask).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listTasks handles GET /api/tasks.
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	if !s.wait(r.Context()) {
		return
	}
	tasks, err := s.src.FetchTasks(r.Context())
	if err != nil {
		s.logger.Error("list tasks failed", "error", err)
		http.Error(w, "failed to load tasks", http.StatusInternalServerError)
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, task.Response{
		Status:     "success",
		TotalTasks: len(tasks),
		Tasks:      tasks,
	})
}

// getTask handles GET /api/tasks/{taskID}.
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["taskID"]
	t, ok, err := s.src.GetTask(r.Context(), id)
	if err != nil {
		s.logger.Error("get task failed", "id", id, "error", err)
		http.Error(w, "failed to load task", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Task not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) wait(ctx context.Context) bool {
	if s.delay <= 0 {
		return true
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
