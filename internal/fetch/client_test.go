package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchTasks_DecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","totalTasks":2,"tasks":[{"id":"a","name":"Task 1"},{"id":"b","name":"Task 2"}]}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, time.Second).FetchTasks(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if resp.TotalTasks != 2 || len(resp.Tasks) != 2 || resp.Tasks[1].Name != "Task 2" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestFetchTasks_Non2xxIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchTasks(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Code != http.StatusInternalServerError {
		t.Fatalf("code=%d", se.Code)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Fatalf("expected message to name the status, got %q", err.Error())
	}
}

func TestFetchTasks_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>nope</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).FetchTasks(context.Background())
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_MissingTasksArray(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"status":"success","totalTasks":3}`))
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestDecode_TotalDefaultsToLength(t *testing.T) {
	resp, err := Decode(strings.NewReader(`{"tasks":[{"id":"x"}]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalTasks != 1 {
		t.Fatalf("total=%d", resp.TotalTasks)
	}
}

func TestFetchTasks_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).FetchTasks(context.Background())
	if err == nil {
		t.Fatalf("expected transport error")
	}
}
