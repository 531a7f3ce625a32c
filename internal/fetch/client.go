package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskboard/internal/task"
)

const DefaultTimeout = 15 * time.Second

// ErrMalformed wraps any body that does not decode into the tasks envelope.
var ErrMalformed = errors.New("malformed tasks response")

// StatusError reports a non-2xx response from the endpoint.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch tasks: server responded %s", e.Status)
}

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// FetchTasks performs one GET against the endpoint. No retries.
func (c *Client) FetchTasks(ctx context.Context) (task.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return task.Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return task.Response{}, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return task.Response{}, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}
	return Decode(resp.Body)
}

// Decode reads the tasks envelope. A body without a tasks array is rejected.
func Decode(r io.Reader) (task.Response, error) {
	var raw struct {
		Status     string       `json:"status"`
		TotalTasks *int         `json:"totalTasks"`
		Tasks      *[]task.Task `json:"tasks"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return task.Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw.Tasks == nil {
		return task.Response{}, fmt.Errorf("%w: missing tasks array", ErrMalformed)
	}
	out := task.Response{Status: raw.Status, Tasks: *raw.Tasks}
	if raw.TotalTasks != nil {
		out.TotalTasks = *raw.TotalTasks
	} else {
		out.TotalTasks = len(out.Tasks)
	}
	return out, nil
}
