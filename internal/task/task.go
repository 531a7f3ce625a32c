package task

import (
	"strconv"
	"strings"
	"unicode"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusInReview   Status = "in_review"
	StatusCompleted  Status = "completed"
	StatusDeferred   Status = "deferred"
)

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityNormal   Priority = "normal"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Field ids double as column ids and sort keys.
const (
	FieldID             = "id"
	FieldName           = "name"
	FieldStatus         = "status"
	FieldPriority       = "priority"
	FieldDueDate        = "dueDate"
	FieldEstimatedHours = "estimatedHours"
	FieldDescription    = "description"
	FieldAssignee       = "assignee"
	FieldRemarks        = "remarks"
)

// Task is immutable once fetched; the store replaces the whole list on refetch.
type Task struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Status         Status   `json:"status"`
	Priority       Priority `json:"priority"`
	DueDate        string   `json:"dueDate"`
	EstimatedHours float64  `json:"estimatedHours"`
	Description    string   `json:"description"`
	Assignee       string   `json:"assignee"`
	Remarks        string   `json:"remarks"`
}

// Response is the envelope returned by the tasks endpoint.
type Response struct {
	Status     string `json:"status"`
	TotalTasks int    `json:"totalTasks"`
	Tasks      []Task `json:"tasks"`
}

// Value returns the raw field value for a field id: a string for text fields,
// a float64 for estimatedHours, and nil for unknown ids.
func (t Task) Value(field string) any {
	switch field {
	case FieldID:
		return t.ID
	case FieldName:
		return t.Name
	case FieldStatus:
		return string(t.Status)
	case FieldPriority:
		return string(t.Priority)
	case FieldDueDate:
		return t.DueDate
	case FieldEstimatedHours:
		return t.EstimatedHours
	case FieldDescription:
		return t.Description
	case FieldAssignee:
		return t.Assignee
	case FieldRemarks:
		return t.Remarks
	default:
		return nil
	}
}

// Display renders a field the way the table and details panel show it.
func (t Task) Display(field string) string {
	switch field {
	case FieldStatus:
		return FormatStatus(string(t.Status))
	case FieldPriority:
		return FormatPriority(string(t.Priority))
	case FieldEstimatedHours:
		return FormatHours(t.EstimatedHours)
	}
	v := t.Value(field)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// FormatStatus turns "in_progress" into "In Progress".
func FormatStatus(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func FormatPriority(p string) string {
	return capitalize(p)
}

func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
