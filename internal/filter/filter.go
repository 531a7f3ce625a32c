package filter

import (
	"slices"
	"strings"

	"taskboard/internal/task"
)

// Field names a filter control.
type Field string

const (
	FieldSearch   Field = "search"
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldAssignee Field = "assignee"
)

// State holds the four independent filters. An empty value means no constraint.
type State struct {
	Search   string
	Status   string
	Priority string
	Assignee string
}

// Apply returns the tasks matching every active filter, in input order.
// The result is always a new slice.
func Apply(tasks []task.Task, st State) []task.Task {
	term := strings.ToLower(st.Search)
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if term != "" && !matchesSearch(t, term) {
			continue
		}
		if st.Status != "" && string(t.Status) != st.Status {
			continue
		}
		if st.Priority != "" && string(t.Priority) != st.Priority {
			continue
		}
		if st.Assignee != "" && t.Assignee != st.Assignee {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t task.Task, term string) bool {
	return strings.Contains(strings.ToLower(t.Name), term) ||
		strings.Contains(strings.ToLower(t.Description), term) ||
		strings.Contains(strings.ToLower(t.ID), term)
}

func (s State) Active() bool {
	return s != State{}
}

func (s State) Get(f Field) string {
	switch f {
	case FieldSearch:
		return s.Search
	case FieldStatus:
		return s.Status
	case FieldPriority:
		return s.Priority
	case FieldAssignee:
		return s.Assignee
	}
	return ""
}

func (s State) With(f Field, v string) State {
	switch f {
	case FieldSearch:
		s.Search = v
	case FieldStatus:
		s.Status = v
	case FieldPriority:
		s.Priority = v
	case FieldAssignee:
		s.Assignee = v
	}
	return s
}

func (s State) Clear(f Field) State {
	return s.With(f, "")
}

// Chip labels one active filter for display.
type Chip struct {
	Field Field
	Label string
}

// Chips lists the active filters in the order the filter bar shows them.
func (s State) Chips() []Chip {
	var out []Chip
	if s.Status != "" {
		out = append(out, Chip{Field: FieldStatus, Label: "Status: " + task.FormatStatus(s.Status)})
	}
	if s.Priority != "" {
		out = append(out, Chip{Field: FieldPriority, Label: "Priority: " + task.FormatPriority(s.Priority)})
	}
	if s.Assignee != "" {
		out = append(out, Chip{Field: FieldAssignee, Label: "Assignee: " + s.Assignee})
	}
	if s.Search != "" {
		out = append(out, Chip{Field: FieldSearch, Label: "Search: " + s.Search})
	}
	return out
}

// Options are the choices offered by the select controls.
type Options struct {
	Statuses   []string
	Priorities []string
	Assignees  []string
}

// BuildOptions collects distinct non-empty values from the unfiltered list.
func BuildOptions(tasks []task.Task) Options {
	return Options{
		Statuses:   distinct(tasks, func(t task.Task) string { return string(t.Status) }),
		Priorities: distinct(tasks, func(t task.Task) string { return string(t.Priority) }),
		Assignees:  distinct(tasks, func(t task.Task) string { return t.Assignee }),
	}
}

func (o Options) For(f Field) []string {
	switch f {
	case FieldStatus:
		return o.Statuses
	case FieldPriority:
		return o.Priorities
	case FieldAssignee:
		return o.Assignees
	}
	return nil
}

func distinct(tasks []task.Task, get func(task.Task) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, t := range tasks {
		v := get(t)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Cycle steps a select control through "" (All) followed by options.
// A current value not among the options restarts from All.
func Cycle(options []string, current string, delta int) string {
	n := len(options) + 1
	idx := 0
	if current != "" {
		if i := slices.Index(options, current); i >= 0 {
			idx = i + 1
		}
	}
	idx = ((idx+delta)%n + n) % n
	if idx == 0 {
		return ""
	}
	return options[idx-1]
}
