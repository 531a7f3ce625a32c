package columns

import (
	"slices"

	"taskboard/internal/task"
)

// Column describes one displayable task field. Width is a display hint in
// terminal cells; zero means "take what is left".
type Column struct {
	ID      string
	Label   string
	Visible bool
	Width   int
}

// Layout is the persisted form of a column: order comes from the slice index.
type Layout struct {
	ID      string `toml:"id"`
	Visible bool   `toml:"visible"`
}

func Defaults() []Column {
	return []Column{
		{ID: task.FieldID, Label: "ID", Visible: true, Width: 12},
		{ID: task.FieldName, Label: "Name", Visible: true},
		{ID: task.FieldStatus, Label: "Status", Visible: true, Width: 14},
		{ID: task.FieldPriority, Label: "Priority", Visible: true, Width: 10},
		{ID: task.FieldDueDate, Label: "Due Date", Visible: true, Width: 12},
		{ID: task.FieldEstimatedHours, Label: "Est. Hours", Visible: true, Width: 10},
		{ID: task.FieldAssignee, Label: "Assignee", Visible: true, Width: 16},
		{ID: task.FieldDescription, Label: "Description", Visible: false},
	}
}

// Model keeps the live column set plus a working copy for the editor.
// Edits only touch the working copy until Commit.
type Model struct {
	committed []Column
	working   []Column
}

func New(cols []Column) Model {
	cols = slices.Clone(cols)
	ensureVisible(cols)
	return Model{committed: cols, working: slices.Clone(cols)}
}

// Begin starts an edit session from the live columns.
func (m *Model) Begin() {
	m.working = slices.Clone(m.committed)
}

func (m *Model) Commit() {
	m.committed = slices.Clone(m.working)
}

func (m *Model) Cancel() {
	m.working = slices.Clone(m.committed)
}

// Dirty reports whether the working copy differs from the live columns.
func (m Model) Dirty() bool {
	return !slices.Equal(m.committed, m.working)
}

func (m Model) All() []Column {
	return slices.Clone(m.committed)
}

func (m Model) Working() []Column {
	return slices.Clone(m.working)
}

// Visible is the ordered subsequence of live visible columns. Header and
// row cells are both derived from it.
func (m Model) Visible() []Column {
	out := make([]Column, 0, len(m.committed))
	for _, c := range m.committed {
		if c.Visible {
			out = append(out, c)
		}
	}
	return out
}

// CanToggle is false only for the sole visible column of the working copy.
func (m Model) CanToggle(id string) bool {
	idx := indexOf(m.working, id)
	if idx < 0 {
		return false
	}
	return !m.working[idx].Visible || visibleCount(m.working) > 1
}

// ToggleVisibility flips visibility in the working copy. Hiding the last
// visible column is ignored.
func (m *Model) ToggleVisibility(id string) bool {
	if !m.CanToggle(id) {
		return false
	}
	idx := indexOf(m.working, id)
	m.working = slices.Clone(m.working)
	m.working[idx].Visible = !m.working[idx].Visible
	return true
}

// Reorder moves the working column at from to position to.
func (m *Model) Reorder(from, to int) bool {
	n := len(m.working)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	cols := slices.Clone(m.working)
	c := cols[from]
	cols = slices.Delete(cols, from, from+1)
	cols = slices.Insert(cols, to, c)
	m.working = cols
	return true
}

// Layout exports the live order and visibility.
func (m Model) Layout() []Layout {
	out := make([]Layout, 0, len(m.committed))
	for _, c := range m.committed {
		out = append(out, Layout{ID: c.ID, Visible: c.Visible})
	}
	return out
}

// Apply rearranges the live columns to match a persisted layout. Unknown
// ids are ignored and columns missing from the layout keep their default
// visibility and are appended in their current order.
func (m *Model) Apply(layout []Layout) {
	if len(layout) == 0 {
		return
	}
	out := make([]Column, 0, len(m.committed))
	used := map[string]bool{}
	for _, l := range layout {
		idx := indexOf(m.committed, l.ID)
		if idx < 0 || used[l.ID] {
			continue
		}
		c := m.committed[idx]
		c.Visible = l.Visible
		out = append(out, c)
		used[l.ID] = true
	}
	for _, c := range m.committed {
		if !used[c.ID] {
			out = append(out, c)
		}
	}
	ensureVisible(out)
	m.committed = out
	m.working = slices.Clone(out)
}

func ensureVisible(cols []Column) {
	if len(cols) > 0 && visibleCount(cols) == 0 {
		cols[0].Visible = true
	}
}

func visibleCount(cols []Column) int {
	n := 0
	for _, c := range cols {
		if c.Visible {
			n++
		}
	}
	return n
}

func indexOf(cols []Column, id string) int {
	return slices.IndexFunc(cols, func(c Column) bool { return c.ID == id })
}
