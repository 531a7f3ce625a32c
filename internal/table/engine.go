package table

import (
	"slices"

	"taskboard/internal/task"
)

// Engine turns a filtered task list into the sorted, paginated rows the table
// shows. It owns sort, page, keyboard focus and scroll position.
type Engine struct {
	rows     []task.Task
	sorted   []task.Task
	ids      []string
	spec     SortSpec
	page     int
	pageSize int
	focus    Focus
	offset   int
	window   Window
}

func NewEngine(pageSize int) Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return Engine{
		spec:     DefaultSort(),
		page:     1,
		pageSize: pageSize,
		focus:    NoFocus,
		window:   DefaultWindow,
	}
}

// SetRows replaces the filtered rows. A different ID sequence counts as a new
// result set and sends the table back to page 1.
func (e *Engine) SetRows(rows []task.Task) {
	ids := make([]string, 0, len(rows))
	for _, t := range rows {
		ids = append(ids, t.ID)
	}
	changed := !slices.Equal(ids, e.ids)
	e.rows = slices.Clone(rows)
	e.ids = ids
	e.sorted = Sort(e.rows, e.spec)
	if changed {
		e.resetPage()
	}
}

func (e Engine) Sort() SortSpec { return e.spec }

// ToggleSort applies ToggleSort to the current spec and resets to page 1.
func (e *Engine) ToggleSort(key string) {
	e.SetSort(ToggleSort(e.spec, key))
}

func (e *Engine) SetSort(spec SortSpec) {
	if spec.Direction != Desc {
		spec.Direction = Asc
	}
	e.spec = spec
	e.sorted = Sort(e.rows, e.spec)
	e.resetPage()
}

func (e *Engine) resetPage() {
	e.page = 1
	e.focus = NoFocus
	e.offset = 0
}

func (e Engine) Page() int     { return e.page }
func (e Engine) PageSize() int { return e.pageSize }

func (e Engine) PageCount() int {
	return PageCount(len(e.sorted), e.pageSize)
}

// SetPage moves to page p. Out-of-range pages are ignored.
func (e *Engine) SetPage(p int) bool {
	if p < 1 || p > e.PageCount() || p == e.page {
		return false
	}
	e.page = p
	e.focus = NoFocus
	e.offset = 0
	return true
}

func (e *Engine) NextPage() bool { return e.SetPage(e.page + 1) }
func (e *Engine) PrevPage() bool { return e.SetPage(e.page - 1) }

// Rows is the full sorted, filtered sequence.
func (e Engine) Rows() []task.Task {
	return slices.Clone(e.sorted)
}

func (e Engine) Len() int { return len(e.sorted) }

func (e Engine) PageRows() []task.Task {
	return Paginate(e.sorted, e.page, e.pageSize)
}

func (e Engine) Focus() Focus { return e.focus }

// Navigate moves the focus cursor within the current page and scrolls the
// viewport so the focused row stays visible.
func (e *Engine) Navigate(k Key, viewport int) {
	n := len(e.PageRows())
	e.focus = e.focus.Move(k, n)
	if e.focus.Valid(n) {
		e.offset = e.window.ScrollTo(e.offset, viewport, int(e.focus))
	}
}

// Focused returns the task under the cursor.
func (e Engine) Focused() (task.Task, bool) {
	rows := e.PageRows()
	if !e.focus.Valid(len(rows)) {
		return task.Task{}, false
	}
	return rows[e.focus], true
}

// VisibleRows returns the page rows that need rendering for a viewport of
// the given height, and the page index of the first one.
func (e Engine) VisibleRows(viewport int) ([]task.Task, int) {
	rows := e.PageRows()
	start, end := e.window.Range(len(rows), e.offset, viewport)
	return rows[start:end], start
}

func (e Engine) Offset() int { return e.offset }
