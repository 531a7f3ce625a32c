package table

import "taskboard/internal/task"

const DefaultPageSize = 10

// Paginate returns rows [(page-1)*size, page*size). Pages outside the valid
// range yield an empty slice.
func Paginate(tasks []task.Task, page, size int) []task.Task {
	if size < 1 || page < 1 {
		return []task.Task{}
	}
	start := (page - 1) * size
	if start >= len(tasks) {
		return []task.Task{}
	}
	end := min(start+size, len(tasks))
	return tasks[start:end:end]
}

// PageCount is ceil(n/size); zero rows means zero pages.
func PageCount(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Window computes which rows of a scrolled list need materializing.
type Window struct {
	RowHeight int
	Overscan  int
}

// DefaultWindow renders one terminal line per row with a small overscan.
var DefaultWindow = Window{RowHeight: 1, Overscan: 5}

// Range returns the half-open row range [start, end) intersecting a viewport
// that begins offset units from the top and is viewport units tall, widened
// by the overscan on both sides.
func (w Window) Range(count, offset, viewport int) (int, int) {
	if count <= 0 {
		return 0, 0
	}
	rh := max(w.RowHeight, 1)
	offset = max(offset, 0)
	first := offset / rh
	last := first
	if viewport > 0 {
		last = (offset + viewport - 1) / rh
	}
	start := max(first-w.Overscan, 0)
	end := min(last+w.Overscan+1, count)
	if start > end {
		start = end
	}
	return start, end
}

// ScrollTo returns the smallest offset change that keeps row in view.
func (w Window) ScrollTo(offset, viewport, row int) int {
	rh := max(w.RowHeight, 1)
	top := row * rh
	bottom := top + rh
	switch {
	case top < offset:
		return top
	case viewport > 0 && bottom > offset+viewport:
		return bottom - viewport
	}
	return offset
}
