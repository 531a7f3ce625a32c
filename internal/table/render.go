package table

import (
	"github.com/mattn/go-runewidth"

	"taskboard/internal/columns"
	"taskboard/internal/task"
)

// Mode selects what the table area shows.
type Mode int

const (
	ModeLoading Mode = iota
	ModeError
	ModeEmpty
	ModeTable
)

// ModeFor applies the fixed precedence loading > error > empty > table.
func ModeFor(loading bool, errMsg string, rows int) Mode {
	switch {
	case loading:
		return ModeLoading
	case errMsg != "":
		return ModeError
	case rows == 0:
		return ModeEmpty
	default:
		return ModeTable
	}
}

// Header returns one label per visible column, with an arrow on the sorted one.
func Header(cols []columns.Column, spec SortSpec) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		label := c.Label
		if c.ID == spec.Key {
			if spec.Direction == Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		out = append(out, label)
	}
	return out
}

// Cells projects t onto the visible columns, in the same order as Header.
func Cells(t task.Task, cols []columns.Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, t.Display(c.ID))
	}
	return out
}

// Fit pads or truncates s to exactly width terminal cells.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Widths resolves display widths for the visible columns. Columns without a
// width hint share whatever is left of total, with a floor of min.
func Widths(cols []columns.Column, total, gap, minWidth int) []int {
	out := make([]int, len(cols))
	fixed := 0
	flex := 0
	for i, c := range cols {
		if c.Width > 0 {
			out[i] = c.Width
			fixed += c.Width
		} else {
			flex++
		}
	}
	if flex == 0 {
		return out
	}
	rest := total - fixed - gap*max(len(cols)-1, 0)
	each := max(rest/flex, minWidth)
	for i, c := range cols {
		if c.Width <= 0 {
			out[i] = each
		}
	}
	return out
}
