package table

import (
	"slices"
	"strings"

	"taskboard/internal/task"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

func (d Direction) Flip() Direction {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortSpec is the single active sort key.
type SortSpec struct {
	Key       string
	Direction Direction
}

func DefaultSort() SortSpec {
	return SortSpec{Key: task.FieldDueDate, Direction: Asc}
}

// ToggleSort flips the direction when key is already active, otherwise it
// starts an ascending sort on key.
func ToggleSort(spec SortSpec, key string) SortSpec {
	if spec.Key == key {
		return SortSpec{Key: key, Direction: spec.Direction.Flip()}
	}
	return SortSpec{Key: key, Direction: Asc}
}

// Sort returns a sorted copy. Ties keep their input order.
func Sort(tasks []task.Task, spec SortSpec) []task.Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b task.Task) int {
		c := compareValues(a.Value(spec.Key), b.Value(spec.Key))
		if spec.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// compareValues orders numbers numerically and strings lexicographically.
// Mixed kinds fall back to a fixed kind rank so the comparator stays total.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	}
	return kindRank(a) - kindRank(b)
}

func kindRank(v any) int {
	switch v.(type) {
	case float64:
		return 1
	case string:
		return 2
	default:
		return 0
	}
}
