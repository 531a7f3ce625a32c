package table

// Key is a navigation key understood by Focus.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyHome
	KeyEnd
)

// Focus is the keyboard cursor over rendered rows. -1 means no row has focus.
// Moving focus never changes selection.
type Focus int

const NoFocus Focus = -1

func (f Focus) Valid(n int) bool {
	return f >= 0 && int(f) < n
}

// Move applies a navigation key over n rows. Up/down stop at the edges.
func (f Focus) Move(k Key, n int) Focus {
	if n <= 0 {
		return NoFocus
	}
	if !f.Valid(n) {
		f = NoFocus
	}
	switch k {
	case KeyDown:
		if f == NoFocus {
			return 0
		}
		if int(f) < n-1 {
			return f + 1
		}
	case KeyUp:
		if f == NoFocus {
			return 0
		}
		if f > 0 {
			return f - 1
		}
	case KeyHome:
		return 0
	case KeyEnd:
		return Focus(n - 1)
	}
	return f
}
