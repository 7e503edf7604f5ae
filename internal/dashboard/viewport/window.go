// Package viewport owns the zoom state and the visible index range into the
// current result sequence. It is pure view state: it never touches FilterState
// and reconciles itself whenever a new result sequence arrives.
package viewport

// DefaultSpan is the number of rows shown when zoom engages
const DefaultSpan = 10

// Window is the contiguous index range currently rendered.
// While inactive the stored indices are irrelevant; Visible always reports the
// full range. Stored indices may lag behind a dataset that shrank, so every
// read clamps against the length the caller is actually rendering.
type Window struct {
	active bool
	start  int
	end    int
}

// New returns a window with zoom engaged on the default top rows
func New() Window {
	return Window{active: true, start: 0, end: DefaultSpan - 1}
}

// Active reports whether zoom is engaged
func (w Window) Active() bool { return w.active }

// Reset re-applies the default window for a dataset of n rows.
// Called whenever the result set is replaced. Inactive windows are left
// alone; the full range is implied and Visible clamps anyway.
func (w *Window) Reset(n int) {
	if !w.active {
		return
	}
	w.start = 0
	w.end = min(DefaultSpan-1, max(0, n-1))
}

// Toggle flips zoom for a dataset of n rows.
// Turning off snaps to the full range; turning on re-applies the default
// window from index 0, discarding any prior drag position.
func (w *Window) Toggle(n int) {
	if w.active {
		w.active = false
		w.start = 0
		w.end = max(0, n-1)
		return
	}
	w.active = true
	w.start = 0
	w.end = min(DefaultSpan-1, max(0, n-1))
}

// SetRange moves the window by manual drag, clamped to [0, n-1].
// Ignored while zoom is off; there is nothing to drag then.
func (w *Window) SetRange(start, end, n int) {
	if !w.active || n <= 0 {
		return
	}
	start = clamp(start, 0, n-1)
	end = clamp(end, 0, n-1)
	if end < start {
		start, end = end, start
	}
	w.start = start
	w.end = end
}

// Visible returns the index pair to render against a dataset of n rows.
// Defends against stale indices left over from a larger previous dataset:
// the pair always satisfies 0 <= start <= end <= max(0, n-1).
func (w Window) Visible(n int) (start, end int) {
	if n <= 0 {
		return 0, 0
	}
	if !w.active {
		return 0, n - 1
	}
	start = clamp(w.start, 0, n-1)
	end = clamp(w.end, 0, n-1)
	if end < start {
		start, end = end, start
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
