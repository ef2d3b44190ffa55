package listview

import (
	"strings"
)

// halfViewportDivisor centers the cursor inside the viewport.
const halfViewportDivisor = 2

// RenderFunc renders a single item. selected reports whether the cursor is on it.
type RenderFunc[T any] func(item T, selected bool) string

// Window tracks a cursor over a list of items and the slice of items that fits
// in a viewport of a given height. It renders only that slice.
type Window[T any] struct {
	items  []T
	render RenderFunc[T]

	cursor int
	from   int
	to     int
	height int
}

// NewWindow creates a window over items with the given viewport height.
// A height below 1 shows every item.
func NewWindow[T any](items []T, height int, render RenderFunc[T]) *Window[T] {
	w := &Window[T]{items: items, render: render, height: height}
	w.scroll()
	return w
}

// SetItems replaces the items and keeps the cursor within bounds.
func (w *Window[T]) SetItems(items []T) {
	w.items = items
	w.SetCursor(w.cursor)
}

// SetHeight resizes the viewport.
func (w *Window[T]) SetHeight(height int) {
	w.height = height
	w.scroll()
}

// Move shifts the cursor by delta, stopping at either end.
func (w *Window[T]) Move(delta int) {
	w.SetCursor(w.cursor + delta)
}

// Home moves the cursor to the first item.
func (w *Window[T]) Home() { w.SetCursor(0) }

// End moves the cursor to the last item.
func (w *Window[T]) End() { w.SetCursor(len(w.items) - 1) }

// SetCursor places the cursor at index, clamped to the item range.
func (w *Window[T]) SetCursor(index int) {
	switch {
	case len(w.items) == 0 || index < 0:
		w.cursor = 0
	case index >= len(w.items):
		w.cursor = len(w.items) - 1
	default:
		w.cursor = index
	}
	w.scroll()
}

// Cursor returns the cursor index.
func (w *Window[T]) Cursor() int { return w.cursor }

// Len returns the number of items.
func (w *Window[T]) Len() int { return len(w.items) }

// Bounds returns the visible item range [from, to).
func (w *Window[T]) Bounds() (int, int) { return w.from, w.to }

// Current returns the item under the cursor.
func (w *Window[T]) Current() (T, bool) {
	var zero T
	if len(w.items) == 0 {
		return zero, false
	}
	return w.items[w.cursor], true
}

func (w *Window[T]) scroll() {
	n := len(w.items)
	if w.height < 1 || n <= w.height {
		w.from, w.to = 0, n
		return
	}

	from := w.cursor - w.height/halfViewportDivisor
	if from < 0 {
		from = 0
	}
	if from+w.height > n {
		from = n - w.height
	}
	w.from, w.to = from, from+w.height
}

// View renders the visible items, one per line.
func (w *Window[T]) View() string {
	if w.from == w.to {
		return ""
	}
	lines := make([]string, 0, w.to-w.from)
	for i := w.from; i < w.to; i++ {
		lines = append(lines, w.render(w.items[i], i == w.cursor))
	}
	return strings.Join(lines, "\n")
}
