// Package window provides the bounded price series behind the live chart.
package window

import "time"

// DefaultCapacity is the number of points the live view keeps.
const DefaultCapacity = 20

// PricePoint is one sampled price. Immutable once appended.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// Window is a fixed-capacity FIFO buffer of recent price points.
// Insertion order is chronological order; the controller generates
// timestamps at append time, so they are non-decreasing by construction.
// Not safe for concurrent use; the owning session serializes access.
type Window struct {
	capacity int
	points   []PricePoint
}

func New(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Window{capacity: capacity, points: make([]PricePoint, 0, capacity)}
}

// Append adds a point to the end, evicting the oldest point first when
// the window is full.
func (w *Window) Append(p PricePoint) {
	if len(w.points) == w.capacity {
		copy(w.points, w.points[1:])
		w.points = w.points[:len(w.points)-1]
	}
	w.points = append(w.points, p)
}

// Snapshot returns a copy of the points in order. The returned slice
// never aliases internal storage.
func (w *Window) Snapshot() []PricePoint {
	out := make([]PricePoint, len(w.points))
	copy(out, w.points)
	return out
}

// Reset clears the window, keeping its capacity.
func (w *Window) Reset() {
	w.points = w.points[:0]
}

func (w *Window) Len() int { return len(w.points) }

func (w *Window) Capacity() int { return w.capacity }

// Last returns the most recent point, if any.
func (w *Window) Last() (PricePoint, bool) {
	if len(w.points) == 0 {
		return PricePoint{}, false
	}
	return w.points[len(w.points)-1], true
}
