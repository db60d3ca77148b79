package stats

import (
	"slices"
	"time"

	"github.com/gammazero/deque"
	"golang.org/x/exp/constraints"
)

// Window keeps the last size samples and their running sum.
type Window struct {
	samples *deque.Deque[time.Duration]
	size    int
	sum     time.Duration
}

func NewWindow(size int) *Window {
	if size < 1 {
		size = 1
	}
	return &Window{
		samples: deque.New[time.Duration](size),
		size:    size,
	}
}

// Add records d, evicting the oldest sample once the window is full.
func (w *Window) Add(d time.Duration) {
	if w.samples.Len() == w.size {
		w.sum -= w.samples.PopFront()
	}
	w.samples.PushBack(d)
	w.sum += d
}

func (w *Window) Len() int {
	return w.samples.Len()
}

func (w *Window) Mean() time.Duration {
	if w.samples.Len() == 0 {
		return 0
	}
	return w.sum / time.Duration(w.samples.Len())
}

// Percentile returns the p-th percentile (0 < p <= 1) of the samples in
// the window, 0 when empty.
func (w *Window) Percentile(p float64) time.Duration {
	n := w.samples.Len()
	if n == 0 {
		return 0
	}
	sorted := make([]time.Duration, n)
	for i := 0; i < n; i++ {
		sorted[i] = w.samples.At(i)
	}
	slices.Sort(sorted)
	return POf(sorted, p)
}

// POf returns the element at percent of an ascending slice, using the
// nearest-rank method. The index is clamped to the slice bounds.
func POf[E constraints.Ordered](t []E, percent float64) E {
	idx := int(float64(len(t))*percent+0.5) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t) {
		idx = len(t) - 1
	}
	return t[idx]
}
