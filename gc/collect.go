package gc

import (
	"time"

	"go.uber.org/zap"
)

// Metrics reports one collection cycle.
type Metrics struct {
	// Duration is the wall-clock time of the full cycle.
	Duration time.Duration
	// Roots is the number of pinned objects the trace was seeded from.
	Roots int
	// Total is the number of registered objects before the cycle.
	Total int
	// Garbage is the number of objects unregistered, finalized, and freed.
	Garbage int
}

// Collect runs one full stop-the-world cycle: trace reachability from all
// pinned objects, sweep and finalize everything else, then free it. The
// exclusive heap lock is held for the entire cycle, so registration and
// concurrent Collect calls serialize behind it. There is no cancellation;
// once started, a cycle runs to completion.
//
// Collect on a closed heap is a no-op and returns zero Metrics.
func (h *Heap) Collect() Metrics {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return Metrics{}
	}

	start := time.Now()
	total := h.lenLocked()

	reachable, roots := h.trace()
	swept := h.sweep(reachable)
	h.release(swept)

	m := Metrics{
		Duration: time.Since(start),
		Roots:    roots,
		Total:    total,
		Garbage:  len(swept),
	}
	h.mu.Unlock()

	// Informational only; nothing parses this line.
	Logger().Info("collected garbage",
		zap.Float64("ms", float64(m.Duration.Microseconds())/1000.0),
		zap.Int("roots", m.Roots),
		zap.Int("objects", m.Total),
		zap.Int("garbage", m.Garbage),
	)

	for _, s := range swept {
		h.notify(Event{Type: EventSwept, Handle: s.handle, Kind: s.kind})
	}

	return m
}
