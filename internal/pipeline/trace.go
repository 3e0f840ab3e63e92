package pipeline

import (
	"sync"
)

// trace collects diagnostic entries for rejected strategies. The entry list
// is bounded so pathological inputs cannot grow it without limit; the attempt
// counter keeps exact totals regardless.
type trace struct {
	mu      sync.Mutex
	entries []TraceEntry
	limit   int
	dropped int
}

func newTrace(limit int) *trace {
	return &trace{limit: limit}
}

func (t *trace) add(strategy, reason string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.limit > 0 && len(t.entries) >= t.limit {
		t.dropped++
		return
	}
	t.entries = append(t.entries, TraceEntry{Strategy: strategy, Reason: reason})
}

func (t *trace) snapshot() []TraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]TraceEntry, len(t.entries))
	copy(out, t.entries)
	if t.dropped > 0 {
		out = append(out, TraceEntry{
			Strategy: "trace",
			Reason:   "further entries dropped (trace limit reached)",
		})
	}
	return out
}
