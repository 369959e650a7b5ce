// Package memory is the bounded, append-only interaction log.
//
// Eviction is strictly FIFO: relevance here is recency of insertion, not of
// access, which is why this is not an LRU cache: a read must never reorder
// the eviction queue.
package memory

import (
	"context"
	"sync"

	"voice-assistant-engine/internal/model"
	"voice-assistant-engine/pkg/log"
)

// Sink receives records for durable storage or analytics. Sink failures
// must never fail the user-facing response; the log swallows and logs them.
type Sink interface {
	Store(ctx context.Context, rec model.InteractionRecord) error
}

// Log is the in-process interaction memory, safe for concurrent utterances.
type Log struct {
	mu      sync.Mutex
	l       log.Logger
	max     int
	records []model.InteractionRecord
	sink    Sink // optional
}

// New creates a Log keeping at most max records. max must be >= 1.
func New(l log.Logger, max int, sink Sink) *Log {
	if max < 1 {
		max = 1
	}
	return &Log{l: l, max: max, sink: sink}
}

// Append stores the record and evicts the oldest if the bound is exceeded.
// The write and the eviction check are one indivisible step.
func (lg *Log) Append(ctx context.Context, rec model.InteractionRecord) {
	lg.mu.Lock()
	lg.records = append(lg.records, rec)
	if len(lg.records) > lg.max {
		lg.records = lg.records[len(lg.records)-lg.max:]
	}
	lg.mu.Unlock()

	if lg.sink != nil {
		if err := lg.sink.Store(ctx, rec); err != nil {
			lg.l.Warnf(ctx, "memory: sink store failed: %v", err)
		}
	}
}

// Recent returns up to k records, newest first.
func (lg *Log) Recent(k int) []model.InteractionRecord {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	if k < 0 {
		k = 0
	}
	if k > len(lg.records) {
		k = len(lg.records)
	}
	out := make([]model.InteractionRecord, 0, k)
	for i := len(lg.records) - 1; i >= len(lg.records)-k; i-- {
		out = append(out, lg.records[i])
	}
	return out
}

// Len returns the current record count.
func (lg *Log) Len() int {
	lg.mu.Lock()
	defer lg.mu.Unlock()
	return len(lg.records)
}

// LastDispatched returns the most recent record that carries a dispatched
// step, used to resolve "do it again". The second return is false when no
// such record exists.
func (lg *Log) LastDispatched(userID string) (model.InteractionRecord, bool) {
	lg.mu.Lock()
	defer lg.mu.Unlock()

	for i := len(lg.records) - 1; i >= 0; i-- {
		rec := lg.records[i]
		if rec.UserID == userID && rec.LastStep != nil {
			return rec, true
		}
	}
	return model.InteractionRecord{}, false
}
