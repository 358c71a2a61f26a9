package query

import (
	"errors"
	"sync/atomic"
)

// Cancelled is the sentinel surfaced to a query's caller when the
// snapshot it ran against was superseded by a concurrent ApplyChanges
// call. It is a control-flow signal, not a bug (spec.md §7).
var Cancelled = errors.New("query cancelled")

// CancellationToken lets a long-running query poll for cancellation
// between memoized calls and between scope walks, without the writer
// that requested it having to block on or interrupt the reader directly.
type CancellationToken struct {
	generation *atomic.Uint64
	observed   uint64
}

// Check returns Cancelled once the engine's generation has advanced past
// the one this token was minted at.
func (c CancellationToken) Check() error {
	if c.generation.Load() != c.observed {
		return Cancelled
	}
	return nil
}
