package laudo

import (
	"context"
	"fmt"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
)

// codeFormat is the printed shape of a laudo code, e.g. "L-2024-0001".
const codeFormat = "L-%d-%04d"

// FormatCode renders the year-scoped sequential code for a laudo.
// Sequence numbers above 9999 widen naturally rather than truncating.
func FormatCode(year, seq int) string {
	return fmt.Sprintf(codeFormat, year, seq)
}

// SequenceRepository is the port for the per-year atomic counter backing code
// assignment.  Next must be safe under concurrent callers: two simultaneous
// laudo creations in the same year must observe distinct values.
type SequenceRepository interface {
	// Next atomically increments and returns the counter for year.
	// The first call of a year returns 1.
	Next(ctx context.Context, year int) (int, error)
}

// CodeAssigner generates unique, monotonically increasing, year-scoped codes.
// Codes are permanent once assigned to a laudo; they are never reassigned or
// recycled.  Uniqueness under concurrent writers is delegated to the
// SequenceRepository's atomic increment rather than a read-then-write of the
// current maximum.
type CodeAssigner struct {
	seq   SequenceRepository
	clock Clock
}

// NewCodeAssigner creates a CodeAssigner on the given sequence port and clock.
func NewCodeAssigner(seq SequenceRepository, clock Clock) *CodeAssigner {
	return &CodeAssigner{seq: seq, clock: clock}
}

// NextCode reserves the next code for the current year.
func (a *CodeAssigner) NextCode(ctx context.Context) (string, error) {
	year := a.clock.Now().Year()
	n, err := a.seq.Next(ctx, year)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCodeAssignFailed, "failed to reserve laudo sequence")
	}
	return FormatCode(year, n), nil
}
