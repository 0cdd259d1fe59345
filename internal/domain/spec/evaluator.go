package spec

import (
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Verdict is the outcome of evaluating one numeric result against one rule:
// a terminal status plus a human-readable description of the applied bounds,
// suitable for audit display.
type Verdict struct {
	Status      ltypes.Status
	Description string
}

// Evaluate applies rule to result and returns the verdict.
//
// It returns nil when no verdict can be formed: a nil result (no measurement
// was submitted) or a nil rule (resolution miss).  In both cases the caller
// falls back to an explicitly supplied status, or Pending.
func Evaluate(result *float64, rule Rule) *Verdict {
	if result == nil || rule == nil {
		return nil
	}

	status := ltypes.StatusRejected
	if rule.Pass(*result) {
		status = ltypes.StatusApproved
	}
	return &Verdict{
		Status:      status,
		Description: rule.Describe(),
	}
}

// ResolveStatus applies the status resolution order used when registering a
// test: the evaluator's verdict wins, then any status explicitly supplied by
// the caller, then Pending.
func ResolveStatus(verdict *Verdict, explicit ltypes.Status) ltypes.Status {
	if verdict != nil {
		return verdict.Status
	}
	if explicit.Valid() {
		return explicit
	}
	return ltypes.StatusPending
}
