// Package laudo implements the quality-report bounded context: the Laudo
// aggregate, its owned TestRecord entities, the status rollup rule, and the
// year-scoped code assigner.  Persistence lives behind the repository ports
// declared in repository.go.
package laudo

import (
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// TestRecord is the atomic unit of the laboratory: one measurement of one
// test-type against one product model, with an independently computed status.
// A TestRecord may exist standalone or owned by exactly one laudo; it is never
// mutated by any sibling record.
type TestRecord struct {
	ID           common.ID
	LaudoID      *common.ID
	TestTypeName string
	Result       *float64
	Status       ltypes.Status

	// Description renders the rule that produced the status, for audit
	// display.  Empty when the status came from a fallback rather than an
	// evaluated rule.
	Description string

	EmployeeID common.EmployeeID
	ModelID    common.ModelID
	MaterialID common.ID
	SectorID   common.SectorID
	MachineID  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owned reports whether the record belongs to a laudo.
func (t *TestRecord) Owned() bool {
	return t.LaudoID != nil && *t.LaudoID != ""
}

// SharedContext is the employee/model/material/sector scope a laudo carries
// and its tests inherit.
type SharedContext struct {
	EmployeeID common.EmployeeID
	ModelID    common.ModelID
	MaterialID common.ID
	SectorID   common.SectorID
}

// Validate checks the structural preconditions for laudo creation.
func (c SharedContext) Validate() error {
	if c.EmployeeID == "" {
		return errors.Validation("employee is required")
	}
	if c.ModelID == "" {
		return errors.Validation("model is required")
	}
	if c.SectorID == "" {
		return errors.Validation("sector is required")
	}
	return nil
}

// Laudo is the aggregate that groups test outcomes under one derived status
// and one generated code.  The code is unique and immutable once assigned;
// the status is written only by rollup recomputation, never set directly by a
// caller after creation.
type Laudo struct {
	ID      common.ID
	Code    string
	Status  ltypes.Status
	Context SharedContext
	Notes   string

	CreatedAt time.Time

	// Tests holds the owned records in insertion order.  Order is irrelevant
	// to the rollup and relevant only for display.
	Tests []*TestRecord
}

// Rollup derives the aggregate status from the owned tests' statuses:
// Rejected if any test is Rejected, otherwise Approved.  A Pending child does
// not block the aggregate from being Approved; this optimistic-unless-failing
// policy applies to partially evaluated batches as well.
func Rollup(tests []*TestRecord) ltypes.Status {
	for _, t := range tests {
		if t.Status == ltypes.StatusRejected {
			return ltypes.StatusRejected
		}
	}
	return ltypes.StatusApproved
}

// Recompute reapplies the rollup rule to the aggregate's own tests and
// returns the derived status.
func (l *Laudo) Recompute() ltypes.Status {
	l.Status = Rollup(l.Tests)
	return l.Status
}

// Counts tallies the owned tests by terminal status.
func (l *Laudo) Counts() (total, approved, rejected int) {
	total = len(l.Tests)
	for _, t := range l.Tests {
		switch t.Status {
		case ltypes.StatusApproved:
			approved++
		case ltypes.StatusRejected:
			rejected++
		}
	}
	return total, approved, rejected
}
