package laudo

import (
	"context"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Repository is the persistence port for the Laudo aggregate.
//
// Multi-entity mutations (aggregate plus owned tests) are single repository
// operations so the implementation can wrap them in one database transaction;
// a reader must never observe a laudo whose status does not yet reflect a
// just-added test.
type Repository interface {
	// Create persists a new laudo together with its initial batch of owned
	// tests in one transaction.  The laudo's code and status must already be
	// assigned and derived.
	Create(ctx context.Context, l *Laudo) error

	// FindByID loads the laudo and all its owned tests in insertion order.
	// Returns CodeLaudoNotFound when the laudo does not exist.
	FindByID(ctx context.Context, id common.ID) (*Laudo, error)

	// AttachTest inserts a new owned test and updates the laudo's rollup
	// status in one transaction.
	AttachTest(ctx context.Context, laudoID common.ID, t *TestRecord, status ltypes.Status) error

	// Delete hard-deletes the laudo.  The cascade to owned tests is enforced
	// by the store's referential action, not by business logic.
	Delete(ctx context.Context, id common.ID) error
}

// TestRepository is the persistence port for TestRecord entities, which are
// addressable and editable independently of any owning laudo.
type TestRepository interface {
	// Create persists a standalone test record.
	Create(ctx context.Context, t *TestRecord) error

	// FindByID returns CodeTestNotFound when the record does not exist.
	FindByID(ctx context.Context, id common.ID) (*TestRecord, error)

	// Update persists the record's result, status, and description.
	Update(ctx context.Context, t *TestRecord) error

	// UpdateWithLaudoStatus persists the record and its owning laudo's
	// recomputed rollup status in one transaction.
	UpdateWithLaudoStatus(ctx context.Context, t *TestRecord, laudoID common.ID, status ltypes.Status) error

	// ListByLaudo returns the laudo's owned records in insertion order.
	ListByLaudo(ctx context.Context, laudoID common.ID) ([]*TestRecord, error)
}
