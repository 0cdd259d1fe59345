// Package material implements the material bounded context: the Material
// entity and the get-or-create resolver used during laudo registration.
package material

import (
	"context"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// Material is a batch of raw material identified by the laboratory's
// reference string and scoped to a sector.
type Material struct {
	ID        common.ID
	Reference string
	Type      string
	SectorID  common.SectorID
	CreatedAt time.Time
}

// Repository is the persistence port for materials.  CreateIfAbsent must be
// atomic at the store level (insert-with-conflict-ignore followed by a
// reselect), not two separate round-trips, so that concurrent creators of the
// same reference converge on a single row.
type Repository interface {
	// FindByReference returns (nil, nil) when no material carries reference.
	FindByReference(ctx context.Context, reference string) (*Material, error)

	// CreateIfAbsent inserts m unless a material with the same reference
	// already exists, and returns the winning row either way.
	CreateIfAbsent(ctx context.Context, m *Material) (*Material, error)
}

// Resolver implements the idempotent get-or-create used when a laudo or test
// references a material by its laboratory reference string.
type Resolver struct {
	repo   Repository
	clock  func() time.Time
	logger logging.Logger
}

// NewResolver creates a material Resolver.
func NewResolver(repo Repository, logger logging.Logger) *Resolver {
	return &Resolver{repo: repo, clock: time.Now, logger: logger}
}

// ResolveOrCreate returns the material with the given reference, creating it
// scoped to sectorID and materialType when absent.  Idempotent on the
// reference key.
func (r *Resolver) ResolveOrCreate(ctx context.Context, reference string, sectorID common.SectorID, materialType string) (*Material, error) {
	if reference == "" {
		return nil, errors.Validation("material reference is required")
	}

	m, err := r.repo.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m, nil
	}

	created, err := r.repo.CreateIfAbsent(ctx, &Material{
		ID:        common.NewID(),
		Reference: reference,
		Type:      materialType,
		SectorID:  sectorID,
		CreatedAt: r.clock(),
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("material registered",
		logging.String("reference", reference),
		logging.String("sector_id", string(sectorID)))
	return created, nil
}
