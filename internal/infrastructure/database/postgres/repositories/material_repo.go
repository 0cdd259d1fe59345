package repositories

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/material"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
)

// MaterialRepository is the PostgreSQL implementation of material.Repository.
type MaterialRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewMaterialRepository constructs a ready-to-use MaterialRepository.
func NewMaterialRepository(pool *pgxpool.Pool, logger logging.Logger) *MaterialRepository {
	return &MaterialRepository{pool: pool, logger: logger}
}

// FindByReference returns (nil, nil) when no material carries reference.
func (r *MaterialRepository) FindByReference(ctx context.Context, reference string) (*material.Material, error) {
	var m material.Material
	err := r.pool.QueryRow(ctx, `
		SELECT id, reference, material_type, sector_id, created_at
		FROM materials WHERE reference = $1`, reference).
		Scan(&m.ID, &m.Reference, &m.Type, &m.SectorID, &m.CreatedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load material")
	}
	return &m, nil
}

// CreateIfAbsent inserts m unless a material with the same reference already
// exists, and returns the surviving row either way.  The unique constraint on
// reference makes concurrent first-references converge on one row.
func (r *MaterialRepository) CreateIfAbsent(ctx context.Context, m *material.Material) (*material.Material, error) {
	var out material.Material
	err := r.pool.QueryRow(ctx, `
		INSERT INTO materials (id, reference, material_type, sector_id, created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (reference) DO NOTHING
		RETURNING id, reference, material_type, sector_id, created_at`,
		m.ID, m.Reference, m.Type, m.SectorID, m.CreatedAt).
		Scan(&out.ID, &out.Reference, &out.Type, &out.SectorID, &out.CreatedAt)
	if err == nil {
		return &out, nil
	}
	if !stderrors.Is(err, pgx.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to insert material")
	}

	// Conflict: another writer won the race.  Return the existing row.
	existing, err := r.FindByReference(ctx, m.Reference)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		// Inserted row deleted between the conflict and the reselect.
		return nil, appErrors.New(appErrors.ErrCodeMaterialConflict, "material vanished during get-or-create").
			WithDetail("reference=" + m.Reference)
	}

	r.logger.Debug("material reference already present",
		logging.String("reference", m.Reference),
		logging.String("material_id", string(existing.ID)))
	return existing, nil
}
