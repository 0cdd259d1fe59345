package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// TestRepository is the PostgreSQL implementation of laudo.TestRepository.
type TestRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewTestRepository constructs a ready-to-use TestRepository.
func NewTestRepository(pool *pgxpool.Pool, logger logging.Logger) *TestRepository {
	return &TestRepository{pool: pool, logger: logger}
}

// Create persists a standalone test record.
func (r *TestRepository) Create(ctx context.Context, t *laudo.TestRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tests (`+testColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		t.ID, t.LaudoID, t.TestTypeName, t.Result, t.Status, t.Description,
		t.EmployeeID, t.ModelID, t.MaterialID, t.SectorID, t.MachineID,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert test",
			logging.Err(err), logging.String("test_id", string(t.ID)))
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to insert test")
	}
	return nil
}

// FindByID loads one test record.
func (r *TestRepository) FindByID(ctx context.Context, id common.ID) (*laudo.TestRecord, error) {
	t, err := scanTest(r.pool.QueryRow(ctx, `
		SELECT `+testColumns+` FROM tests WHERE id = $1`, id))
	if err != nil {
		if appErrors.IsCode(err, appErrors.CodeTestNotFound) {
			return nil, appErrors.New(appErrors.CodeTestNotFound, "test record not found").
				WithDetail("id=" + string(id))
		}
		return nil, err
	}
	return t, nil
}

// Update persists the record's result, status, and description.
func (r *TestRepository) Update(ctx context.Context, t *laudo.TestRecord) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tests SET result = $1, status = $2, description = $3, updated_at = $4
		WHERE id = $5`,
		t.Result, t.Status, t.Description, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to update test")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.CodeTestNotFound, "test record not found").
			WithDetail("id=" + string(t.ID))
	}
	return nil
}

// UpdateWithLaudoStatus persists the record together with its owning laudo's
// recomputed rollup status in one transaction.
func (r *TestRepository) UpdateWithLaudoStatus(ctx context.Context, t *laudo.TestRecord, laudoID common.ID, status ltypes.Status) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	tag, err := tx.Exec(ctx, `
		UPDATE tests SET result = $1, status = $2, description = $3, updated_at = $4
		WHERE id = $5`,
		t.Result, t.Status, t.Description, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to update test")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.CodeTestNotFound, "test record not found").
			WithDetail("id=" + string(t.ID))
	}

	tag, err = tx.Exec(ctx, `UPDATE laudos SET status = $1 WHERE id = $2`, status, laudoID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to update laudo status")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.CodeLaudoNotFound, "laudo not found").
			WithDetail("id=" + string(laudoID))
	}

	if err := tx.Commit(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to commit transaction")
	}
	return nil
}

// ListByLaudo returns the laudo's owned records in insertion order.
func (r *TestRepository) ListByLaudo(ctx context.Context, laudoID common.ID) ([]*laudo.TestRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+testColumns+` FROM tests
		WHERE laudo_id = $1 ORDER BY created_at, id`, laudoID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to list laudo tests")
	}
	defer rows.Close()

	var out []*laudo.TestRecord
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to iterate laudo tests")
	}
	return out, nil
}
