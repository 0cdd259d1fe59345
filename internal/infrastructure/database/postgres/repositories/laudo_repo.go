// Package repositories provides PostgreSQL-backed implementations of the
// domain repository interfaces for the laudo backend.
package repositories

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

const laudoColumns = `id, code, status, employee_id, model_id, material_id, sector_id, notes, created_at`

const testColumns = `id, laudo_id, test_type_name, result, status, description,
	employee_id, model_id, material_id, sector_id, machine_id, created_at, updated_at`

// LaudoRepository is the PostgreSQL implementation of laudo.Repository.
// Every mutation that touches both the aggregate and its owned tests runs in
// a single transaction.
type LaudoRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewLaudoRepository constructs a ready-to-use LaudoRepository.
func NewLaudoRepository(pool *pgxpool.Pool, logger logging.Logger) *LaudoRepository {
	return &LaudoRepository{pool: pool, logger: logger}
}

// Create persists the laudo and its initial test batch in one transaction.
func (r *LaudoRepository) Create(ctx context.Context, l *laudo.Laudo) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO laudos (`+laudoColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		l.ID, l.Code, l.Status,
		l.Context.EmployeeID, l.Context.ModelID, l.Context.MaterialID, l.Context.SectorID,
		l.Notes, l.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert laudo",
			logging.Err(err), logging.String("laudo_id", string(l.ID)))
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to insert laudo")
	}

	for _, t := range l.Tests {
		if err := insertTest(ctx, tx, t); err != nil {
			r.logger.Error("failed to insert test",
				logging.Err(err), logging.String("test_id", string(t.ID)))
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to commit transaction")
	}
	return nil
}

// FindByID loads the laudo and its owned tests in insertion order.
func (r *LaudoRepository) FindByID(ctx context.Context, id common.ID) (*laudo.Laudo, error) {
	var l laudo.Laudo
	err := r.pool.QueryRow(ctx, `
		SELECT `+laudoColumns+` FROM laudos WHERE id = $1`, id).
		Scan(&l.ID, &l.Code, &l.Status,
			&l.Context.EmployeeID, &l.Context.ModelID, &l.Context.MaterialID, &l.Context.SectorID,
			&l.Notes, &l.CreatedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, appErrors.New(appErrors.CodeLaudoNotFound, "laudo not found").
				WithDetail("id=" + string(id))
		}
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load laudo")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+testColumns+` FROM tests
		WHERE laudo_id = $1 ORDER BY created_at, id`, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load laudo tests")
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		l.Tests = append(l.Tests, t)
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to iterate laudo tests")
	}

	return &l, nil
}

// AttachTest inserts the test and updates the laudo's rollup status in one
// transaction.
func (r *LaudoRepository) AttachTest(ctx context.Context, laudoID common.ID, t *laudo.TestRecord, status ltypes.Status) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to begin transaction")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := insertTest(ctx, tx, t); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `UPDATE laudos SET status = $1 WHERE id = $2`, status, laudoID)
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

// Delete hard-deletes the laudo.  Owned tests are removed by the schema's
// ON DELETE CASCADE action.
func (r *LaudoRepository) Delete(ctx context.Context, id common.ID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM laudos WHERE id = $1`, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrCodeLaudoDeleteFailed, "failed to delete laudo")
	}
	if tag.RowsAffected() == 0 {
		return appErrors.New(appErrors.CodeLaudoNotFound, "laudo not found").
			WithDetail("id=" + string(id))
	}

	r.logger.Info("laudo deleted", logging.String("laudo_id", string(id)))
	return nil
}

func insertTest(ctx context.Context, tx pgx.Tx, t *laudo.TestRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO tests (`+testColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		t.ID, t.LaudoID, t.TestTypeName, t.Result, t.Status, t.Description,
		t.EmployeeID, t.ModelID, t.MaterialID, t.SectorID, t.MachineID,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to insert test")
	}
	return nil
}

func scanTest(row pgx.Row) (*laudo.TestRecord, error) {
	var t laudo.TestRecord
	err := row.Scan(&t.ID, &t.LaudoID, &t.TestTypeName, &t.Result, &t.Status, &t.Description,
		&t.EmployeeID, &t.ModelID, &t.MaterialID, &t.SectorID, &t.MachineID,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, appErrors.New(appErrors.CodeTestNotFound, "test record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to scan test record")
	}
	return &t, nil
}
