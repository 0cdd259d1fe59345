package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
)

// SequenceRepository implements laudo.SequenceRepository on a per-year counter
// table.  The upsert increments and reads the counter in one statement, so
// concurrent assignments can never observe the same value.
type SequenceRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewSequenceRepository constructs a ready-to-use SequenceRepository.
func NewSequenceRepository(pool *pgxpool.Pool, logger logging.Logger) *SequenceRepository {
	return &SequenceRepository{pool: pool, logger: logger}
}

// Next reserves and returns the next sequential number for year.
func (r *SequenceRepository) Next(ctx context.Context, year int) (int, error) {
	var counter int
	err := r.pool.QueryRow(ctx, `
		INSERT INTO laudo_sequences (year, counter)
		VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET counter = laudo_sequences.counter + 1
		RETURNING counter`, year).
		Scan(&counter)
	if err != nil {
		r.logger.Error("failed to advance laudo sequence",
			logging.Err(err), logging.Int("year", year))
		return 0, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to advance laudo sequence")
	}
	return counter, nil
}
