package repositories

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/spec"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	appErrors "github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// SpecRepository is the PostgreSQL implementation of spec.Repository.
//
// Rule-set entries persist each variant's parameters in nullable columns
// discriminated by kind; legacy per-model rules only carry the fixed
// target/tolerance pair.
type SpecRepository struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewSpecRepository constructs a ready-to-use SpecRepository.
func NewSpecRepository(pool *pgxpool.Pool, logger logging.Logger) *SpecRepository {
	return &SpecRepository{pool: pool, logger: logger}
}

// RuleSetForModel returns the shared rule-set the model links to, or
// (nil, nil) when the model has no link.
func (r *SpecRepository) RuleSetForModel(ctx context.Context, modelID common.ModelID) (*spec.RuleSet, error) {
	var rs spec.RuleSet
	err := r.pool.QueryRow(ctx, `
		SELECT rs.id, rs.name
		FROM rule_sets rs
		JOIN model_rule_links l ON l.rule_set_id = rs.id
		WHERE l.model_id = $1`, modelID).
		Scan(&rs.ID, &rs.Name)
	if err != nil {
		if stderrors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load rule-set link")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT test_type_name, kind, target, tolerance, min_value, max_value
		FROM rule_set_entries
		WHERE rule_set_id = $1
		ORDER BY position, id`, rs.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load rule-set entries")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name               string
			kind               string
			target, tolerance  *float64
			minValue, maxValue *float64
		)
		if err := rows.Scan(&name, &kind, &target, &tolerance, &minValue, &maxValue); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to scan rule-set entry")
		}

		rule, err := spec.BuildRule(ltypes.RuleKind(kind), target, tolerance, minValue, maxValue)
		if err != nil {
			// A malformed stored entry should fail loudly, not silently skew
			// evaluation.
			r.logger.Error("invalid stored rule entry",
				logging.Err(err),
				logging.String("rule_set_id", string(rs.ID)),
				logging.String("test_type", name))
			return nil, err
		}
		rs.Entries = append(rs.Entries, spec.Entry{TestTypeName: name, Rule: rule})
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to iterate rule-set entries")
	}

	return &rs, nil
}

// LegacyEntriesForModel returns the model's legacy per-model entries.  These
// only ever express the fixed target/tolerance variant.
func (r *SpecRepository) LegacyEntriesForModel(ctx context.Context, modelID common.ModelID) ([]spec.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT test_type_name, target, tolerance
		FROM model_legacy_rules
		WHERE model_id = $1
		ORDER BY id`, modelID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to load legacy rules")
	}
	defer rows.Close()

	var entries []spec.Entry
	for rows.Next() {
		var (
			name              string
			target, tolerance float64
		)
		if err := rows.Scan(&name, &target, &tolerance); err != nil {
			return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to scan legacy rule")
		}
		entries = append(entries, spec.Entry{
			TestTypeName: name,
			Rule:         spec.Fixed{Target: target, Tolerance: tolerance},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.CodeDatabaseError, "failed to iterate legacy rules")
	}
	return entries, nil
}
