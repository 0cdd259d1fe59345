package spec

import (
	"context"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// Resolver selects the tolerance rule applicable to a (model, test-type) pair.
//
// Shared rule-set entries win over legacy per-model entries for the same
// test-type; when the linked rule-set has no entry for the test-type the
// legacy entries are still consulted.  Lookup is keyed by test-type name, so
// renaming a test-type silently breaks resolution for existing specifications.
type Resolver struct {
	repo   Repository
	logger logging.Logger
}

// NewResolver creates a Resolver backed by the given specification repository.
func NewResolver(repo Repository, logger logging.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the applicable rule, or (nil, nil) when no rule is found.
// A miss is a valid outcome, never an error: evaluation then falls back to the
// caller-supplied status or Pending.
func (r *Resolver) Resolve(ctx context.Context, modelID common.ModelID, testTypeName string) (Rule, error) {
	rs, err := r.repo.RuleSetForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if rs != nil {
		// First match wins; entry uniqueness per test-type is an upstream
		// invariant, not enforced here.
		for _, e := range rs.Entries {
			if e.TestTypeName == testTypeName {
				return e.Rule, nil
			}
		}
	}

	legacy, err := r.repo.LegacyEntriesForModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	for _, e := range legacy {
		if e.TestTypeName == testTypeName {
			return e.Rule, nil
		}
	}

	r.logger.Debug("no rule resolved",
		logging.String("model_id", string(modelID)),
		logging.String("test_type", testTypeName))
	return nil, nil
}
