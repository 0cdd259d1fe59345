package spec

import (
	"context"

	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// RuleSet is a shared tolerance specification (MSC) that one or more product
// models link to.  Its entries take precedence over legacy per-model rules.
type RuleSet struct {
	ID      common.ID
	Name    string
	Entries []Entry
}

// Repository is the persistence port for specification lookups.
type Repository interface {
	// RuleSetForModel returns the shared rule-set the model is linked to,
	// or (nil, nil) when the model has no rule-set link.
	RuleSetForModel(ctx context.Context, modelID common.ModelID) (*RuleSet, error)

	// LegacyEntriesForModel returns the model's legacy per-model specification
	// entries.  Legacy entries only ever express the Fixed variant.
	LegacyEntriesForModel(ctx context.Context, modelID common.ModelID) ([]Entry, error)
}
