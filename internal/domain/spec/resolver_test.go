package spec

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) RuleSetForModel(ctx context.Context, modelID common.ModelID) (*RuleSet, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RuleSet), args.Error(1)
}

func (m *MockRepository) LegacyEntriesForModel(ctx context.Context, modelID common.ModelID) ([]Entry, error) {
	args := m.Called(ctx, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Entry), args.Error(1)
}

const modelID = common.ModelID("model-1")

func TestResolvePrefersRuleSetOverLegacy(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RuleSetForModel", mock.Anything, modelID).Return(&RuleSet{
		ID:   "rs-1",
		Name: "MSC aço carbono",
		Entries: []Entry{
			{TestTypeName: "dureza", Rule: Range{Min: 55, Max: 65}},
		},
	}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	rule, err := resolver.Resolve(context.Background(), modelID, "dureza")
	require.NoError(t, err)
	assert.Equal(t, Range{Min: 55, Max: 65}, rule)

	// Legacy entries must not even be consulted on a rule-set hit.
	repo.AssertNotCalled(t, "LegacyEntriesForModel", mock.Anything, modelID)
}

func TestResolveFallsBackToLegacy(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RuleSetForModel", mock.Anything, modelID).Return(nil, nil)
	repo.On("LegacyEntriesForModel", mock.Anything, modelID).Return([]Entry{
		{TestTypeName: "dureza", Rule: Fixed{Target: 60, Tolerance: 2}},
	}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	rule, err := resolver.Resolve(context.Background(), modelID, "dureza")
	require.NoError(t, err)
	assert.Equal(t, Fixed{Target: 60, Tolerance: 2}, rule)
}

func TestResolveLinkedRuleSetWithoutEntryConsultsLegacy(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RuleSetForModel", mock.Anything, modelID).Return(&RuleSet{
		ID:      "rs-1",
		Entries: []Entry{{TestTypeName: "espessura", Rule: Max{Limit: 2}}},
	}, nil)
	repo.On("LegacyEntriesForModel", mock.Anything, modelID).Return([]Entry{
		{TestTypeName: "dureza", Rule: Fixed{Target: 60, Tolerance: 2}},
	}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	rule, err := resolver.Resolve(context.Background(), modelID, "dureza")
	require.NoError(t, err)
	assert.Equal(t, Fixed{Target: 60, Tolerance: 2}, rule)
}

func TestResolveMissIsNotAnError(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RuleSetForModel", mock.Anything, modelID).Return(nil, nil)
	repo.On("LegacyEntriesForModel", mock.Anything, modelID).Return([]Entry{}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	rule, err := resolver.Resolve(context.Background(), modelID, "inexistente")
	require.NoError(t, err)
	assert.Nil(t, rule)
}

func TestResolveFirstMatchWins(t *testing.T) {
	repo := new(MockRepository)
	repo.On("RuleSetForModel", mock.Anything, modelID).Return(&RuleSet{
		Entries: []Entry{
			{TestTypeName: "dureza", Rule: Max{Limit: 70}},
			{TestTypeName: "dureza", Rule: Min{Limit: 50}},
		},
	}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	rule, err := resolver.Resolve(context.Background(), modelID, "dureza")
	require.NoError(t, err)
	assert.Equal(t, Max{Limit: 70}, rule)
}
