package material

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/errors"
)

// MockRepository is a mock implementation of Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByReference(ctx context.Context, reference string) (*Material, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Material), args.Error(1)
}

func (m *MockRepository) CreateIfAbsent(ctx context.Context, mat *Material) (*Material, error) {
	args := m.Called(ctx, mat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Material), args.Error(1)
}

func TestResolveOrCreateReturnsExisting(t *testing.T) {
	existing := &Material{ID: "mat-1", Reference: "AL-7075", SectorID: "s1"}

	repo := new(MockRepository)
	repo.On("FindByReference", mock.Anything, "AL-7075").Return(existing, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	got, err := resolver.ResolveOrCreate(context.Background(), "AL-7075", "s1", "alumínio")
	require.NoError(t, err)
	assert.Same(t, existing, got)
	repo.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything)
}

func TestResolveOrCreateCreatesWhenAbsent(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByReference", mock.Anything, "AL-7075").Return(nil, nil)
	repo.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(m *Material) bool {
		return m.Reference == "AL-7075" && m.SectorID == "s1" && m.Type == "alumínio" && m.ID != ""
	})).Return(&Material{ID: "mat-2", Reference: "AL-7075", SectorID: "s1", Type: "alumínio"}, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	got, err := resolver.ResolveOrCreate(context.Background(), "AL-7075", "s1", "alumínio")
	require.NoError(t, err)
	assert.Equal(t, "AL-7075", got.Reference)
	repo.AssertExpectations(t)
}

func TestResolveOrCreateEmptyReference(t *testing.T) {
	resolver := NewResolver(new(MockRepository), logging.NewNopLogger())

	_, err := resolver.ResolveOrCreate(context.Background(), "", "s1", "aço")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestResolveOrCreateConcurrentLoserGetsWinnerRow(t *testing.T) {
	// CreateIfAbsent resolves the race at the store: the loser of a
	// concurrent insert still receives the winner's row.
	winner := &Material{ID: "mat-w", Reference: "AC-1020"}

	repo := new(MockRepository)
	repo.On("FindByReference", mock.Anything, "AC-1020").Return(nil, nil)
	repo.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(winner, nil)

	resolver := NewResolver(repo, logging.NewNopLogger())

	got, err := resolver.ResolveOrCreate(context.Background(), "AC-1020", "s1", "aço")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, got.ID)
}
