package laudo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memSequence is an in-memory SequenceRepository with the same atomicity
// guarantee the postgres counter table provides.
type memSequence struct {
	mu   sync.Mutex
	vals map[int]int
}

func newMemSequence() *memSequence {
	return &memSequence{vals: map[int]int{}}
}

func (s *memSequence) Next(_ context.Context, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[year]++
	return s.vals[year], nil
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "L-2024-0001", FormatCode(2024, 1))
	assert.Equal(t, "L-2024-0042", FormatCode(2024, 42))
	assert.Equal(t, "L-2025-9999", FormatCode(2025, 9999))
	assert.Equal(t, "L-2025-10000", FormatCode(2025, 10000), "wide sequences are not truncated")
}

func TestNextCodeSequential(t *testing.T) {
	clock := fixedClock{t: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)}
	assigner := NewCodeAssigner(newMemSequence(), clock)

	first, err := assigner.NextCode(context.Background())
	require.NoError(t, err)
	second, err := assigner.NextCode(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "L-2024-0001", first)
	assert.Equal(t, "L-2024-0002", second)
}

func TestNextCodeYearScoped(t *testing.T) {
	seq := newMemSequence()

	a2024 := NewCodeAssigner(seq, fixedClock{t: time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)})
	a2025 := NewCodeAssigner(seq, fixedClock{t: time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC)})

	c1, err := a2024.NextCode(context.Background())
	require.NoError(t, err)
	c2, err := a2025.NextCode(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "L-2024-0001", c1)
	assert.Equal(t, "L-2025-0001", c2, "each year restarts its own sequence")
}

func TestNextCodeConcurrentUnique(t *testing.T) {
	clock := fixedClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	assigner := NewCodeAssigner(newMemSequence(), clock)

	const n = 50
	codes := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code, err := assigner.NextCode(context.Background())
			assert.NoError(t, err)
			codes <- code
		}()
	}
	wg.Wait()
	close(codes)

	seen := map[string]bool{}
	for code := range codes {
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, n)
}
