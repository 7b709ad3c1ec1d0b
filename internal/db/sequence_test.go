package db

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ianjohndal5/Rental/internal/utils"
)

func TestNextSequence_Monotonic(t *testing.T) {
	database := utils.SetupTestDB(t, "rental_test_sequence")
	ctx := context.Background()

	first, err := NextSequence(ctx, database, "widgets")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := NextSequence(ctx, database, "widgets")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	// Independent sequences do not interfere.
	other, err := NextSequence(ctx, database, "gadgets")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestNextSequence_ConcurrentAllocationsAreUnique(t *testing.T) {
	database := utils.SetupTestDB(t, "rental_test_sequence_concurrent")
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := NextSequence(ctx, database, "concurrent")
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}
