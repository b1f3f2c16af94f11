package auth

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationList_SingleUse(t *testing.T) {
	list := NewMemoryRevocationList()
	ctx := context.Background()

	ok, err := list.TryConsume(ctx, "Bearer token-a")
	require.NoError(t, err)
	assert.True(t, ok)

	for i := 0; i < 10; i++ {
		ok, err = list.TryConsume(ctx, "Bearer token-a")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	// A different token string is independent.
	ok, err = list.TryConsume(ctx, "Bearer token-b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryRevocationList_ConcurrentConsumeAdmitsOne(t *testing.T) {
	list := NewMemoryRevocationList()
	ctx := context.Background()

	const workers = 100
	var admitted atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			ok, err := list.TryConsume(ctx, "Bearer contested-token")
			assert.NoError(t, err)
			if ok {
				admitted.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), admitted.Load())
}
