package turnlocks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/KirkDiggler/dnd-battlemap/internal/uuid"
)

func TestInMemory_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	l := NewInMemory(uuid.NewSequenceGenerator("lock"))

	token, err := l.Acquire(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, "lock-1", token)

	_, err = l.Acquire(ctx, "session")
	assert.True(t, dnderr.Is(err, dnderr.CodeBusy))

	// other keys are independent
	_, err = l.Acquire(ctx, "other")
	require.NoError(t, err)

	// a stale token does not release the current holder
	require.NoError(t, l.Release(ctx, "session", "lock-99"))
	_, err = l.Acquire(ctx, "session")
	assert.True(t, dnderr.Is(err, dnderr.CodeBusy))

	require.NoError(t, l.Release(ctx, "session", token))
	_, err = l.Acquire(ctx, "session")
	assert.NoError(t, err)
}

func TestInMemory_EmptyKey(t *testing.T) {
	_, err := NewInMemory(nil).Acquire(context.Background(), "")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestInMemory_OneWinner(t *testing.T) {
	l := NewInMemory(nil)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.Acquire(context.Background(), "session"); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}
