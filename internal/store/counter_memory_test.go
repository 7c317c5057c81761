package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workhive/workhive-api/internal/store"
)

func TestMemoryCounterStore_Increment(t *testing.T) {
	t.Run("counts sequential increments within a window", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		for i := int64(1); i <= 5; i++ {
			counter, err := s.Increment(context.Background(), "key1", time.Minute)

			require.NoError(t, err)
			assert.Equal(t, i, counter.Count)
		}
	})

	t.Run("keeps resetAt stable within a window", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		first, err := s.Increment(context.Background(), "key1", time.Minute)
		require.NoError(t, err)

		second, err := s.Increment(context.Background(), "key1", time.Minute)
		require.NoError(t, err)

		assert.Equal(t, first.ResetAt, second.ResetAt, "resetAt should not move while the window is live")
	})

	t.Run("sets resetAt one window ahead", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		before := time.Now()
		counter, err := s.Increment(context.Background(), "key1", time.Minute)
		after := time.Now()

		require.NoError(t, err)
		assert.False(t, counter.ResetAt.Before(before.Add(time.Minute)))
		assert.False(t, counter.ResetAt.After(after.Add(time.Minute)))
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		_, _ = s.Increment(context.Background(), "rl:login:1.2.3.4", time.Minute)
		_, _ = s.Increment(context.Background(), "rl:login:1.2.3.4", time.Minute)

		counter, err := s.Increment(context.Background(), "rl:login:5.6.7.8", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), counter.Count, "other subject should have its own counter")
	})

	t.Run("starts a fresh window after expiry", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		_, _ = s.Increment(context.Background(), "key1", 50*time.Millisecond)
		_, _ = s.Increment(context.Background(), "key1", 50*time.Millisecond)

		time.Sleep(60 * time.Millisecond)

		before := time.Now()
		counter, err := s.Increment(context.Background(), "key1", 50*time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(1), counter.Count, "expired window should restart at 1")
		assert.False(t, counter.ResetAt.Before(before.Add(50*time.Millisecond)))
	})

	t.Run("handles concurrent increments without losing counts", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		const workers = 50

		done := make(chan struct{})

		for range workers {
			go func() {
				defer func() { done <- struct{}{} }()

				_, _ = s.Increment(context.Background(), "key1", time.Minute)
			}()
		}

		for range workers {
			<-done
		}

		counter, err := s.Increment(context.Background(), "key1", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(workers+1), counter.Count)
	})
}

func TestMemoryCounterStore_Reset(t *testing.T) {
	t.Run("zeroes count but preserves resetAt", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		first, _ := s.Increment(context.Background(), "key1", time.Minute)
		_, _ = s.Increment(context.Background(), "key1", time.Minute)

		err := s.Reset(context.Background(), "key1")
		require.NoError(t, err)

		counter, err := s.Increment(context.Background(), "key1", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), counter.Count, "count restarts at 1 after reset")
		assert.Equal(t, first.ResetAt, counter.ResetAt, "reset must not start a fresh window")
	})

	t.Run("is a no-op for unknown keys", func(t *testing.T) {
		s := store.NewMemoryCounterStore()

		err := s.Reset(context.Background(), "missing")

		assert.NoError(t, err)
	})
}

func TestMemoryCounterStore_Clear(t *testing.T) {
	s := store.NewMemoryCounterStore()

	_, _ = s.Increment(context.Background(), "key1", time.Minute)
	_, _ = s.Increment(context.Background(), "key2", time.Minute)

	err := s.Clear(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, s.Len())

	counter, err := s.Increment(context.Background(), "key1", time.Minute)

	require.NoError(t, err)
	assert.Equal(t, int64(1), counter.Count)
}

func TestMemoryCounterStore_BoundedSize(t *testing.T) {
	s := store.NewMemoryCounterStore()

	// Push well past capacity; the LRU must evict rather than grow.
	for i := range 12_000 {
		_, _ = s.Increment(context.Background(), fmt.Sprintf("key%d", i), time.Minute)
	}

	assert.LessOrEqual(t, s.Len(), 10_000)
}
