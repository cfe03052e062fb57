package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct{ n int }

func TestPutWithTake(t *testing.T) {
	s := NewStore[*counter]("counters", time.Minute)
	id, err := s.Put(&counter{})
	require.NoError(t, err)
	assert.Len(t, id, 32)

	require.NoError(t, s.With(id, func(c *counter) error { c.n++; return nil }))
	boom := errors.New("boom")
	assert.ErrorIs(t, s.With(id, func(*counter) error { return boom }), boom)

	c, err := s.Take(id)
	require.NoError(t, err)
	assert.Equal(t, 1, c.n)

	assert.ErrorIs(t, s.With(id, func(*counter) error { return nil }), ErrNotFound)
	_, err = s.Take(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, s.Delete(id))
}

func TestExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewStore[*counter]("counters", time.Minute)
	s.now = func() time.Time { return now }

	idle, err := s.Put(&counter{})
	require.NoError(t, err)
	busy, err := s.Put(&counter{})
	require.NoError(t, err)

	now = now.Add(50 * time.Second)
	require.NoError(t, s.With(busy, func(*counter) error { return nil }))

	now = now.Add(20 * time.Second)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())
	assert.ErrorIs(t, s.With(idle, func(*counter) error { return nil }), ErrNotFound)
	assert.NoError(t, s.With(busy, func(*counter) error { return nil }))
}

func TestWithSerializesAccess(t *testing.T) {
	s := NewStore[*counter]("counters", 0)
	id, err := s.Put(&counter{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.With(id, func(c *counter) error { c.n++; return nil })
		}()
	}
	wg.Wait()
	c, err := s.Take(id)
	require.NoError(t, err)
	assert.Equal(t, 50, c.n)
}

func TestMemoryLedgerClaimsOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	l := NewMemoryLedger()
	l.now = func() time.Time { return now }

	ok, err := l.Claim(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Claim(ctx, "jti-1", time.Minute)
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = l.Claim(ctx, "jti-1", time.Minute)
	assert.True(t, ok)
}

func TestNewLedgerWithoutRedis(t *testing.T) {
	_, ok := NewLedger(nil, "handoff").(*MemoryLedger)
	assert.True(t, ok)
}

func TestTakeIfKeepsValueOnError(t *testing.T) {
	s := NewStore[*counter]("counters", time.Minute)
	id, err := s.Put(&counter{n: 3})
	require.NoError(t, err)

	empty := errors.New("empty")
	assert.ErrorIs(t, s.TakeIf(id, func(*counter) error { return empty }), empty)
	assert.Equal(t, 1, s.Len())

	var got int
	require.NoError(t, s.TakeIf(id, func(c *counter) error { got = c.n; return nil }))
	assert.Equal(t, 3, got)
	assert.Equal(t, 0, s.Len())
	assert.ErrorIs(t, s.TakeIf(id, func(*counter) error { return nil }), ErrNotFound)
}

func TestTakeIfSucceedsOnce(t *testing.T) {
	s := NewStore[*counter]("counters", time.Minute)
	for round := 0; round < 50; round++ {
		id, err := s.Put(&counter{})
		require.NoError(t, err)

		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			taken int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if s.TakeIf(id, func(*counter) error { return nil }) == nil {
					mu.Lock()
					taken++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		require.Equal(t, 1, taken)
	}
}
