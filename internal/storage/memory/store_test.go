package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skrylnikov/arcana/internal/storage"
	"github.com/skrylnikov/arcana/pkg/types"
)

func TestGetMissing(t *testing.T) {
	s := NewStore(0)
	_, err := s.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutGetRoundTrip(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()

	session := types.NewSession("user-1")
	session.Locale = types.LocaleRU
	session.State = types.StateAwaitingCards
	session.PendingCards = []int{0, 16}
	require.NoError(t, s.Put(ctx, session))

	got, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, types.LocaleRU, got.Locale)
	assert.Equal(t, types.StateAwaitingCards, got.State)
	assert.Equal(t, []int{0, 16}, got.PendingCards)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()

	session := types.NewSession("user-1")
	require.NoError(t, s.Put(ctx, session))

	got, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	got.State = types.StateProcessing

	again, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, types.StateIdle, again.State, "mutating a returned session must not affect the store")
}

func TestLazyExpiry(t *testing.T) {
	s := NewStore(50 * time.Millisecond)
	ctx := context.Background()

	session := types.NewSession("user-1")
	require.NoError(t, s.Put(ctx, session))

	_, err := s.Get(ctx, "user-1")
	require.NoError(t, err)

	time.Sleep(80 * time.Millisecond)
	_, err = s.Get(ctx, "user-1")
	assert.ErrorIs(t, err, storage.ErrNotFound, "expired session must be treated as absent")
}

func TestDeleteIdempotent(t *testing.T) {
	s := NewStore(0)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, types.NewSession("user-1")))
	require.NoError(t, s.Delete(ctx, "user-1"))
	require.NoError(t, s.Delete(ctx, "user-1"))

	_, err := s.Get(ctx, "user-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
