package interpret

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerPassesThroughSuccess(t *testing.T) {
	b := newBreaker("test")
	got, err := b.execute(context.Background(), func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, "closed", b.state())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := newBreaker("test")
	boom := errors.New("upstream down")

	for i := 0; i < 3; i++ {
		_, err := b.execute(context.Background(), func() (string, error) {
			return "", boom
		})
		require.ErrorIs(t, err, boom)
	}

	_, err := b.execute(context.Background(), func() (string, error) {
		t.Fatal("must not be called while open")
		return "", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, "open", b.state())
}

func TestBreakerHonorsCancelledContext(t *testing.T) {
	b := newBreaker("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.execute(ctx, func() (string, error) {
		return "unreachable", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
