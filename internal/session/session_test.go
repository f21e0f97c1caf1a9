package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := s.Create(ctx, "u3")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	sess, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "u3", sess.UserID)
	assert.Greater(t, sess.ExpiresAt, sess.IssuedAt)

	require.NoError(t, s.Delete(ctx, id))

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreUnknownID(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	_, err := s.Get(context.Background(), "not-a-session")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	ctx := context.Background()

	id, err := s.Create(ctx, "u2")
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx := context.Background()

	a, err := s.Create(ctx, "u2")
	require.NoError(t, err)
	b, err := s.Create(ctx, "u2")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
