package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faceoffgame/faceoff/internal/storage"
)

func TestSetGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, "k", "v1"))
	value, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	require.NoError(t, s.Set(ctx, "k", "v2"))
	value, _ = s.Get(ctx, "k")
	assert.Equal(t, "v2", value)

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
}
