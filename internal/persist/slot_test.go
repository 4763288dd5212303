package persist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte("hello")
	require.NoError(t, s.Set(ctx, "b", blob))
	require.NoError(t, s.Set(ctx, "a", []byte("x")))
	blob[0] = 'j'

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	got[0] = 'y'
	again, _ := s.Get(ctx, "b")
	assert.Equal(t, []byte("hello"), again)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	assert.Contains(t, files, "00001_save_slots.sql")
}
