package modelstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutOpenRoundTrip", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		data := []byte("bundle bytes")
		require.NoError(t, store.Put(ctx, "wake-word-v7.zip", data))

		rc, err := store.Open(ctx, "wake-word-v7.zip")
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, data, got)
	})

	t.Run("OpenMissing", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		_, err = store.Open(ctx, "missing.zip")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "b.zip", []byte("old")))
		require.NoError(t, store.Put(ctx, "b.zip", []byte("new")))

		rc, err := store.Open(ctx, "b.zip")
		require.NoError(t, err)
		got, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "new", string(got))
	})

	t.Run("NestedNames", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "acme/wake-word-v7.zip", []byte("x")))

		names, err := store.List(ctx, "acme/")
		require.NoError(t, err)
		assert.Equal(t, []string{"acme/wake-word-v7.zip"}, names)
	})

	t.Run("InvalidNames", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		for _, name := range []string{"../escape.zip", "/abs.zip", ".."} {
			require.Error(t, store.Put(ctx, name, []byte("x")), "name %q", name)
		}
	})

	t.Run("DeleteIdempotent", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "b.zip", []byte("x")))
		require.NoError(t, store.Delete(ctx, "b.zip"))
		require.NoError(t, store.Delete(ctx, "b.zip"))

		_, err = store.Open(ctx, "b.zip")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ListSortedWithPrefix", func(t *testing.T) {
		store, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Put(ctx, "b.zip", []byte("1")))
		require.NoError(t, store.Put(ctx, "a.zip", []byte("2")))
		require.NoError(t, store.Put(ctx, "other.bin", []byte("3")))

		names, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.zip", "b.zip", "other.bin"}, names)

		names, err = store.List(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.zip"}, names)
	})
}
