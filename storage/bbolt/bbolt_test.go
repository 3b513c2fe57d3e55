package bbolt

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/folio/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewRepositoryFromFile(filepath.Join(t.TempDir(), "folio.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBBoltStorage(t *testing.T) {
	s := newTestStore(t)

	t.Run("PutGet", func(t *testing.T) {
		require.NoError(t, s.Put("projects", "p1", []byte(`{"title":"Folio"}`)))
		doc, err := s.Get("projects", "p1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Folio"}`, string(doc))
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := s.Get("projects", "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("GetMissingCollection", func(t *testing.T) {
		_, err := s.Get("nope", "p1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, s.Put("projects", "p2", []byte(`{}`)))
		docs, err := s.List("projects")
		require.NoError(t, err)
		assert.Len(t, docs, 2)
	})

	t.Run("ListMissingCollection", func(t *testing.T) {
		docs, err := s.List("nope")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, s.Delete("projects", "p2"))
		_, err := s.Get("projects", "p2")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.Delete("projects", "p2"), storage.ErrNotFound)
	})
}

func TestBBoltPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.db")

	s, err := NewRepositoryFromFile(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("projects", "p1", []byte(`{"v":1}`)))
	require.NoError(t, s.Close())

	s, err = NewRepositoryFromFile(path, nil)
	require.NoError(t, err)
	defer s.Close()

	doc, err := s.Get("projects", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(doc))
}
