package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/folio/storage"
)

func TestPutGetRoundTrip(t *testing.T) {
	r := NewRepository()

	require.NoError(t, r.Put("projects", "p1", []byte(`{"title":"Folio"}`)))

	doc, err := r.Get("projects", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Folio"}`, string(doc))
}

func TestGetMissing(t *testing.T) {
	r := NewRepository()

	_, err := r.Get("projects", "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutReplaces(t *testing.T) {
	r := NewRepository()

	require.NoError(t, r.Put("projects", "p1", []byte(`{"v":1}`)))
	require.NoError(t, r.Put("projects", "p1", []byte(`{"v":2}`)))

	doc, err := r.Get("projects", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(doc))
}

func TestListEmptyCollection(t *testing.T) {
	r := NewRepository()

	docs, err := r.List("nothing")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestListReturnsAll(t *testing.T) {
	r := NewRepository()

	require.NoError(t, r.Put("projects", "p1", []byte(`{}`)))
	require.NoError(t, r.Put("projects", "p2", []byte(`{}`)))
	require.NoError(t, r.Put("reviews", "r1", []byte(`{}`)))

	docs, err := r.List("projects")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Contains(t, docs, "p1")
	assert.Contains(t, docs, "p2")
}

func TestDelete(t *testing.T) {
	r := NewRepository()

	require.NoError(t, r.Put("projects", "p1", []byte(`{}`)))
	require.NoError(t, r.Delete("projects", "p1"))

	_, err := r.Get("projects", "p1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, r.Delete("projects", "p1"), storage.ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	r := NewRepository()

	require.NoError(t, r.Put("projects", "p1", []byte(`{"v":1}`)))

	doc, err := r.Get("projects", "p1")
	require.NoError(t, err)
	doc[0] = 'X'

	again, err := r.Get("projects", "p1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(again), "mutating a returned doc must not affect the store")
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = r.Put("projects", "p", []byte(`{}`))
		}()
		go func() {
			defer wg.Done()
			_, _ = r.List("projects")
		}()
	}
	wg.Wait()
}
