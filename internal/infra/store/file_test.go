package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("queue", `{"id":"abc","platform":"youtube"}`))

	v, ok, err := s.Get("queue")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"abc","platform":"youtube"}`, v)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("key", "value"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)

	v, ok, err := reopened.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Delete("never-set"))

	require.NoError(t, s.Set("key", "value"))
	require.NoError(t, s.Delete("key"))

	_, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_CorruptDocumentStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get("anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok, err := s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("key", "value"))
	v, ok, err := s.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value", v)

	require.NoError(t, s.Delete("key"))
	_, ok, err = s.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}
