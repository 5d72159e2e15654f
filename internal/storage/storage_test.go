package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGetRemove(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	type payload struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}

	var got payload
	ok, err := s.Get("missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("k", payload{Name: "tv", N: 2}))
	ok, err = s.Get("k", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "tv", N: 2}, got)

	require.NoError(t, s.Remove("k"))
	ok, err = s.Get("k", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	// removing twice is not an error
	require.NoError(t, s.Remove("k"))
}

func TestStore_CorruptValue(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o600))

	var v map[string]any
	ok, err := s.Get("bad", &v)
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestStore_KeyIsNotAPath(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("../escape", 1))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".._escape.json", entries[0].Name())
}

func TestNew_EmptyDir(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}
