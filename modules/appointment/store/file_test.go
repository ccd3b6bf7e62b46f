package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileAccessorMissingFile(t *testing.T) {
	f := NewFileAccessor(filepath.Join(t.TempDir(), "missing.json"))
	assert.Empty(t, f.List())
}

func TestFileAccessorCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedules.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f := NewFileAccessor(path)
	assert.Empty(t, f.List(), "corrupt file reads as an empty collection")
}

func TestFileAccessorAppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schedules.json")
	f := NewFileAccessor(path)

	require.NoError(t, f.Append(RawRecord{"id": "a", "description": "first"}))
	require.NoError(t, f.Append(RawRecord{"id": "b", "description": "second"}))

	records := f.List()
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0]["id"])
	assert.Equal(t, "b", records[1]["id"])

	_, err := os.Stat(path)
	assert.NoError(t, err, "append creates the data directory and file")
}

func TestFileAccessorReplaceAll(t *testing.T) {
	f := NewFileAccessor(filepath.Join(t.TempDir(), "api.json"))
	require.NoError(t, f.Append(RawRecord{"id": "a"}))
	require.NoError(t, f.Append(RawRecord{"id": "b"}))

	require.NoError(t, f.ReplaceAll([]RawRecord{{"id": "b"}}))

	records := f.List()
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0]["id"])
}

func TestFileAccessorReplaceAllEmpty(t *testing.T) {
	f := NewFileAccessor(filepath.Join(t.TempDir(), "calendar.json"))
	require.NoError(t, f.Append(RawRecord{"id": "a"}))
	require.NoError(t, f.ReplaceAll([]RawRecord{}))
	assert.Empty(t, f.List())
}
