package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "comic.cbz")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUniqueFilepath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "comic.cbz")
	assert.Equal(t, path, UniqueFilepath(path))

	require.NoError(t, os.WriteFile(path, nil, 0600))
	assert.Equal(t, filepath.Join(dir, "comic (1).cbz"), UniqueFilepath(path))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "comic (1).cbz"), nil, 0600))
	assert.Equal(t, filepath.Join(dir, "comic (2).cbz"), UniqueFilepath(path))
}
