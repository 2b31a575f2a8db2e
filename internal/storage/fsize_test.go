package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestFolderSize_NestedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 100)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 250)
	writeFile(t, filepath.Join(root, "sub", "deep", "c.bin"), 1)
	writeFile(t, filepath.Join(root, "sub", "deep", "d.bin"), 0)

	size, err := FolderSize(root)
	assert.NoError(t, err)
	assert.Equal(t, int64(351), size)
}

func TestFolderSize_EmptyDir(t *testing.T) {
	size, err := FolderSize(t.TempDir())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestFolderSize_MissingDir(t *testing.T) {
	_, err := FolderSize(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFolderSize_DirEntriesNotCounted(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "only", "dirs", "here"), 0o755))

	size, err := FolderSize(root)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), size)
}
