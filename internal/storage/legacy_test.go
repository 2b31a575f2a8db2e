package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub/internal/domain"
)

func TestResolveAttachments_ExplicitRecordsWin(t *testing.T) {
	folder := t.TempDir()
	// Even with files on disk, explicit records short-circuit the scan.
	require.NoError(t, os.WriteFile(filepath.Join(folder, "stray.jpg"), []byte{1}, 0o644))

	explicit := []domain.Attachment{{ID: "id-1", Filename: "a.jpg"}}
	records, migrated, err := ResolveAttachments(explicit, folder, func(string) string { return "" })
	assert.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, explicit, records)
}

func TestResolveAttachments_ScansLegacyFolder(t *testing.T) {
	folder := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(folder, "old1.jpg"), []byte{1}, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(folder, "old2.png"), []byte{2}, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(folder, "subdir"), 0o755))

	records, migrated, err := ResolveAttachments(nil, folder, func(name string) string {
		return "/files/" + name
	})
	assert.NoError(t, err)
	assert.True(t, migrated)
	require.Len(t, records, 2)

	for _, r := range records {
		assert.True(t, domain.ValidIdx(r.ID))
		assert.Equal(t, "/files/"+r.Filename, r.URL)
		assert.Equal(t, filepath.Join(folder, r.Filename), r.Original)
	}
}

func TestResolveAttachments_MissingFolder(t *testing.T) {
	records, migrated, err := ResolveAttachments(nil, filepath.Join(t.TempDir(), "nope"), func(string) string { return "" })
	assert.NoError(t, err)
	assert.False(t, migrated)
	assert.Empty(t, records)
}

func TestResolveAttachments_EmptyFolderNotMigrated(t *testing.T) {
	records, migrated, err := ResolveAttachments(nil, t.TempDir(), func(string) string { return "" })
	assert.NoError(t, err)
	assert.False(t, migrated)
	assert.Empty(t, records)
}
