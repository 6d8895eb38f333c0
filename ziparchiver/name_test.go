package ziparchiver_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/steplog/backup/ziparchiver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveName(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	name := ziparchiver.ArchiveName("steplog_backup_", ts)
	assert.Equal(t, "steplog_backup_20250101_000000.zip", name)
}

func TestArchiveName_OrderMatchesTime(t *testing.T) {
	earlier := ziparchiver.ArchiveName("steplog_backup_", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	later := ziparchiver.ArchiveName("steplog_backup_", time.Date(2025, 6, 15, 12, 0, 1, 0, time.UTC))
	assert.NotEqual(t, earlier, later)
	assert.Less(t, earlier, later)
}

func TestFindArchives(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"steplog_backup_20250615_120000.zip",
		"steplog_backup_20250101_000000.zip",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("zip"), 0600))
	}
	// Files outside the naming convention are invisible.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.db"), []byte("db"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	found, err := ziparchiver.FindArchives(dir, "steplog_backup_")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "steplog_backup_20250101_000000.zip"),
		filepath.Join(dir, "steplog_backup_20250615_120000.zip"),
	}, found)
}

func TestFindArchives_Empty(t *testing.T) {
	_, err := ziparchiver.FindArchives(t.TempDir(), "steplog_backup_")
	assert.ErrorIs(t, err, ziparchiver.ErrNoArchives)
}

func TestFindArchives_MissingDir(t *testing.T) {
	_, err := ziparchiver.FindArchives(filepath.Join(t.TempDir(), "missing"), "steplog_backup_")
	assert.ErrorIs(t, err, ziparchiver.ErrNoArchives)
}
