package catalog_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/steplog/backup/catalog"
	"github.com/steplog/backup/ziparchiver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	cli, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, cli.AutoMigrate(&catalog.Archive{}, &catalog.ArchiveFile{}))

	return &catalog.Catalog{
		Cli:    cli,
		Logger: zerolog.New(io.Discard),
	}
}

func TestRecordAndArchives(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	files := []ziparchiver.StoredFile{
		{RelPath: "data/steplog.db", Size: 11, Hash: 42, ModTime: time.Now()},
		{RelPath: ".env", Size: 8, Hash: 7, ModTime: time.Now()},
	}

	err := c.Record(ctx, "/mnt/backup/steplog_backup_20250101_000000.zip", "/srv/steplog", files)
	require.NoError(t, err)

	err = c.Record(ctx, "/mnt/backup/steplog_backup_20250615_120000.zip", "/srv/steplog", files[:1])
	require.NoError(t, err)

	archives, err := c.Archives(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 2)

	// Oldest first.
	assert.Equal(t, "/mnt/backup/steplog_backup_20250101_000000.zip", archives[0].Path)
	assert.Equal(t, int64(19), archives[0].Size)
	assert.Equal(t, 2, archives[0].FileCount)
	assert.Equal(t, "/srv/steplog", archives[0].ProjectDir)

	assert.Equal(t, 1, archives[1].FileCount)
}

func TestRecord_EmptyFileList(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	err := c.Record(ctx, "/mnt/backup/steplog_backup_20250101_000000.zip", "/srv/steplog", nil)
	require.NoError(t, err)

	archives, err := c.Archives(ctx)
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, 0, archives[0].FileCount)
}

func TestRecord_DryRun(t *testing.T) {
	c := newTestCatalog(t)
	c.DryRun = true
	ctx := context.Background()

	err := c.Record(ctx, "/mnt/backup/steplog_backup_20250101_000000.zip", "/srv/steplog", nil)
	require.NoError(t, err)

	archives, err := c.Archives(ctx)
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestFiles(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	archivePath := "/mnt/backup/steplog_backup_20250101_000000.zip"
	err := c.Record(ctx, archivePath, "/srv/steplog", []ziparchiver.StoredFile{
		{RelPath: "uploads/b.jpg", Size: 2},
		{RelPath: "uploads/a.jpg", Size: 1},
	})
	require.NoError(t, err)

	files, err := c.Files(ctx, archivePath)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "uploads/a.jpg", files[0].Path)
	assert.Equal(t, "uploads/b.jpg", files[1].Path)
}
