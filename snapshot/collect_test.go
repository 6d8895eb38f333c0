package snapshot_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, projectDir, rel, content string) {
	t.Helper()
	path := filepath.Join(projectDir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func relPaths(files []snapshot.File) []string {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.RelPath)
	}
	return paths
}

func TestCollect_AllEntries(t *testing.T) {
	projectDir := t.TempDir()
	writeProjectFile(t, projectDir, "data/steplog.db", "db contents")
	writeProjectFile(t, projectDir, "uploads/2025/photo.jpg", "jpeg bytes")
	writeProjectFile(t, projectDir, ".env", "SECRET=1")

	files, err := snapshot.Collect(context.Background(), projectDir, zerolog.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"data/steplog.db",
		"uploads",
		"uploads/2025",
		"uploads/2025/photo.jpg",
		".env",
	}, relPaths(files))
}

func TestCollect_Subsets(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    []string
	}{
		{
			name:    "db only",
			present: []string{"data/steplog.db"},
			want:    []string{"data/steplog.db"},
		},
		{
			name:    "env only",
			present: []string{".env"},
			want:    []string{".env"},
		},
		{
			name:    "uploads only",
			present: []string{"uploads/a.txt"},
			want:    []string{"uploads", "uploads/a.txt"},
		},
		{
			name:    "db and env",
			present: []string{"data/steplog.db", ".env"},
			want:    []string{"data/steplog.db", ".env"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			projectDir := t.TempDir()
			for _, rel := range tc.present {
				writeProjectFile(t, projectDir, rel, "x")
			}

			files, err := snapshot.Collect(context.Background(), projectDir, zerolog.New(io.Discard))
			require.NoError(t, err)
			assert.Equal(t, tc.want, relPaths(files))
		})
	}
}

func TestCollect_EmptyUploadsDir(t *testing.T) {
	projectDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(projectDir, "uploads"), 0755))

	files, err := snapshot.Collect(context.Background(), projectDir, zerolog.New(io.Discard))
	require.NoError(t, err)

	// The bare directory entry keeps an empty uploads dir restorable.
	assert.Equal(t, []string{"uploads"}, relPaths(files))
	assert.True(t, files[0].Dir)
}

func TestCollect_NothingPresent(t *testing.T) {
	files, err := snapshot.Collect(context.Background(), t.TempDir(), zerolog.New(io.Discard))
	assert.ErrorIs(t, err, snapshot.ErrNoData)
	assert.Empty(t, files)
}

func TestCollect_MissingProjectDir(t *testing.T) {
	_, err := snapshot.Collect(
		context.Background(),
		filepath.Join(t.TempDir(), "missing"),
		zerolog.New(io.Discard),
	)
	require.Error(t, err)
	assert.NotErrorIs(t, err, snapshot.ErrNoData)
}

func TestCollect_StrayFilesIgnored(t *testing.T) {
	projectDir := t.TempDir()
	writeProjectFile(t, projectDir, ".env", "SECRET=1")
	writeProjectFile(t, projectDir, "app.log", "not watched")
	writeProjectFile(t, projectDir, "static/style.css", "not watched")

	files, err := snapshot.Collect(context.Background(), projectDir, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, []string{".env"}, relPaths(files))
}
