package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// ErrNoData means none of the watched entries exist, so there is nothing
// to archive.
var ErrNoData = errors.New("no data to back up")

// Collect checks each watched entry under projectDir and returns those that
// exist, directories expanded recursively. Returns ErrNoData when the set
// is empty.
func Collect(ctx context.Context, projectDir string, logger zerolog.Logger) ([]File, error) {
	info, err := os.Stat(projectDir)
	if err != nil {
		return nil, fmt.Errorf("could not open project directory %s: %w", projectDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", projectDir)
	}

	logger = logger.With().Str("project", projectDir).Logger()
	logger.Info().Msg("collecting project entries")

	var files []File
	for _, rel := range []string{DatabaseFile, UploadsDir, EnvFile} {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		abs := filepath.Join(projectDir, filepath.FromSlash(rel))
		info, err := os.Stat(abs)
		if os.IsNotExist(err) {
			logger.Debug().Str("path", rel).Msg("entry not present, skipping")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not stat %s: %w", abs, err)
		}

		if info.IsDir() {
			files, err = appendTree(ctx, files, projectDir, abs)
			if err != nil {
				return nil, err
			}
			continue
		}
		if !info.Mode().IsRegular() {
			logger.Warn().Str("path", rel).Msg("not a regular file, skipping")
			continue
		}

		files = append(files, File{
			AbsPath: abs,
			RelPath: rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	if len(files) == 0 {
		return nil, ErrNoData
	}

	for _, f := range files {
		logger.Debug().Object("entry", f).Msg("collected entry")
	}
	logger.Info().Int("entries", len(files)).Msg("done collecting project entries")

	return files, nil
}

// appendTree walks the directory at root and appends every directory and
// regular file below it, root included.
func appendTree(ctx context.Context, files []File, projectDir string, root string) ([]File, error) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("could not scan %s: %w", path, err)
		}

		rel, err := filepath.Rel(projectDir, path)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("could not stat %s: %w", path, err)
		}

		if d.IsDir() {
			files = append(files, File{
				AbsPath: path,
				RelPath: filepath.ToSlash(rel),
				Dir:     true,
				ModTime: info.ModTime(),
			})
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, File{
			AbsPath: path,
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
