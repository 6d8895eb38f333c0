package ziparchiver

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Extract overlays the full contents of the archive onto destDir. Files at
// colliding relative paths are overwritten; everything else under destDir
// is left alone, so files absent from the archive survive. Returns the
// number of regular files written. The first failure aborts the rest;
// already-extracted files stay on disk.
func Extract(ctx context.Context, archivePath string, destDir string, logger zerolog.Logger) (int, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, fmt.Errorf("could not open archive %s: %w", archivePath, err)
	}
	defer reader.Close()

	logger = logger.With().Str("archive", archivePath).Str("dest", destDir).Logger()
	logger.Info().Int("entries", len(reader.File)).Msg("extracting archive")

	restored := 0
	for _, f := range reader.File {
		if err := ctx.Err(); err != nil {
			logger.Info().Int("restored", restored).Msg("cancelled extracting archive")
			return restored, err
		}

		if err := extractEntry(f, destDir); err != nil {
			return restored, fmt.Errorf("could not extract %s: %w", f.Name, err)
		}

		if !f.FileInfo().IsDir() {
			restored++
		}
		logger.Debug().Str("path", f.Name).Msg("extracted entry")
	}

	logger.Info().Int("restored", restored).Msg("done extracting archive")
	return restored, nil
}

func extractEntry(f *zip.File, destDir string) (err error) {
	name := strings.TrimSuffix(f.Name, "/")
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return fmt.Errorf("entry path escapes destination: %s", f.Name)
	}
	target := filepath.Join(destDir, filepath.FromSlash(name))

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	reader, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, reader.Close())
	}()

	w, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, w.Close())
	}()

	_, err = io.Copy(w, reader)
	return err
}
