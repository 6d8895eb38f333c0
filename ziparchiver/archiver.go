package ziparchiver

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/steplog/backup/fileutils"
	"github.com/steplog/backup/snapshot"
	"github.com/steplog/backup/ziparchiver/zipwriter"
)

// StoredFile describes one regular file written into an archive, for
// catalog bookkeeping. Directory entries are not reported.
type StoredFile struct {
	RelPath string
	Size    int64
	Hash    uint64
	ModTime time.Time
}

// Store writes the given project entries into a single archive at
// archivePath. Entry names are the project-relative paths, so extracting at
// the project root reproduces the original layout. The write is atomic:
// any failure removes the temporary file and leaves archivePath absent.
func Store(
	ctx context.Context,
	archivePath string,
	files []snapshot.File,
	logger zerolog.Logger,
	opts ...StoreOption,
) ([]StoredFile, error) {
	o := storeOptions{}
	for _, applyOpts := range opts {
		applyOpts(&o)
	}

	logger = logger.With().Str("archive", archivePath).Logger()
	logger.Info().Int("entries", len(files)).Msg("writing archive")

	var zipFile *zipwriter.ZipFile
	if o.dryRun {
		zipFile = zipwriter.NewNullZipFile()
	} else {
		zipFile = zipwriter.NewAtomicZipFile(archivePath)
	}

	var written int64
	stored := make([]StoredFile, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(err, zipFile.Discard())
		}

		if f.Dir {
			_, err := zipFile.CreateHeader(&zip.FileHeader{
				Name:     f.RelPath + "/",
				Modified: f.ModTime,
			})
			if err != nil {
				err = fmt.Errorf("could not archive directory %s: %w", f.RelPath, err)
				return nil, errors.Join(err, zipFile.Discard())
			}
			logger.Debug().Object("entry", f).Msg("archived entry")
			continue
		}

		w, err := zipFile.CreateHeader(&zip.FileHeader{
			Name:               f.RelPath,
			Method:             zip.Deflate,
			Modified:           f.ModTime,
			UncompressedSize64: uint64(f.Size),
		})
		if err != nil {
			err = fmt.Errorf("could not archive %s: %w", f.RelPath, err)
			return nil, errors.Join(err, zipFile.Discard())
		}

		hash, err := writeEntry(f, w)
		if err != nil {
			err = fmt.Errorf("could not archive %s: %w", f.RelPath, err)
			return nil, errors.Join(err, zipFile.Discard())
		}

		written += f.Size
		stored = append(stored, StoredFile{
			RelPath: f.RelPath,
			Size:    f.Size,
			Hash:    hash,
			ModTime: f.ModTime,
		})
		logger.Debug().Object("entry", f).Msg("archived entry")
	}

	if err := zipFile.Close(); err != nil {
		return nil, fmt.Errorf("could not finish archive: %w", err)
	}

	logger.Info().
		Int64("files_size", written).
		Int("files_count", len(stored)).
		Msg("successfully written archive")

	return stored, nil
}

// writeEntry copies the file contents into the zip entry while computing
// the content hash in the same pass.
func writeEntry(f snapshot.File, w io.Writer) (hash uint64, err error) {
	reader, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, reader.Close())
	}()

	tee := io.TeeReader(reader, w)
	return fileutils.HashReader(tee)
}
