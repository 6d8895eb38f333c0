package zipwriter

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/steplog/backup/fileutils"
)

// NewAtomicZipFile returns a zip writer helper that opens a temporary file
// next to path upon first write, and renames it to path only when Close
// succeeds. A failed or discarded archive never occupies the final name.
func NewAtomicZipFile(path string) *ZipFile {
	tmpPath := path + ".partial"
	return &ZipFile{
		path: path,
		openFunc: func() (*os.File, error) {
			return openArchiveFile(path, tmpPath)
		},
		commitFunc: func() error {
			return os.Rename(tmpPath, path)
		},
		discardFunc: func() error {
			return os.Remove(tmpPath)
		},
	}
}

// NewNullZipFile returns a zip writer helper backed by the null device,
// for dry runs.
func NewNullZipFile() *ZipFile {
	return &ZipFile{
		path:        os.DevNull,
		openFunc:    openNullFile,
		commitFunc:  func() error { return nil },
		discardFunc: func() error { return nil },
	}
}

type ZipFile struct {
	init        bool
	path        string
	file        *os.File
	writer      *zip.Writer
	openFunc    func() (*os.File, error)
	commitFunc  func() error
	discardFunc func() error
}

// Path returns the final archive path.
func (z *ZipFile) Path() string {
	return z.path
}

// CreateHeader adds a new entry to the archive, opening the backing file
// on the first call.
func (z *ZipFile) CreateHeader(fh *zip.FileHeader) (io.Writer, error) {
	if !z.init {
		var err error
		z.file, err = z.openFunc()
		if err != nil {
			return nil, err
		}
		z.writer = zip.NewWriter(z.file)
		z.init = true
	}

	return z.writer.CreateHeader(fh)
}

// Close finishes the archive and moves it to its final path. If finishing
// fails the temporary file is removed and the final path stays absent.
// Closing a never-written archive is a no-op.
func (z *ZipFile) Close() error {
	if !z.init {
		return nil
	}
	z.init = false

	err := z.writer.Close()
	err = errors.Join(err, z.file.Close())
	if err != nil {
		return errors.Join(err, z.discardFunc())
	}
	return z.commitFunc()
}

// Discard abandons the archive, removing the temporary file if one was
// opened. The final path is never touched.
func (z *ZipFile) Discard() error {
	if !z.init {
		return nil
	}
	z.init = false

	err := z.writer.Close()
	err = errors.Join(err, z.file.Close())
	return errors.Join(err, z.discardFunc())
}

func openNullFile() (*os.File, error) {
	return os.OpenFile(os.DevNull, os.O_WRONLY, 0600)
}

func openArchiveFile(finalPath string, tmpPath string) (*os.File, error) {
	if fileutils.Exists(finalPath) {
		return nil, fmt.Errorf("file or directory already exists with this name: %s", finalPath)
	}

	return os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
}
