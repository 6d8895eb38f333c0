// Package snapshot builds the set of project entries a backup run includes:
// the steplog database file, the uploads tree and the environment file.
// Each watched entry is part of the set only while it exists on disk.
package snapshot

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Watched project entries, relative to the project directory, in the order
// they are archived.
const (
	DatabaseFile = "data/steplog.db"
	UploadsDir   = "uploads"
	EnvFile      = ".env"
)

// File is one filesystem entry included in a backup. RelPath is
// slash-separated and relative to the project directory; it becomes the
// archive entry name. Directory entries have no content and exist so that
// empty directories survive a round trip.
type File struct {
	AbsPath string
	RelPath string
	Dir     bool
	Size    int64
	ModTime time.Time
}

// Open returns a reader over the file contents. Must not be called on
// directory entries.
func (f File) Open() (io.ReadCloser, error) {
	return os.Open(f.AbsPath)
}

func (f File) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", f.RelPath)
	if f.Dir {
		e.Bool("dir", true)
	} else {
		e.Int64("size", f.Size)
	}
}
