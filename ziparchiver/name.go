package ziparchiver

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"
)

// TimestampLayout is the fixed-width archive timestamp. Lexicographic order
// of archive names equals creation order, to second granularity.
const TimestampLayout = "20060102_150405"

// Ext is the archive file extension.
const Ext = ".zip"

// ErrNoArchives means the backup directory holds no matching archives.
var ErrNoArchives = errors.New("no backup archives available")

// ArchiveName returns the archive filename for a backup taken at t.
func ArchiveName(prefix string, t time.Time) string {
	return prefix + t.Format(TimestampLayout) + Ext
}

// FindArchives returns the full paths of the archives under dir carrying
// prefix, sorted ascending, oldest first. Returns ErrNoArchives when none
// match (a missing directory counts as none).
func FindArchives(dir string, prefix string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"+Ext))
	if err != nil {
		return nil, fmt.Errorf("could not list archives in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoArchives, dir)
	}

	slices.Sort(matches)
	return matches, nil
}
