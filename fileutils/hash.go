package fileutils

import (
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash"
)

// HashReader returns the xxhash of everything read from r. It does not
// close the reader.
func HashReader(r io.Reader) (uint64, error) {
	hash := xxhash.New()
	_, err := io.Copy(hash, r)
	if err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// HashFile returns the xxhash of the file contents at path.
func HashFile(path string) (hash uint64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	return HashReader(file)
}
