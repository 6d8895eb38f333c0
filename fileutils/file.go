package fileutils

import "os"

// Exists reports whether a file or directory is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyWritable returns nil if dirPath is a directory that accepts new
// files. It probes by creating and removing a temp file.
func VerifyWritable(dirPath string) error {
	fil, err := os.CreateTemp(dirPath, "")
	if err != nil {
		return err
	}
	err = fil.Close()
	if err != nil {
		return err
	}
	return os.Remove(fil.Name())
}
