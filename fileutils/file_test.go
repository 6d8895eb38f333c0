package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/steplog/backup/fileutils"
)

func TestExists(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "present.txt")
	if err := os.WriteFile(tmpFile, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing file",
			path:     tmpFile,
			expected: true,
		},
		{
			name:     "non-existent file",
			path:     "non-existent-file.txt",
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := fileutils.Exists(tc.path)
			if result != tc.expected {
				t.Errorf("Expected Exists(%q) = %v, got %v", tc.path, tc.expected, result)
			}
		})
	}
}

func TestVerifyWritable(t *testing.T) {
	if err := fileutils.VerifyWritable(t.TempDir()); err != nil {
		t.Errorf("expected temp dir to be writable: %v", err)
	}

	if err := fileutils.VerifyWritable(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error probing missing directory")
	}
}
