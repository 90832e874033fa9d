package testutils

import (
	"os"
	"path/filepath"
)

// FatalT is the subset of testing.T used by the file helpers
type FatalT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WriteFile writes data to name inside dir and returns the absolute path
func WriteFile(t FatalT, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", path, err)
	}
	return abs
}

// Image signatures used as file content in tests
var (
	JPEGHeader = []byte{0xFF, 0xD8, 0xFF}
	PNGHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)
