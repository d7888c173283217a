// Package testgen generates comic archives, PDFs and page images with
// configurable metadata for tests.
package testgen

import (
	"os"
	"path/filepath"
	"testing"
)

// CBZOptions configures the generated CBZ file.
type CBZOptions struct {
	Title     string
	Series    string
	Number    string
	Writer    string
	PageCount int    // defaults to 3
	PageWidth int    // defaults to 100
	Format    string // page image format, defaults to "png"
	// MetadataName overrides the name of the metadata entry. Ignored when
	// NoComicInfo is set.
	MetadataName string
	NoComicInfo  bool
	// PageTypes are written as Type attributes, by page index.
	PageTypes map[int]string
	// PageNames overrides the generated page-NNN names, by page index.
	PageNames map[int]string
	// ExtraFiles are written after the pages, verbatim.
	ExtraFiles map[string][]byte
}

// PDFOptions configures the generated PDF file.
type PDFOptions struct {
	// Pages lists how many images each page draws. A page with zero images
	// is still written.
	Pages  []int
	Width  int // defaults to 16
	Height int // defaults to 24
	// DrawReversed makes each page's content stream paint its images in
	// the reverse of the order their objects were written.
	DrawReversed bool
}

// TempDir creates a temporary directory for testing and registers cleanup.
// The directory is automatically removed when the test completes.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// WriteFile creates a file with the given content in the specified directory.
// Returns the full path to the created file.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads and returns the contents of a file.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return data
}
