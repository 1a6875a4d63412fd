package app

import (
	"os"
	"path/filepath"
	"testing"

	"example.com/gapedit/pkg/editor"
)

// openDoc writes content to a temp file and opens it as a document.
func openDoc(t *testing.T, content string) *editor.Document {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	d, err := editor.Open(path, 4, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return d
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
