package testhelpers

import (
	"os"
	"testing"

	"github.com/feria/feria-cli/pkg/files"
)

// WithTestProject runs the test inside a fresh temporary project directory.
// The working directory is restored when the test finishes.
func WithTestProject(t *testing.T) {
	t.Helper()

	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to enter temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(original); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})

	if err := files.InitProjectStructure(); err != nil {
		t.Fatalf("failed to initialize project structure: %v", err)
	}
}
