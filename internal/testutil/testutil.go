package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/abrezinsky/luckydraw/internal/repository"
)

// NewTestRepository creates a fresh in-memory repository for testing.
func NewTestRepository(t *testing.T) *repository.Repository {
	t.Helper()

	repo, err := repository.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

// Dirs is a temporary source/winners layout.
type Dirs struct {
	Source  string
	Winners string
}

// NewDirs creates a source directory holding images and an empty winners
// root path under t.TempDir().
func NewDirs(t *testing.T, images ...string) Dirs {
	t.Helper()

	base := t.TempDir()
	d := Dirs{
		Source:  filepath.Join(base, "photos"),
		Winners: filepath.Join(base, "winners"),
	}
	if err := os.MkdirAll(d.Source, 0o755); err != nil {
		t.Fatalf("mkdir source: %v", err)
	}
	for _, name := range images {
		if err := os.WriteFile(filepath.Join(d.Source, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return d
}
