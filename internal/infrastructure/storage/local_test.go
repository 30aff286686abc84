package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

func TestLocalStorage_SaveAndPath(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	name, err := store.Save(".PNG", strings.NewReader("image bytes"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Fatalf("name = %q, want a lowercase .png extension", name)
	}

	path, err := store.Path(name)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "image bytes" {
		t.Fatalf("content = %q", data)
	}
}

func TestLocalStorage_PathUnknownName(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	if _, err := store.Path("missing.jpg"); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("err = %v, want file not found", err)
	}
}

func TestLocalStorage_PathRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	// Plant a file outside the upload dir that a traversal would reach.
	outside := filepath.Join(dir, "..", "secret.txt")
	if err := os.WriteFile(outside, []byte("nope"), 0o600); err != nil {
		t.Fatalf("plant file: %v", err)
	}

	for _, name := range []string{"../secret.txt", "a/b.jpg", ""} {
		if _, err := store.Path(name); !errors.Is(err, domain.ErrFileNotFound) {
			t.Fatalf("Path(%q) err = %v, want file not found", name, err)
		}
	}
}
