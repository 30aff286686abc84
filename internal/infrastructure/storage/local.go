// Package storage provides a local-disk implementation of the file
// storage port used for product image uploads.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tesloshop/catalog-api/internal/core/domain"
)

// LocalStorage writes uploaded files under a single directory with
// generated names, so client-supplied names never touch the filesystem.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Save(ext string, content io.Reader) (string, error) {
	name := uuid.NewString() + "." + strings.TrimPrefix(strings.ToLower(ext), ".")
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Path resolves a stored name to its filesystem path. Names containing
// separators are rejected before touching the disk.
func (s *LocalStorage) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", domain.ErrFileNotFound
	}
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", domain.ErrFileNotFound
		}
		return "", fmt.Errorf("stat file: %w", err)
	}
	return path, nil
}
