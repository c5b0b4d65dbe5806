// Package blob stores uploaded files on disk under a base directory and
// hands back a stable reference path ("/uploads/<kind>/<name>") that the
// static file route serves.
package blob

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func NewStore(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, errors.New("blob base dir is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, err
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the reader under baseDir/kind with a generated name and
// returns the reference path the /uploads static route serves.
func (s *Store) Save(kind, originalName string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := filepath.Ext(filepath.Base(originalName))
	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "/uploads/" + kind + "/" + name, nil
}
