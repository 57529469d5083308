// Package storage stands in for the hosted object store the clinic portal
// delegates media uploads to. The feed core only ever records the URLs it
// hands back.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStore persists an uploaded media blob and returns its public URL
type ObjectStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// LocalObjectStore implements ObjectStore on the local filesystem, keyed
// by random UUIDs so uploads never collide
type LocalObjectStore struct {
	baseDir string
	baseURL string
}

// NewLocalObjectStore creates a LocalObjectStore rooted at baseDir
func NewLocalObjectStore(baseDir, baseURL string) (*LocalObjectStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media directory: %w", err)
	}
	return &LocalObjectStore{baseDir: baseDir, baseURL: baseURL}, nil
}

// Save writes the blob under a fresh UUID key, keeping the original
// extension, and returns the URL it will be served from
func (s *LocalObjectStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	key := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(s.baseDir, key)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating media file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing media file: %w", err)
	}
	return s.baseURL + "/" + key, nil
}
