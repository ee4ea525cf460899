package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type localStorage struct {
	baseDir string
}

// NewLocal stores blobs under baseDir, one subdirectory per folder.
func NewLocal(baseDir string) (Storage, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &localStorage{baseDir: baseDir}, nil
}

// resolve keeps every path inside baseDir, rejecting traversal attempts.
func (l *localStorage) resolve(storedPath string) (string, error) {
	clean := filepath.Clean(storedPath)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid path %q", storedPath)
	}
	return filepath.Join(l.baseDir, clean), nil
}

func (l *localStorage) Save(ctx context.Context, folder, filename string, data []byte) (string, error) {
	storedPath := folder + "/" + filename
	full, err := l.resolve(storedPath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return storedPath, nil
}

func (l *localStorage) Open(ctx context.Context, storedPath string) (io.ReadCloser, error) {
	full, err := l.resolve(storedPath)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (l *localStorage) Remove(ctx context.Context, storedPath string) error {
	full, err := l.resolve(storedPath)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
