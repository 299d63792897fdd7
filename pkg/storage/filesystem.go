package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

// FileSystem keeps media under a local root directory and serves it from a
// URL prefix such as "/media/".
type FileSystem struct {
	root    string
	baseURL string
}

func NewFileSystem(root, baseURL string) *FileSystem {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &FileSystem{root: root, baseURL: baseURL}
}

func (fs *FileSystem) Root() string {
	return fs.root
}

func (fs *FileSystem) Save(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fullPath, err := fs.path(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write media file: %w", err)
	}
	return f.Close()
}

// URL returns the public path of key, relative to the site root.
func (fs *FileSystem) URL(key string) (string, error) {
	if _, err := fs.path(key); err != nil {
		return "", err
	}
	return fs.baseURL + key, nil
}

func (fs *FileSystem) Delete(ctx context.Context, key string) error {
	fullPath, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete media file: %w", err)
	}
	return nil
}

func (fs *FileSystem) path(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || path.Clean(key) != key || strings.HasPrefix(key, "../") || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(fs.root, filepath.FromSlash(key)), nil
}
