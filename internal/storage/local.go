package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem. Files land under
// basePath and are served by the static file route at baseURL.
type LocalStorage struct {
	basePath string // root directory for stored files (e.g. "./web/static/uploads")
	baseURL  string // URL prefix for serving files (e.g. "/uploads")
}

// NewLocalStorage creates a local filesystem storage rooted at basePath,
// creating the directory if needed.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, &StorageError{
			Code:    codeInternal,
			Message: fmt.Sprintf("failed to create storage directory: %v", err),
		}
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// resolve maps a key to a path under basePath, rejecting keys that would
// escape the storage root.
func (s *LocalStorage) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}

// Put stores a file and returns its public URL.
func (s *LocalStorage) Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", &StorageError{
			Code:    codeInternal,
			Message: fmt.Sprintf("failed to create directory: %v", err),
		}
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", &StorageError{
			Code:    codeInternal,
			Message: fmt.Sprintf("failed to create file: %v", err),
		}
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", &StorageError{
			Code:    codeInternal,
			Message: fmt.Sprintf("failed to write file: %v", err),
		}
	}

	return s.URL(key), nil
}

// Get retrieves a stored file. The caller closes the reader.
func (s *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound(key)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a stored file. Missing files are not an error.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// URL returns the public URL for a stored file.
func (s *LocalStorage) URL(key string) string {
	return path.Join(s.baseURL, key)
}

// Exists checks whether a file is stored under key.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	fullPath, err := s.resolve(key)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}

	return true, nil
}
