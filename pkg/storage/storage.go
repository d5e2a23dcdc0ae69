package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidPath is returned for paths that escape the storage root.
var ErrInvalidPath = errors.New("invalid storage path")

// FileStorage keeps uploaded artifact files on local disk. Paths handed out
// are relative to the root, so the root can move without rewriting rows.
type FileStorage struct {
	root string
}

func NewFileStorage(root string) (*FileStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &FileStorage{root: root}, nil
}

// Save copies an uploaded file under dir and returns its relative path.
func (s *FileStorage) Save(dir string, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("unable to open upload: %w", err)
	}
	defer src.Close()

	return s.SaveReader(dir, file.Filename, src)
}

// SaveReader stores r as dir/<uuid>_<name>.
func (s *FileStorage) SaveReader(dir, name string, r io.Reader) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = "file"
	}
	rel := filepath.ToSlash(filepath.Join(dir, uuid.New().String()[:8]+"_"+base))

	full, err := s.Path(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("unable to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("unable to write file: %w", err)
	}
	return rel, nil
}

// Open opens a stored file for reading.
func (s *FileStorage) Open(rel string) (io.ReadCloser, error) {
	full, err := s.Path(rel)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

// Delete removes a stored file. Missing files are not an error.
func (s *FileStorage) Delete(rel string) error {
	if rel == "" {
		return nil
	}
	full, err := s.Path(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a relative path to its location on disk.
func (s *FileStorage) Path(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return filepath.Join(s.root, clean), nil
}
