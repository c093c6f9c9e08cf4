package photo

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxFileSize caps a single upload at 10 MiB.
const MaxFileSize = 10 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Storage writes uploads beneath a per-memorial subdirectory of the base
// upload dir and serves them back by public URL path.
type Storage struct {
	baseDir string
}

func NewStorage(baseDir string) *Storage {
	return &Storage{baseDir: baseDir}
}

// Validate rejects files with a disallowed extension or over the size cap.
func (s *Storage) Validate(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %q is not allowed", ext)
	}
	if fh.Size > MaxFileSize {
		return fmt.Errorf("file %q exceeds the 10MB size limit", filepath.Base(fh.Filename))
	}
	return nil
}

// Store copies the upload under a generated collision-resistant name and
// returns the stored filename plus its public URL.
func (s *Storage) Store(memorialID string, fh *multipart.FileHeader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	storedName := uuid.NewString() + ext

	dir := filepath.Join(s.baseDir, memorialID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, storedName))
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}

	return storedName, "/uploads/" + memorialID + "/" + storedName, nil
}

// Remove deletes a stored file; a file already gone is not an error.
func (s *Storage) Remove(memorialID, storedName string) error {
	err := os.Remove(filepath.Join(s.baseDir, memorialID, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
