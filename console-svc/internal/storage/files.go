package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"event-console/console-svc/internal/domain"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix stored photos are served under.
const PublicPrefix = "/uploads/"

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// DiskStore keeps uploaded photos in a local directory.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{Dir: dir}
}

// Save writes the upload and returns its public path.
func (s *DiskStore) Save(upload domain.Upload) (string, error) {
	if !allowedImageTypes[upload.ContentType] {
		return "", domain.Invalid("only JPEG, PNG and GIF photos are allowed")
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	filename := uuid.NewString() + "-" + sanitizeFilename(upload.Filename)
	dst, err := os.Create(filepath.Join(s.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, upload.Body); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("write photo file: %w", err)
	}

	return PublicPrefix + filename, nil
}

// Remove deletes a photo previously returned by Save. Unknown paths are
// ignored.
func (s *DiskStore) Remove(publicPath string) error {
	if !strings.HasPrefix(publicPath, PublicPrefix) {
		return nil
	}
	name := filepath.Base(publicPath)
	err := os.Remove(filepath.Join(s.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		return "photo"
	}
	return name
}
