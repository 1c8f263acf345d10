package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageServiceProvider defines the interface for uploaded image storage.
type ImageServiceProvider interface {
	Save(originalName string, src io.Reader) (string, error)
	Delete(filename string) error
	UploadsPath() string
}

// allowed upload extensions
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ImageService stores uploaded images under a server-local directory.
type ImageService struct {
	uploadsPath string
}

// NewImageService creates a new ImageService rooted at uploadsPath.
func NewImageService(uploadsPath string) *ImageService {
	return &ImageService{uploadsPath: uploadsPath}
}

// UploadsPath returns the directory images are stored in.
func (s *ImageService) UploadsPath() string {
	return s.uploadsPath
}

// Save writes an uploaded file to disk under a generated name and returns
// that name. The client-supplied filename is only consulted for its
// extension.
func (s *ImageService) Save(originalName string, src io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.uploadsPath, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", err
	}
	return filename, nil
}

// Delete removes a stored image by filename. The name is flattened to its
// base so a crafted path cannot escape the uploads directory. A missing file
// is an error, not a no-op.
func (s *ImageService) Delete(filename string) error {
	return os.Remove(filepath.Join(s.uploadsPath, filepath.Base(filename)))
}
