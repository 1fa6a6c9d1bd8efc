package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PublicPrefix is the URL path the static file mount serves from.
const PublicPrefix = "/uploads"

// DefaultMaxSize caps accepted image uploads at 5 MiB.
const DefaultMaxSize = 5 << 20

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	ErrUnsupportedType = errors.New("Only image files are allowed (jpg, jpeg, png, gif, webp)")
	ErrFileTooLarge    = errors.New("Image must be smaller than 5 MB")
)

// Service writes uploaded listing images to local disk. Filenames are
// server-generated; the client's name contributes only its extension.
type Service struct {
	Dir     string
	MaxSize int64 // zero means DefaultMaxSize
}

func (s *Service) maxSize() int64 {
	if s.MaxSize != 0 {
		return s.MaxSize
	}
	return DefaultMaxSize
}

// SaveImage stores the file under Dir and returns its public reference
// (/uploads/<name>). The record insert that follows may still fail; no
// compensating delete happens then (accepted inconsistency window).
func (s *Service) SaveImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		return "", ErrUnsupportedType
	}
	if fh.Size > s.maxSize() {
		return "", ErrFileTooLarge
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return PublicPrefix + "/" + name, nil
}
