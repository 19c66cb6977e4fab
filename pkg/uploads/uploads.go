package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/ammabio/amma-backend/pkg/config"
	"github.com/google/uuid"
)

// allowedExtensions is the accepted set for uploaded documents and receipts.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

// Store persists uploaded files on local disk under a configured root directory.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore builds a Store from the uploads configuration.
func NewStore(cfg config.UploadsConfig) *Store {
	maxMB := cfg.MaxUploadMB
	if maxMB <= 0 {
		maxMB = 10
	}
	return &Store{
		dir:      cfg.Dir,
		maxBytes: int64(maxMB) << 20,
	}
}

// MaxBytes returns the per-file size cap.
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Validate checks the file size and extension against upload constraints.
// The returned message is suitable for a field-level validation error.
func (s *Store) Validate(header *multipart.FileHeader) string {
	if header == nil {
		return "file is required"
	}
	if header.Size > s.maxBytes {
		return fmt.Sprintf("file exceeds the maximum size of %dMB", s.maxBytes>>20)
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "unsupported file type; allowed: pdf, doc, docx, jpg, jpeg, png, gif"
	}
	return ""
}

// Save writes the uploaded file under <dir>/<subdir> with a random filename,
// keeping the original extension. It returns the path relative to the store root.
func (s *Store) Save(subdir string, header *multipart.FileHeader) (string, error) {
	if header == nil {
		return "", fmt.Errorf("file header is required")
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	targetDir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", targetDir, err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := uuid.NewString() + ext
	fullpath := filepath.Join(targetDir, name)

	dst, err := os.Create(fullpath)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", fullpath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1)); err != nil {
		return "", fmt.Errorf("write %q: %w", fullpath, err)
	}

	return filepath.Join(subdir, name), nil
}

// Remove deletes a previously saved file. Missing files are not an error.
func (s *Store) Remove(relPath string) error {
	if strings.TrimSpace(relPath) == "" {
		return nil
	}
	full := filepath.Join(s.dir, relPath)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", full, err)
	}
	return nil
}
