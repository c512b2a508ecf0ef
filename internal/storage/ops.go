package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cesargomez89/airscore/internal/constants"
)

func Sanitize(s string) string {
	// Strip characters that are invalid on common filesystems
	mapped := strings.Map(func(r rune) rune {
		if strings.ContainsRune("<>:\"/\\|?*", r) {
			return -1
		}
		return r
	}, s)

	return strings.TrimRight(mapped, ". ")
}

func EnsureDir(path string) error {
	return os.MkdirAll(path, constants.DirPermissions)
}

// UniquePath returns a path for name inside dir that does not collide with an
// existing file. On collision a short random suffix is inserted before the
// extension.
func UniquePath(dir, name string) string {
	name = Sanitize(name)
	if name == "" {
		name = uuid.New().String() + constants.PDFExtension
	}

	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	suffix := uuid.New().String()[:8]
	return filepath.Join(dir, fmt.Sprintf("%s-%s%s", base, suffix, ext))
}

// SaveReader writes the contents of r to a new file named after filename
// inside dir, creating dir if needed, and returns the destination path.
func SaveReader(r io.Reader, dir, filename string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create library dir: %w", err)
	}

	dest := UniquePath(dir, filename)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.FilePermissions)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("failed to close %s: %w", dest, err)
	}

	return dest, nil
}

// CopyFile copies src into dir under its own (sanitized, collision-safe) name.
func CopyFile(src, dir string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer f.Close()

	return SaveReader(f, dir, filepath.Base(src))
}

func RemoveFile(path string) error {
	return os.Remove(path)
}

func IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileURI converts a local path into the file:// form stored in the database.
func FileURI(path string) string {
	return constants.FileURIScheme + path
}

// URIPath is the inverse of FileURI. Non file:// URIs are returned unchanged.
func URIPath(uri string) string {
	return strings.TrimPrefix(uri, constants.FileURIScheme)
}
