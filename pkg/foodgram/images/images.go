// Package images stores base64 data-URI uploads under the media directory.
package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidImage = errors.New("invalid base64 image")

var extByMime = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// SaveBase64 decodes a "data:image/...;base64,..." payload and writes it to
// mediaDir/subdir with a random file name. It returns the path relative to
// mediaDir, which is what gets persisted on the model.
func SaveBase64(mediaDir, subdir, data string) (string, error) {
	if !strings.HasPrefix(data, "data:") {
		return "", ErrInvalidImage
	}

	meta, payload, ok := strings.Cut(data[len("data:"):], ",")
	if !ok {
		return "", ErrInvalidImage
	}
	mime, _, _ := strings.Cut(meta, ";")
	ext, known := extByMime[mime]
	if !known {
		return "", fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, mime)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	dir := filepath.Join(mediaDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + "." + ext
	if err := os.WriteFile(filepath.Join(dir, name), raw, 0o644); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes a stored image. Missing files are not an error.
func Remove(mediaDir, path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(mediaDir, filepath.FromSlash(path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL returns the public URL for a stored path, or "" when unset.
func URL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}
