package images

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestSaveBase64(t *testing.T) {
	mediaDir := t.TempDir()

	path, err := SaveBase64(mediaDir, "recipes", testPNG)
	if err != nil {
		t.Fatalf("SaveBase64 failed: %v", err)
	}
	if !strings.HasPrefix(path, "recipes/") {
		t.Errorf("Expected a path under recipes/, got %q", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("Expected a .png extension, got %q", path)
	}

	data, err := os.ReadFile(filepath.Join(mediaDir, filepath.FromSlash(path)))
	if err != nil {
		t.Fatalf("Expected the file on disk: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected decoded image bytes on disk")
	}
}

func TestSaveBase64Invalid(t *testing.T) {
	mediaDir := t.TempDir()

	cases := []string{
		"not-a-data-uri",
		"data:image/png;base64",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png;base64,%%%not-base64%%%",
	}
	for _, input := range cases {
		if _, err := SaveBase64(mediaDir, "recipes", input); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("%q: expected ErrInvalidImage, got %v", input, err)
		}
	}
}

func TestRemove(t *testing.T) {
	mediaDir := t.TempDir()

	path, err := SaveBase64(mediaDir, "users", testPNG)
	if err != nil {
		t.Fatalf("SaveBase64 failed: %v", err)
	}
	if err := Remove(mediaDir, path); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(mediaDir, filepath.FromSlash(path))); !os.IsNotExist(err) {
		t.Error("Expected the file deleted")
	}

	// Missing files and empty paths are fine.
	if err := Remove(mediaDir, path); err != nil {
		t.Errorf("Remove of a missing file should succeed, got %v", err)
	}
	if err := Remove(mediaDir, ""); err != nil {
		t.Errorf("Remove of an empty path should succeed, got %v", err)
	}
}

func TestURL(t *testing.T) {
	if got := URL("recipes/abc.png"); got != "/media/recipes/abc.png" {
		t.Errorf("Expected /media/recipes/abc.png, got %q", got)
	}
	if got := URL(""); got != "" {
		t.Errorf("Expected empty URL for empty path, got %q", got)
	}
}
