package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "banner.jpg"))
	touch(t, filepath.Join(dir, "cards", "card-1.png"))
	touch(t, filepath.Join(dir, "cards", "card-2.webp"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, ".cache", "thumb.png"))

	sources, err := ScanImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 3 {
		t.Fatalf("got %d sources, want 3", len(sources))
	}

	byKey := map[string]Source{}
	for _, s := range sources {
		byKey[s.Key] = s
	}

	if s, ok := byKey["banner"]; !ok {
		t.Error("banner.jpg not found")
	} else if s.Format != "jpeg" {
		t.Errorf("banner format: got %q, want jpeg", s.Format)
	}
	if _, ok := byKey["cards/card-1"]; !ok {
		t.Error("nested card-1 not found")
	}
	if _, ok := byKey["notes"]; ok {
		t.Error("non-image file scanned")
	}
}

func TestScanSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpeg")
	touch(t, path)

	sources, err := ScanImages(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if sources[0].Key != "photo" {
		t.Errorf("key: got %q, want photo", sources[0].Key)
	}

	txt := filepath.Join(dir, "photo.txt")
	touch(t, txt)
	if _, err := ScanImages(txt); err == nil {
		t.Error("non-image single file accepted")
	}
}
