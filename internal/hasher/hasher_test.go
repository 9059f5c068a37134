package hasher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestContentHashStable(t *testing.T) {
	data := []byte("lximg content hash fixture")
	a := ContentHash(data, 16)
	b := ContentHash(data, 16)
	if a != b {
		t.Fatalf("hash not stable: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("full hash length: got %d", len(a))
	}
	short := ContentHash(data, 8)
	if len(short) != 8 || short != a[:8] {
		t.Errorf("truncation should be a prefix: %s vs %s", short, a)
	}
}

func TestContentHashReaderMatchesSlice(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB, 0x12, 0x7F}, 5000)
	fromReader, err := ContentHashReader(bytes.NewReader(data), 16)
	if err != nil {
		t.Fatal(err)
	}
	if got := ContentHash(data, 16); got != fromReader {
		t.Errorf("reader hash %s != slice hash %s", fromReader, got)
	}
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blob")
	data := []byte("scrambled bytes")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	want := ContentHash(data, 16)
	if err := VerifyFile(path, want); err != nil {
		t.Errorf("matching hash rejected: %v", err)
	}
	if err := VerifyFile(path, "0000000000000000"); err == nil {
		t.Error("mismatching hash accepted")
	}
	if err := VerifyFile(path, ""); err == nil {
		t.Error("empty hash accepted")
	}
}
