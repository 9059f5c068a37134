// Package hasher provides the xxHash64 content hashes used for
// content-addressed output filenames and for verifying that a scrambled
// file is unmodified before attempting to restore it.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to the given length.  16 hex chars (the full 64 bits) is
// collision-safe for practical asset counts; 0 means untruncated.
func ContentHash(data []byte, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], h.Sum64())
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen], nil
	}
	return full, nil
}

// VerifyFile streams the file and checks its hash against want (which may
// be a truncated prefix).  A mismatch means the scrambled bytes were
// altered — usually by a lossy re-encode — and cannot be restored exactly.
func VerifyFile(path, want string) error {
	if want == "" {
		return fmt.Errorf("empty expected hash")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	got, err := ContentHashReader(f, len(want))
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("content hash mismatch: file %s, manifest %s", got, want)
	}
	return nil
}
