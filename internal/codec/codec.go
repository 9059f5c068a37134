// Package codec handles image decoding and encoding around the confusion
// transforms.  Decoding flattens any supported format into a compact NRGBA
// buffer; encoding goes through a registry of per-format encoders so that
// scrambled output can be forced onto lossless formats (a lossy re-encode
// would destroy exact reversibility).
package codec

import (
	"image"
)

// Encoder encodes an image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg", "webp").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Quality is ignored by lossless encoders.
	Encode(img image.Image, quality int) ([]byte, error)

	// Lossless reports whether decoding the encoded bytes is bit-exact.
	// Encrypted output must go through a lossless encoder.
	Lossless() bool

	// Available returns true if the encoder is ready to use.
	// External encoders (cwebp) may not be installed.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
