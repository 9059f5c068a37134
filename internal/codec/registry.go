package codec

import (
	"fmt"
	"strings"
)

// Registry holds all available encoders and selects one per output.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry, probing all encoders for availability.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}

	// Register all encoders. Only available ones will be used.
	all := []Encoder{
		&WebPEncoder{},
		&JPEGEncoder{},
		&PNGEncoder{},
	}

	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
		}
	}

	return r
}

// Get returns an encoder for the given format, or nil if unavailable.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[normalizeFormat(format)]
}

// Available returns all available format names.
func (r *Registry) Available() []string {
	var result []string
	// Maintain priority order.
	for _, f := range []string{"png", "webp", "jpeg"} {
		if _, ok := r.encoders[f]; ok {
			result = append(result, f)
		}
	}
	return result
}

// Resolve picks the encoder for the requested format.  When needLossless
// is set (encrypted output) and the requested format is lossy or
// unavailable, it falls back to PNG; the returned fallback flag tells the
// caller a substitution happened.  Without the lossless requirement an
// unknown format simply yields nil.
func (r *Registry) Resolve(requested string, needLossless bool) (enc Encoder, fallback bool) {
	enc = r.Get(requested)
	if enc != nil && (!needLossless || enc.Lossless()) {
		return enc, false
	}
	if needLossless {
		return r.encoders["png"], enc != nil || requested != "png"
	}
	return enc, false
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	avail := r.Available()
	if len(avail) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(avail, ", "))
}

// normalizeFormat folds aliases onto canonical format names.
func normalizeFormat(format string) string {
	f := strings.ToLower(format)
	switch f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return f
}
