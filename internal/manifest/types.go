package manifest

// Manifest is the top-level record of an lximg run.  For encrypt runs it
// carries everything needed to restore the originals exactly: per-asset
// transform parameters and content hashes of the scrambled files.
type Manifest struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Mode        string           `json:"mode"` // "encrypt", "decrypt", "blocksmooth"
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	RunInfo     *RunInfo         `json:"run_info,omitempty"`
	Assets      map[string]Asset `json:"assets"`
	Stats       Stats            `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers int `json:"workers"`
}

// Asset describes one source image and its transformed output.
type Asset struct {
	Original  OriginalInfo  `json:"original"`
	Transform TransformInfo `json:"transform"`
	Output    Output        `json:"output"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	HasAlpha bool   `json:"has_alpha"`
}

// TransformInfo records the exact confusion parameters.  Decrypt must use
// the same strength that was used to encrypt, so these are authoritative.
type TransformInfo struct {
	Mode      string  `json:"mode"`
	Strength  float64 `json:"strength"`
	BlockSize int     `json:"block_size"`
	// PixelCount and Offset are derived values, recorded for diagnostics:
	// offset = round(φ·pixel_count·strength) mod pixel_count.
	PixelCount int `json:"pixel_count"`
	Offset     int `json:"offset"`
	// Reversible is false for block-smoothed assets; restore skips them.
	Reversible bool `json:"reversible"`
}

// Output is the transformed file written to disk.
type Output struct {
	Format string `json:"format"` // "png", "webp", "jpeg"
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"` // bytes on disk
	Hash   string `json:"hash"` // first 16 hex chars of xxhash64
	Path   string `json:"path"` // relative to base_path
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalAssets      int   `json:"total_assets"`
	Reversible       int   `json:"reversible"`
}

// SupportedManifestVersion is the current schema version.
const SupportedManifestVersion = 1
