package profile

// Profile bundles confusion parameters as a named preset.
type Profile struct {
	Name      string
	Strength  float64 // confusion strength in [0,1]
	BlockSize int     // < 8 selects the curve permutation, >= 8 the block blend
	Format    string  // output format for transformed files
	Quality   int     // encoding quality 1-100 (effort level for lossless)
	MaxWidth  int     // downscale wider inputs before encrypting (0 = keep)
}

// Built-in profiles.
var profiles = map[string]Profile{
	"default": {
		Name:      "default",
		Strength:  1.0,
		BlockSize: 4,
		Format:    "png",
		Quality:   75,
	},
	"light": {
		Name:      "light",
		Strength:  0.5,
		BlockSize: 4,
		Format:    "png",
		Quality:   75,
	},
	// Block blend preset: lossy softening, not reversible.
	"soft": {
		Name:      "soft",
		Strength:  0.85,
		BlockSize: 16,
		Format:    "jpeg",
		Quality:   90,
	},
	// Downscales large inputs first; useful for quick previews.
	"preview": {
		Name:      "preview",
		Strength:  1.0,
		BlockSize: 4,
		Format:    "png",
		Quality:   60,
		MaxWidth:  1280,
	},
}

// Get returns a profile by name. Falls back to default if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles["default"]
	p.Name = name // preserve requested name
	return p
}

// Names lists the built-in profile names in a stable order.
func Names() []string {
	return []string{"default", "light", "soft", "preview"}
}
