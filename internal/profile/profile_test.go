package profile

import "testing"

func TestGetKnownProfiles(t *testing.T) {
	for _, name := range Names() {
		p := Get(name)
		if p.Name != name {
			t.Errorf("%s: name mismatch: %q", name, p.Name)
		}
		if p.Strength < 0 || p.Strength > 1 {
			t.Errorf("%s: strength %v out of range", name, p.Strength)
		}
		if p.BlockSize <= 0 {
			t.Errorf("%s: block size %d", name, p.BlockSize)
		}
		if p.Format == "" {
			t.Errorf("%s: empty format", name)
		}
	}
}

func TestGetUnknownFallsBack(t *testing.T) {
	p := Get("no-such-profile")
	if p.Name != "no-such-profile" {
		t.Errorf("requested name not preserved: %q", p.Name)
	}
	def := Get("default")
	if p.Strength != def.Strength || p.BlockSize != def.BlockSize {
		t.Error("fallback should carry default parameters")
	}
}

func TestSoftProfileRoutesToBlockBlend(t *testing.T) {
	if p := Get("soft"); p.BlockSize < 8 {
		t.Errorf("soft profile block size %d should select the block blend", p.BlockSize)
	}
}
