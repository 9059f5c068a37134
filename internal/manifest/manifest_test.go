package manifest

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestManifestRoundtrip(t *testing.T) {
	m := New("encrypt", "default")
	m.RunInfo = &RunInfo{Workers: 4}
	m.Assets["photos/cat"] = Asset{
		Original: OriginalInfo{
			Width: 800, Height: 600,
			Format: "jpeg", Size: 100000, HasAlpha: false,
		},
		Transform: TransformInfo{
			Mode: "encrypt", Strength: 0.85, BlockSize: 4,
			PixelCount: 480000, Offset: 252178, Reversible: true,
		},
		Output: Output{
			Format: "png", Width: 800, Height: 600,
			Size: 420000, Hash: "abcd1234abcd1234",
			Path: "photos/cat.encrypt.abcd1234.png",
		},
	}
	m.ComputeStats()

	// Write to temp file.
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := WriteJSON(m, path); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Read back and parse.
	m2, err := ReadJSON(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if m2.Version != SupportedManifestVersion {
		t.Errorf("version: got %d, want %d", m2.Version, SupportedManifestVersion)
	}
	if m2.Mode != "encrypt" {
		t.Errorf("mode: got %q", m2.Mode)
	}
	if m2.Profile != "default" {
		t.Errorf("profile: got %q", m2.Profile)
	}
	if m2.RunInfo == nil || m2.RunInfo.Workers != 4 {
		t.Error("run_info not preserved")
	}

	a, ok := m2.Assets["photos/cat"]
	if !ok {
		t.Fatal("asset photos/cat missing")
	}
	if a.Transform.Strength != 0.85 {
		t.Errorf("strength: got %v", a.Transform.Strength)
	}
	if !a.Transform.Reversible {
		t.Error("reversible flag lost")
	}
	if a.Output.Hash != "abcd1234abcd1234" {
		t.Errorf("hash: got %q", a.Output.Hash)
	}

	// Stats.
	if m2.Stats.TotalAssets != 1 {
		t.Errorf("total_assets: got %d", m2.Stats.TotalAssets)
	}
	if m2.Stats.Reversible != 1 {
		t.Errorf("reversible: got %d", m2.Stats.Reversible)
	}
	if m2.Stats.TotalOutputBytes != 420000 {
		t.Errorf("total_output_bytes: got %d", m2.Stats.TotalOutputBytes)
	}
}

func TestManifestVersionCheck(t *testing.T) {
	m := New("decrypt", "default")
	if m.Version != SupportedManifestVersion {
		t.Errorf("new manifest version: got %d, want %d", m.Version, SupportedManifestVersion)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	m.Version = 99
	if err := WriteJSON(m, path); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSON(path); err == nil {
		t.Error("unsupported version accepted")
	}
}

func TestManifestIgnoresUnknownFields(t *testing.T) {
	// Simulate a future manifest with extra fields.
	raw := `{
		"version": 1,
		"generated_at": "2026-01-01T00:00:00Z",
		"mode": "encrypt",
		"profile": "default",
		"base_path": "./",
		"future_field": "should be ignored",
		"run_info": { "workers": 8, "new_flag": true },
		"assets": {},
		"stats": { "total_input_bytes": 0, "total_output_bytes": 0, "total_assets": 0, "reversible": 0, "new_stat": 42 }
	}`

	var m Manifest
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal with unknown fields: %v", err)
	}
	if m.Mode != "encrypt" {
		t.Errorf("mode: got %q", m.Mode)
	}
	if m.RunInfo == nil || m.RunInfo.Workers != 8 {
		t.Error("run_info not parsed correctly")
	}
}
