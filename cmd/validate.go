package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/confuse"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/hasher"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
	"github.com/spf13/cobra"
)

var validateCheckHashes bool

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a manifest and check referenced files exist",
	Long: `Checks the manifest schema, the recorded transform parameters, and
that every referenced output file is present with the expected size.
With --hashes the content hash of every file is re-verified, which is
what 'restore' will depend on.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateCheckHashes, "hashes", false, "re-verify content hashes of output files")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(manifestPath)
	errors := validateManifest(m, baseDir, validateCheckHashes)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets (%d reversible) — all files present\n",
			m.Stats.TotalAssets, m.Stats.Reversible)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func validateManifest(m *manifest.Manifest, baseDir string, checkHashes bool) []string {
	var errs []string

	if _, err := confuse.ParseMode(m.Mode); err != nil {
		errs = append(errs, fmt.Sprintf("unknown run mode %q", m.Mode))
	}

	seenPaths := map[string]string{}
	for key, asset := range m.Assets {
		// Original metadata.
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}

		// Transform parameters.
		tr := asset.Transform
		if _, err := confuse.ParseMode(tr.Mode); err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: unknown transform mode %q", key, tr.Mode))
		}
		if tr.Strength < 0 || tr.Strength > 1 {
			errs = append(errs, fmt.Sprintf("asset %q: strength %v out of range", key, tr.Strength))
		}
		if tr.BlockSize <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid block size %d", key, tr.BlockSize))
		}
		if tr.Reversible && tr.Mode == confuse.BlockSmooth.String() {
			errs = append(errs, fmt.Sprintf("asset %q: block blend marked reversible", key))
		}
		if tr.PixelCount != asset.Output.Width*asset.Output.Height {
			errs = append(errs, fmt.Sprintf("asset %q: pixel count %d does not match output %dx%d",
				key, tr.PixelCount, asset.Output.Width, asset.Output.Height))
		}
		if want := confuse.Offset(tr.PixelCount, tr.Strength); tr.Offset != want {
			errs = append(errs, fmt.Sprintf("asset %q: recorded offset %d, derived %d",
				key, tr.Offset, want))
		}

		// Output entry.
		out := asset.Output
		if out.Format == "" {
			errs = append(errs, fmt.Sprintf("asset %q: empty output format", key))
		}
		if out.Width <= 0 || out.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid output dimensions %dx%d",
				key, out.Width, out.Height))
		}
		if out.Hash == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing content hash", key))
		}
		if out.Path == "" {
			errs = append(errs, fmt.Sprintf("asset %q: missing output path", key))
			continue
		}

		if prev, dup := seenPaths[out.Path]; dup {
			errs = append(errs, fmt.Sprintf("asset %q: duplicate path %q (also %q)", key, out.Path, prev))
		}
		seenPaths[out.Path] = key

		fullPath := filepath.Join(baseDir, filepath.FromSlash(out.Path))
		info, err := os.Stat(fullPath)
		if err != nil {
			errs = append(errs, fmt.Sprintf("asset %q: file not found: %s", key, out.Path))
			continue
		}
		if out.Size > 0 && info.Size() != out.Size {
			errs = append(errs, fmt.Sprintf("asset %q: size mismatch: manifest=%d, disk=%d",
				key, out.Size, info.Size()))
		}
		if checkHashes && out.Hash != "" {
			if err := hasher.VerifyFile(fullPath, out.Hash); err != nil {
				errs = append(errs, fmt.Sprintf("asset %q: %v", key, err))
			}
		}
	}

	// Verify stats consistency.
	assetCount := len(m.Assets)
	reversible := 0
	for _, a := range m.Assets {
		if a.Transform.Reversible {
			reversible++
		}
	}
	if m.Stats.TotalAssets != assetCount {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, assetCount))
	}
	if m.Stats.Reversible != reversible {
		errs = append(errs, fmt.Sprintf("stats.reversible mismatch: %d != %d", m.Stats.Reversible, reversible))
	}

	return errs
}
