package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a transformed output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Mode:             %s\n", m.Mode)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	if m.RunInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.RunInfo.Workers)
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Reversible:       %d\n", s.Reversible)
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Printf("  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalInputBytes > 0 {
		ratio := float64(s.TotalOutputBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Size ratio:       %.1f%% of original\n", ratio)
	}
	fmt.Println()

	// Per-format breakdown of outputs.
	formatStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, a := range m.Assets {
		fs := formatStats[a.Output.Format]
		fs.count++
		fs.bytes += a.Output.Size
		formatStats[a.Output.Format] = fs
	}
	fmt.Println("  Format breakdown:")
	for _, f := range []string{"png", "webp", "jpeg"} {
		if fs, ok := formatStats[f]; ok {
			fmt.Printf("    %-6s  %4d files  %s\n", f, fs.count, formatBytes(fs.bytes))
		}
	}
	fmt.Println()

	// Strength distribution.
	strengthCount := map[float64]int{}
	for _, a := range m.Assets {
		strengthCount[a.Transform.Strength]++
	}
	var strengths []float64
	for s := range strengthCount {
		strengths = append(strengths, s)
	}
	sort.Float64s(strengths)
	fmt.Println("  Strength breakdown:")
	for _, s := range strengths {
		fmt.Printf("    %.3f  %4d assets\n", s, strengthCount[s])
	}
	fmt.Println()

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if a.Output.Path == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q has no output", key))
		}
		if a.Transform.Reversible && a.Output.Hash == "" {
			warnings = append(warnings, fmt.Sprintf("asset %q is reversible but has no content hash", key))
		}
	}
	if len(warnings) > 0 {
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
		fmt.Println()
	}
}
