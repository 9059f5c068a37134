package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/confuse"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/pipeline"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/profile"
	"github.com/spf13/cobra"
)

var (
	transformOutDir    string
	transformProfile   string
	transformWorkers   int
	transformStrength  float64
	transformBlockSize int
	transformFormat    string
	transformQuality   int
	transformMaxWidth  int
	transformLossy     bool
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt <input_dir_or_file>",
	Short: "Scramble images with the gilbert curve permutation",
	Long: `Scans the input for images (png, jpg, jpeg, webp, gif, bmp, tiff),
permutes each one's pixels along a gilbert space-filling curve with a
golden-ratio cyclic offset, and writes the scrambled files plus a
manifest recording the exact parameters needed to restore them.

Block sizes of 8 or more select the lossy block smoothing blend instead;
those outputs cannot be restored.

Output filenames are content-addressed: <key>.<mode>.<hash>.<ext>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(confuse.Encrypt, args[0])
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt <input_dir_or_file>",
	Short: "Unscramble images using the same strength they were scrambled with",
	Long: `Applies the inverse curve permutation.  The strength MUST match the
one used to encrypt — the cyclic offset is derived from it — or the
result is a differently scrambled image, not the original.

Prefer 'lximg restore <manifest>' when the encrypt manifest is
available: it replays the recorded parameters automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransform(confuse.Decrypt, args[0])
	},
}

func init() {
	for _, c := range []*cobra.Command{encryptCmd, decryptCmd} {
		c.Flags().StringVarP(&transformOutDir, "out", "o", "./lximg_out", "output directory")
		c.Flags().StringVarP(&transformProfile, "profile", "p", "default", "parameter profile")
		c.Flags().IntVarP(&transformWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
		c.Flags().Float64VarP(&transformStrength, "strength", "s", -1, "confusion strength 0-1 (-1 = profile default)")
		c.Flags().IntVarP(&transformBlockSize, "block-size", "b", 0, "block size (0 = profile default; >= 8 selects block blend)")
		c.Flags().StringVarP(&transformFormat, "format", "f", "", "output format (empty = profile default)")
		c.Flags().IntVarP(&transformQuality, "quality", "q", 0, "encoding quality 1-100 (0 = profile default)")
		rootCmd.AddCommand(c)
	}
	encryptCmd.Flags().IntVar(&transformMaxWidth, "max-width", 0, "downscale wider inputs before scrambling (0 = profile default)")
	encryptCmd.Flags().BoolVar(&transformLossy, "force-lossy", false, "allow lossy output formats; such outputs cannot be restored")
}

func runTransform(mode confuse.Mode, input string) error {
	start := time.Now()

	absInput, err := filepath.Abs(input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(transformOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile and apply flag overrides.
	prof := profile.Get(transformProfile)
	if transformStrength >= 0 {
		prof.Strength = transformStrength
	}
	if transformBlockSize > 0 {
		prof.BlockSize = transformBlockSize
	}
	if transformFormat != "" {
		prof.Format = transformFormat
	}
	if transformQuality > 0 {
		prof.Quality = transformQuality
	}
	if transformMaxWidth > 0 {
		prof.MaxWidth = transformMaxWidth
	}

	logVerbose("input:    %s", absInput)
	logVerbose("output:   %s", absOutput)
	logVerbose("profile:  %s (strength=%.3f, block=%d, format=%s)",
		prof.Name, prof.Strength, prof.BlockSize, prof.Format)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		InputPath:   absInput,
		OutputDir:   absOutput,
		Mode:        mode,
		Strength:    prof.Strength,
		BlockSize:   prof.BlockSize,
		Format:      prof.Format,
		Quality:     prof.Quality,
		MaxWidth:    prof.MaxWidth,
		ForceLossy:  transformLossy,
		Workers:     transformWorkers,
		Verbose:     verbose,
		ProfileName: prof.Name,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	manifestPath := filepath.Join(absOutput, manifest.FileName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	printRunReport(m, time.Since(start))
	return nil
}

func printRunReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  lximg %s complete\n", m.Mode)
	fmt.Println()

	stats := m.Stats
	ratio := float64(0)
	if stats.TotalInputBytes > 0 {
		ratio = float64(stats.TotalOutputBytes) / float64(stats.TotalInputBytes) * 100
	}

	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Reversible:  %d\n", stats.Reversible)
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	fmt.Printf("  Output size: %s  (%.1f%% of original)\n", formatBytes(stats.TotalOutputBytes), ratio)
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))
	if m.RunInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.RunInfo.Workers)
	}
	fmt.Println()

	// Top 10 heaviest assets.
	if len(m.Assets) > 0 {
		type assetSize struct {
			key        string
			inputSize  int64
			outputSize int64
		}
		var items []assetSize
		for key, a := range m.Assets {
			items = append(items, assetSize{key, a.Original.Size, a.Output.Size})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].inputSize > items[j].inputSize
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d heaviest (original → transformed):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %8s → %8s\n",
				truncKey(it.key, 40),
				formatBytes(it.inputSize),
				formatBytes(it.outputSize),
			)
		}
		fmt.Println()
	}

	fmt.Printf("  Manifest:    %s\n", manifest.FileName)
	fmt.Println()
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
