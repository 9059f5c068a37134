package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ikaros-521/LX-IMG-Confusion/internal/manifest"
	"github.com/Ikaros-521/LX-IMG-Confusion/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	restoreOutDir     string
	restoreFormat     string
	restoreQuality    int
	restoreWorkers    int
	restoreSkipVerify bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <out_dir_or_manifest>",
	Short: "Restore originals from an encrypt manifest",
	Long: `Reads the manifest written by 'lximg encrypt' and decrypts every
reversible asset with the exact strength it was scrambled with.  Each
scrambled file's content hash is verified first; a mismatch usually
means the file went through a lossy re-encode and cannot be restored.

Block-smoothed assets are skipped: that transform has no inverse.`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreOutDir, "out", "o", "./lximg_restored", "output directory")
	restoreCmd.Flags().StringVarP(&restoreFormat, "format", "f", "", "output format (empty = original source format)")
	restoreCmd.Flags().IntVarP(&restoreQuality, "quality", "q", 0, "encoding quality 1-100")
	restoreCmd.Flags().IntVarP(&restoreWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	restoreCmd.Flags().BoolVar(&restoreSkipVerify, "skip-verify", false, "skip content-hash verification")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for the manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifest.FileName)
	}

	absOut, err := filepath.Abs(restoreOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("manifest: %s", path)
	logVerbose("output:   %s", absOut)

	report, err := pipeline.Restore(pipeline.RestoreConfig{
		ManifestPath: path,
		OutputDir:    absOut,
		Format:       restoreFormat,
		Quality:      restoreQuality,
		Workers:      restoreWorkers,
		Verbose:      verbose,
		SkipVerify:   restoreSkipVerify,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Restored: %d\n", report.Restored)
	if report.Skipped > 0 {
		fmt.Printf("  Skipped:  %d (block blend, no inverse)\n", report.Skipped)
	}
	if report.Failed > 0 {
		fmt.Printf("  Failed:   %d\n", report.Failed)
	}
	fmt.Println()

	if report.Failed > 0 {
		return fmt.Errorf("%d assets failed to restore", report.Failed)
	}
	return nil
}
