package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lximg",
	Short: "Reversible image confusion via a gilbert space-filling curve",
	Long: `lximg — visually scrambles raster images by permuting pixels along a
generalized Hilbert (gilbert) curve with a golden-ratio cyclic offset,
and restores them exactly given the same strength.

Outputs are content-addressed and recorded in a manifest, so a later
restore run reuses the exact parameters without retyping them.  A lossy
block smoothing mode is available as an alternative, one-way softening.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"lximg %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[lximg] "+format+"\n", args...)
	}
}
