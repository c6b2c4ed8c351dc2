// Package app wires the dancectl commands together. Each command owns its
// catalog for the duration of one run: load, mutate on the coordinating
// goroutine, save. Slow work (hashing, network) happens on background
// goroutines that report back over channels.
package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/config"
	"github.com/justalter/dancectl/internal/scan"
	"github.com/justalter/dancectl/internal/util"
)

var (
	cfg *config.Config

	flagNoColor bool
	flagNoInput bool
	flagConfig  string

	appVersion = "dev"
)

// SetVersion records the build version shown by the version command.
func SetVersion(v string) {
	appVersion = v
}

var rootCmd = &cobra.Command{
	Use:   "dancectl",
	Short: "Catalog and sync a local collection of dance bundles",
	Long: `dancectl keeps a metadata catalog for a folder of dance animation bundles.

Every bundle is identified by a fingerprint of its content, never by its
file name, so renames and reorganizing folders never lose annotations.
The catalog lives in a single dances.json and can be reconciled against
the published community copy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInput, "no-input", false, "Disable interactive screens")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/dancectl/config.yml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(
		newScanCmd(),
		newListCmd(),
		newEditCmd(),
		newSyncCmd(),
		newUploadCmd(),
		newWhereCmd(),
		newWatchCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

// newScanner builds a scanner from the loaded config.
func newScanner() *scan.Scanner {
	return &scan.Scanner{
		Root:     cfg.DancesRoot(),
		Patterns: cfg.Collection.Patterns,
		StripExt: cfg.Collection.StripExt,
		Authors:  &scan.AuthorTable{Aliases: cfg.Collection.Authors},
		Workers:  cfg.Collection.Workers,
	}
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
