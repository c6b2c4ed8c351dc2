package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/justalter/dancectl/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the dancectl configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current effective config to disk",
		Long: `Write the effective configuration, defaults and all, to the config file.

The result is a complete YAML file ready to edit. An existing file is
never overwritten unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(configPath(), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func runConfigInit(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	ok("wrote %s", path)
	return nil
}

// configPath resolves the same file Load reads: the --config flag, then the
// DANCECTL_CONFIG env var, then the default location.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	if p := os.Getenv("DANCECTL_CONFIG"); p != "" {
		return p
	}
	return config.DefaultPath()
}
