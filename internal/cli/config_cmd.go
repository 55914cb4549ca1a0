// Package cli provides the command-line interface for gittyup.
// This file implements the config subcommand.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gittyup/gittyup/internal/config"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/tui"
)

// AddConfigCommand adds the config subcommand and its children to the root
// command.
func AddConfigCommand(root *cobra.Command, global *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gittyup configuration",
	}

	cmd.AddCommand(newConfigShowCmd(global))
	cmd.AddCommand(newConfigInitCmd(global))

	root.AddCommand(cmd)
}

// newConfigShowCmd prints the effective configuration after all layers are
// merged.
func newConfigShowCmd(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if global.Output == OutputJSON {
				return tui.NewOutput(cmd.OutOrStdout(), global.Output).JSON(cfg)
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to marshal config")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// newConfigInitCmd writes the default configuration to the global config
// file.
func newConfigInitCmd(global *GlobalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to ~/.gittyup/config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.GlobalConfigPath()
			if err != nil {
				return err
			}

			if _, statErr := os.Stat(path); statErr == nil && !force {
				return errors.Wrapf(errors.ErrConfigExists,
					"%s (use --force to overwrite)", path)
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
				return errors.Wrap(err, "failed to create config directory")
			}

			data, err := yaml.Marshal(config.DefaultConfig())
			if err != nil {
				return errors.Wrap(err, "failed to marshal default config")
			}

			if err := os.WriteFile(path, data, 0o600); err != nil {
				return errors.Wrap(err, "failed to write config file")
			}

			reporter := tui.NewReporter(cmd.OutOrStdout(), global.Verbose, global.Quiet)
			reporter.Success("Wrote default configuration to " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
