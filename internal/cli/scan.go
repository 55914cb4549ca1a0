// Package cli provides the command-line interface for gittyup.
// This file implements the scan subcommand.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gittyup/gittyup/internal/config"
	"github.com/gittyup/gittyup/internal/scan"
	"github.com/gittyup/gittyup/internal/tui"
)

// AddScanCommand adds the scan subcommand to the root command.
func AddScanCommand(root *cobra.Command, global *GlobalFlags) {
	var (
		depth      int
		exclude    []string
		fast       bool
		noSymlinks bool
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Discover git repositories without running any operation",
		Long: `Scan walks the directory tree and lists every git repository found,
with branch, state, and sync information. No git operation is applied.

Examples:
  gittyup scan                  # List repositories under the current directory
  gittyup scan ~/projects -d 2  # Limit scan depth
  gittyup scan --fast           # Paths only, skip metadata queries`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := config.LoadWithOverrides(&config.Config{
				Scan: config.ScanConfig{
					MaxDepth:        depth,
					ExcludePatterns: exclude,
				},
			})
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("no-follow-symlinks") {
				cfg.Scan.FollowSymlinks = !noSymlinks
			}

			scanner := scan.New(scan.Options{
				MaxDepth:        cfg.Scan.MaxDepth,
				ExcludePatterns: cfg.Scan.ExcludePatterns,
				FollowSymlinks:  cfg.Scan.FollowSymlinks,
				SkipMetadata:    fast,
				QueryTimeout:    cfg.Scan.QueryTimeout,
			}, GetLogger())

			result, err := scanner.Scan(cmd.Context(), root)
			if err != nil {
				return err
			}

			if global.Output == OutputJSON {
				return tui.NewOutput(cmd.OutOrStdout(), global.Output).JSON(result)
			}

			reporter := tui.NewReporter(cmd.OutOrStdout(), global.Verbose, global.Quiet)
			reporter.ScanReport(result)
			if result.Len() == 0 {
				return nil
			}

			if fast {
				for _, repo := range result.Repositories {
					reporter.Info("  " + repo.DisplayPath())
				}
			} else {
				reporter.Info("")
				reporter.RepositoryTable(result.Repositories)
			}

			reporter.Info(fmt.Sprintf("\nVisited %d directories in %s", result.DirsVisited, result.Duration.Round(time.Millisecond)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "maximum scan depth (0 = unbounded)")
	cmd.Flags().StringArrayVarP(&exclude, "exclude", "e", nil, "directory patterns to exclude (repeatable)")
	cmd.Flags().BoolVar(&fast, "fast", false, "list paths only, skipping metadata queries")
	cmd.Flags().BoolVar(&noSymlinks, "no-follow-symlinks", false, "do not traverse symlinked directories")

	root.AddCommand(cmd)
}
