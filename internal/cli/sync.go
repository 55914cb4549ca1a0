// Package cli provides the command-line interface for gittyup.
// This file implements the root scan-and-execute pipeline.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gittyup/gittyup/internal/batch"
	"github.com/gittyup/gittyup/internal/config"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/scan"
	"github.com/gittyup/gittyup/internal/tui"
)

// syncFlags holds the flags controlling the scan-and-execute pipeline.
type syncFlags struct {
	operation  string
	depth      int
	exclude    []string
	dryRun     bool
	noParallel bool
	jobs       int
	timeout    time.Duration
	noSymlinks bool
}

// addSyncFlags registers the pipeline flags on the root command.
func addSyncFlags(cmd *cobra.Command, flags *syncFlags) {
	cmd.Flags().StringVarP(&flags.operation, "operation", "O", "", "git operation to run (pull|fetch|status|push|custom command)")
	cmd.Flags().IntVarP(&flags.depth, "depth", "d", 0, "maximum scan depth (0 = unbounded)")
	cmd.Flags().StringArrayVarP(&flags.exclude, "exclude", "e", nil, "directory patterns to exclude (repeatable)")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show what would be done without running git")
	cmd.Flags().BoolVar(&flags.noParallel, "no-parallel", false, "run operations sequentially")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "worker-pool size for parallel execution")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0, "per-repository operation timeout")
	cmd.Flags().BoolVar(&flags.noSymlinks, "no-follow-symlinks", false, "do not traverse symlinked directories")
}

// loadSyncConfig merges the configuration layers with the CLI flags on top.
func loadSyncConfig(cmd *cobra.Command, flags *syncFlags) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(&config.Config{
		Scan: config.ScanConfig{
			MaxDepth:        flags.depth,
			ExcludePatterns: flags.exclude,
		},
		Git: config.GitConfig{
			Operation: flags.operation,
			Timeout:   flags.timeout,
		},
		Execution: config.ExecutionConfig{
			MaxWorkers: flags.jobs,
		},
	})
	if err != nil {
		return nil, err
	}

	// Bool flags are applied via Changed checks since false is
	// indistinguishable from unset in the override struct.
	if cmd.Flags().Changed("no-parallel") {
		cfg.Execution.Parallel = !flags.noParallel
	}
	if cmd.Flags().Changed("no-follow-symlinks") {
		cfg.Scan.FollowSymlinks = !flags.noSymlinks
	}

	return cfg, nil
}

// runSync scans for repositories under root and applies the configured git
// operation to each of them.
func runSync(cmd *cobra.Command, global *GlobalFlags, flags *syncFlags, root string) error {
	ctx := cmd.Context()
	logger := GetLogger()

	cfg, err := loadSyncConfig(cmd, flags)
	if err != nil {
		return err
	}

	operation := strings.TrimSpace(cfg.Git.Operation)
	if operation == "" {
		return errors.Wrap(errors.ErrInvalidOperation, "operation must not be empty")
	}

	reporter := tui.NewReporter(cmd.OutOrStdout(), global.Verbose, global.Quiet)
	out := tui.NewOutput(cmd.OutOrStdout(), global.Output)
	jsonMode := global.Output == OutputJSON

	if !jsonMode {
		reporter.Info("🔍 Scanning for git repositories in: " + root)
	}

	scanner := scan.New(scan.Options{
		MaxDepth:        cfg.Scan.MaxDepth,
		ExcludePatterns: cfg.Scan.ExcludePatterns,
		FollowSymlinks:  cfg.Scan.FollowSymlinks,
		QueryTimeout:    cfg.Scan.QueryTimeout,
	}, logger)

	scanResult, err := scanner.Scan(ctx, root)
	if err != nil {
		return err
	}

	if !jsonMode {
		reporter.ScanReport(scanResult)
	}

	if scanResult.Len() == 0 {
		if jsonMode {
			return out.JSON(scanResult)
		}
		reporter.Warning("No git repositories found")
		return nil
	}

	if !jsonMode {
		if flags.dryRun {
			reporter.Info(fmt.Sprintf("\n[Dry run] Would execute 'git %s' on %d repositories", operation, scanResult.Len()))
		} else {
			reporter.Info(fmt.Sprintf("\n🔄 Executing 'git %s' on repositories...", operation))
		}
	}

	executor := batch.NewExecutor(batch.Options{
		Timeout:  cfg.Git.Timeout,
		DryRun:   flags.dryRun,
		Parallel: cfg.Execution.Parallel,
		Workers:  cfg.Execution.MaxWorkers,
	}, logger)

	summary := executor.ExecuteBatch(ctx, scanResult.Repositories, operation)

	if jsonMode {
		if err := out.JSON(summary); err != nil {
			return err
		}
	} else {
		for _, result := range summary.Results {
			reporter.ResultLine(result)
		}
		if cfg.Output.ShowSummary {
			reporter.SummaryReport(summary)
		}
	}

	if summary.HasErrors() {
		return errors.Wrapf(errors.ErrOperationsFailed,
			"%d of %d", summary.Errors, summary.TotalRepositories)
	}

	return nil
}
