// Package cli provides the command-line interface for gittyup.
package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gittyup/gittyup/internal/config"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands. It is
// set during PersistentPreRunE and accessed via GetLogger. Access is
// protected by globalLoggerMu.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// This function MUST only be called after the root command's
// PersistentPreRunE has executed; before that it returns a zero-value
// logger that discards all output. Safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the gittyup CLI.
// The root command itself runs the scan-and-execute pipeline; subcommands
// cover scanning only and configuration management.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	syncFlags := &syncFlags{}

	cmd := &cobra.Command{
		Use:   "gittyup [path]",
		Short: "gittyup - keep all your git repositories up to date",
		Long: `gittyup discovers every git repository beneath a directory and applies a
git operation (pull, fetch, status, push, or a custom command) to each of
them, in parallel, with per-repository timeouts and a final summary.

Examples:
  gittyup                          # Pull all repositories under the current directory
  gittyup ~/projects               # Pull all repositories under ~/projects
  gittyup -O fetch ~/projects      # Fetch instead of pull
  gittyup -d 2 ~/projects          # Limit scan depth
  gittyup -e archive -e old        # Exclude directories
  gittyup --dry-run                # Show what would be done`,
		Version: formatVersion(info),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return runSync(cmd, flags, syncFlags, root)
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !IsValidOutputFormat(flags.Output) {
				return errors.Wrapf(errors.ErrInvalidOutputFormat,
					"%q must be one of %v", flags.Output, ValidOutputFormats())
			}

			tui.CheckNoColor()

			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet, config.DefaultConfig().Logging)
			globalLoggerMu.Unlock()

			return nil
		},
		// We print our own error messages; suppress cobra's usage dump.
		SilenceUsage: true,
	}

	AddGlobalFlags(cmd, flags)
	addSyncFlags(cmd, syncFlags)

	AddScanCommand(cmd, flags)
	AddConfigCommand(cmd, flags)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, info)
	defer CloseLogFile()
	return cmd.ExecuteContext(ctx)
}
