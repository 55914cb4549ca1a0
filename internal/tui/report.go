// Package tui provides terminal output components for gittyup.
// This file renders scan results and execution summaries.
package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/gittyup/gittyup/internal/domain"
	"github.com/gittyup/gittyup/internal/logging"
)

// Reporter renders scan and execution results to a terminal. Verbose adds
// per-repository detail; Quiet suppresses everything except errors. Styled
// leaf messages go through an Output; tables and plain lines write to w
// directly.
type Reporter struct {
	w       io.Writer
	out     Output
	styles  *OutputStyles
	Verbose bool
	Quiet   bool
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, verbose, quiet bool) *Reporter {
	return &Reporter{
		w:       w,
		out:     NewTTYOutput(w),
		styles:  NewOutputStyles(),
		Verbose: verbose,
		Quiet:   quiet,
	}
}

// Info displays an informational message unless quiet.
func (r *Reporter) Info(msg string) {
	if !r.Quiet {
		_, _ = fmt.Fprintln(r.w, msg)
	}
}

// Success displays a success message in green unless quiet.
func (r *Reporter) Success(msg string) {
	if !r.Quiet {
		r.out.Success(msg)
	}
}

// Warning displays a warning message in yellow unless quiet.
func (r *Reporter) Warning(msg string) {
	if !r.Quiet {
		r.out.Warning(msg)
	}
}

// Error displays an error message in red; errors print even when quiet.
func (r *Reporter) Error(msg string) {
	r.out.Error(errors.New(msg))
}

// VerboseInfo displays a dimmed message only in verbose mode.
func (r *Reporter) VerboseInfo(msg string) {
	if r.Verbose && !r.Quiet {
		_, _ = fmt.Fprintln(r.w, r.styles.Dim.Render(msg))
	}
}

// ScanReport prints the outcome of a repository scan.
func (r *Reporter) ScanReport(result *domain.ScanResult) {
	noun := "repositories"
	if result.Len() == 1 {
		noun = "repository"
	}
	r.Success(fmt.Sprintf("Found %d git %s", result.Len(), noun))

	if r.Verbose {
		for _, repo := range result.Repositories {
			r.VerboseInfo("  • " + repo.DisplayPath())
		}
	}

	for _, scanErr := range result.Errors {
		r.Warning("scan: " + scanErr)
	}
}

// RepositoryTable prints one row per repository with branch, state, and
// sync drift.
func (r *Reporter) RepositoryTable(repos []domain.Repository) {
	if r.Quiet {
		return
	}

	table := NewTable(r.w, []TableColumn{
		{Name: "REPOSITORY", Width: 28},
		{Name: "BRANCH", Width: 20},
		{Name: "STATE", Width: 12},
		{Name: "SYNC", Width: 8},
		{Name: "REMOTE", Width: 40},
	})
	table.WriteHeader()

	for _, repo := range repos {
		sync := ""
		if repo.Ahead > 0 {
			sync += fmt.Sprintf("↑%d", repo.Ahead)
		}
		if repo.Behind > 0 {
			sync += fmt.Sprintf("↓%d", repo.Behind)
		}

		table.WriteRow(
			repo.Name,
			repo.Branch,
			StateIcon(repo.State)+" "+string(repo.State),
			sync,
			logging.SanitizeRemoteURL(repo.RemoteURL),
		)
	}
}

// ResultLine prints a single operation result with its status icon.
func (r *Reporter) ResultLine(result domain.OperationResult) {
	line := fmt.Sprintf("  %s %s: %s",
		StatusIcon(result.Status), result.Repository.Name, result.Message)

	switch {
	case result.IsError():
		r.Error(result.Repository.Name + ": " + result.Message)
	case result.IsWarning():
		r.Warning(result.Repository.Name + ": " + result.Message)
	case r.Verbose:
		r.Info(line)
	}
}

// SummaryReport prints the aggregate block after a batch run.
func (r *Reporter) SummaryReport(summary *domain.ExecutionSummary) {
	if r.Quiet {
		if summary.Errors > 0 {
			r.Error(fmt.Sprintf("%d of %d operations failed", summary.Errors, summary.TotalRepositories))
		}
		return
	}

	r.Info("")
	r.Info(r.styles.Bold.Render("Summary:"))
	r.Success(fmt.Sprintf("  Successful: %d", summary.Successful))
	if summary.Warnings > 0 {
		r.Warning(fmt.Sprintf("  Warnings: %d", summary.Warnings))
	}
	if summary.Errors > 0 {
		r.Error(fmt.Sprintf("  Errors: %d", summary.Errors))
	}
	if summary.Skipped > 0 {
		r.Info(fmt.Sprintf("  - Skipped: %d", summary.Skipped))
	}
	r.Info(fmt.Sprintf("  Duration: %.2fs", summary.Duration.Seconds()))

	if r.Verbose {
		r.Info("\nDetailed results:")
		for _, result := range summary.Results {
			line := fmt.Sprintf("  %s %s: %s", StatusIcon(result.Status), result.Repository.Name, result.Message)
			_, _ = fmt.Fprintln(r.w, StatusStyle(r.styles, result.Status).Render(line))
		}
	}
}
