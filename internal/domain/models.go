// Package domain provides shared domain types for gittyup: discovered
// repositories, operation results, and the aggregates built from them.
package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RepositoryState describes the overall state of a repository relative to
// its working tree and remote.
type RepositoryState string

// Repository state constants. When several conditions hold at once, remote
// sync states win over local dirtiness, and NO_REMOTE is only reported when
// no sync comparison is possible.
const (
	StateClean    RepositoryState = "clean"
	StateDirty    RepositoryState = "dirty"
	StateAhead    RepositoryState = "ahead"
	StateBehind   RepositoryState = "behind"
	StateDiverged RepositoryState = "diverged"
	StateNoRemote RepositoryState = "no_remote"
	StateUnknown  RepositoryState = "unknown"
)

// String implements fmt.Stringer for convenient logging.
func (s RepositoryState) String() string {
	return string(s)
}

// DeriveState computes the repository state from the gathered working-tree
// booleans, ahead/behind counts, and remote presence. Sync drift is checked
// first, then local changes, then the missing-remote case.
func DeriveState(hasUncommitted, hasUntracked bool, ahead, behind int, hasRemote bool) RepositoryState {
	if hasRemote {
		switch {
		case ahead > 0 && behind > 0:
			return StateDiverged
		case behind > 0:
			return StateBehind
		case ahead > 0:
			return StateAhead
		}
	}

	if hasUncommitted || hasUntracked {
		return StateDirty
	}

	if !hasRemote {
		return StateNoRemote
	}

	return StateClean
}

// OperationStatus is the outcome classification of a single git operation.
type OperationStatus string

// Operation status constants.
const (
	StatusSuccess OperationStatus = "success"
	StatusWarning OperationStatus = "warning"
	StatusError   OperationStatus = "error"
	StatusSkipped OperationStatus = "skipped"
	StatusTimeout OperationStatus = "timeout"
)

// String implements fmt.Stringer for convenient logging.
func (s OperationStatus) String() string {
	return string(s)
}

// Repository identifies one discovered git repository and its metadata.
// Instances are created during scanning or metadata extraction and are
// immutable for the remainder of a scan/execute cycle.
type Repository struct {
	// Path is the absolute path to the repository root.
	Path string `json:"path"`

	// Name is the final path segment of Path.
	Name string `json:"name"`

	// Branch is the current branch name. For a detached HEAD it holds a
	// synthetic "detached@<shortsha>" marker; empty when undetermined.
	Branch string `json:"branch,omitempty"`

	// RemoteURL is the URL of the primary remote; empty when no remote
	// is configured.
	RemoteURL string `json:"remote_url,omitempty"`

	// RemoteName is the name of the primary remote. Defaults to "origin"
	// even when no remote exists.
	RemoteName string `json:"remote_name"`

	// HasUncommitted reports staged or unstaged modifications.
	HasUncommitted bool `json:"has_uncommitted"`

	// HasUntracked reports untracked files in the working tree.
	HasUntracked bool `json:"has_untracked"`

	// Ahead is the number of local commits missing from the remote branch.
	Ahead int `json:"ahead"`

	// Behind is the number of remote commits missing locally.
	Behind int `json:"behind"`

	// State is the derived overall state.
	State RepositoryState `json:"state"`

	// IsSubmodule is true when the repository is embedded in a parent
	// repository via .git/modules.
	IsSubmodule bool `json:"is_submodule"`

	// IsBare is true for repositories without a working tree.
	IsBare bool `json:"is_bare"`
}

// String returns "<name> (<path>)".
func (r Repository) String() string {
	return fmt.Sprintf("%s (%s)", r.Name, r.Path)
}

// DisplayPath returns the path with the home directory shortened to "~".
func (r Repository) DisplayPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return r.Path
	}
	rel, err := filepath.Rel(home, r.Path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return r.Path
	}
	return filepath.Join("~", rel)
}

// NeedsPull reports whether the repository is behind its remote.
func (r Repository) NeedsPull() bool {
	return r.Behind > 0
}

// NeedsPush reports whether the repository is ahead of its remote.
func (r Repository) NeedsPush() bool {
	return r.Ahead > 0
}

// IsClean reports whether the working tree has no local changes.
func (r Repository) IsClean() bool {
	return !r.HasUncommitted && !r.HasUntracked
}

// OperationResult is the outcome of running one operation against one
// repository. Created once per execution attempt and never mutated.
type OperationResult struct {
	// Repository is the repository the operation ran against.
	Repository Repository `json:"repository"`

	// Operation is the operation name (e.g. "pull", "fetch").
	Operation string `json:"operation"`

	// Status is the classified outcome.
	Status OperationStatus `json:"status"`

	// Message is a short human-readable description of the outcome.
	Message string `json:"message"`

	// Output is the raw standard output of the git command.
	Output string `json:"output,omitempty"`

	// Stderr is the raw standard error of the git command.
	Stderr string `json:"stderr,omitempty"`

	// Duration is the wall-clock time spent handling this repository.
	Duration time.Duration `json:"duration"`

	// ExitCode is the process exit code of the git command.
	ExitCode int `json:"exit_code"`
}

// String returns "<repo>: <operation> - <status>".
func (r OperationResult) String() string {
	return fmt.Sprintf("%s: %s - %s", r.Repository.Name, r.Operation, r.Status)
}

// IsSuccess reports whether the operation succeeded.
func (r OperationResult) IsSuccess() bool {
	return r.Status == StatusSuccess
}

// IsError reports whether the operation failed.
func (r OperationResult) IsError() bool {
	return r.Status == StatusError
}

// IsWarning reports whether the operation completed with warnings.
func (r OperationResult) IsWarning() bool {
	return r.Status == StatusWarning
}

// ScanResult is the output of one scan pass. It is owned exclusively by the
// call that produced it.
type ScanResult struct {
	// Repositories holds the discovered repositories. A full Scan sorts
	// them by path; ScanPaths keeps input order.
	Repositories []Repository `json:"repositories"`

	// DirsVisited is the number of directories read during the scan.
	DirsVisited int `json:"dirs_visited"`

	// Duration is the wall-clock scan time.
	Duration time.Duration `json:"duration"`

	// Errors holds recovered per-directory errors (permission and other
	// OS failures) that did not abort the scan.
	Errors []string `json:"errors,omitempty"`
}

// Len returns the number of repositories found.
func (s *ScanResult) Len() int {
	return len(s.Repositories)
}

// HasErrors reports whether any recoverable errors occurred while scanning.
func (s *ScanResult) HasErrors() bool {
	return len(s.Errors) > 0
}

// ExecutionSummary aggregates the results of one batch run. Results are
// folded in exactly once each via Add; under parallel execution the order
// of Results is completion order, not submission order.
type ExecutionSummary struct {
	// RunID uniquely identifies this batch run in logs.
	RunID string `json:"run_id"`

	// Results holds every per-repository outcome.
	Results []OperationResult `json:"results"`

	// TotalRepositories is the number of repositories handed to the batch.
	TotalRepositories int `json:"total_repositories"`

	// Successful, Warnings, Errors and Skipped count outcomes by status.
	// TIMEOUT results are counted as errors.
	Successful int `json:"successful"`
	Warnings   int `json:"warnings"`
	Errors     int `json:"errors"`
	Skipped    int `json:"skipped"`

	// Duration is the authoritative wall-clock time for the whole batch.
	Duration time.Duration `json:"duration"`

	// ResultsDuration is the sum of per-result durations. Under parallel
	// execution it exceeds Duration and is exposed for diagnostics only.
	ResultsDuration time.Duration `json:"results_duration"`
}

// NewExecutionSummary returns an empty summary for a batch of total
// repositories identified by runID.
func NewExecutionSummary(runID string, total int) *ExecutionSummary {
	return &ExecutionSummary{
		RunID:             runID,
		Results:           make([]OperationResult, 0, total),
		TotalRepositories: total,
	}
}

// Add folds one completed result into the summary. Exactly one status
// counter is incremented per call.
func (s *ExecutionSummary) Add(result OperationResult) {
	s.Results = append(s.Results, result)
	s.ResultsDuration += result.Duration

	switch result.Status {
	case StatusSuccess:
		s.Successful++
	case StatusWarning:
		s.Warnings++
	case StatusError, StatusTimeout:
		s.Errors++
	case StatusSkipped:
		s.Skipped++
	}
}

// SuccessRate returns the percentage of successful operations, 0 when the
// batch was empty.
func (s *ExecutionSummary) SuccessRate() float64 {
	if s.TotalRepositories == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.TotalRepositories) * 100
}

// HasErrors reports whether any operation failed or timed out.
func (s *ExecutionSummary) HasErrors() bool {
	return s.Errors > 0
}

// HasWarnings reports whether any operation completed with warnings.
func (s *ExecutionSummary) HasWarnings() bool {
	return s.Warnings > 0
}
