// Package git provides git operations for gittyup.
// This file implements repository metadata extraction: branch, remote,
// working-tree state, and ahead/behind counts.
package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gittyup/gittyup/internal/domain"
)

// DefaultQueryTimeout bounds each individual metadata sub-query. It is
// deliberately short and independent of the batch operation timeout.
const DefaultQueryTimeout = 10 * time.Second

// detachedPrefix marks a synthetic branch name for a detached HEAD.
const detachedPrefix = "detached@"

// Extractor gathers repository metadata by running several short git
// queries. Every sub-query is individually fault-tolerant: a failure yields
// a zero value for that field and never aborts the rest of the extraction.
// Only repository validation itself is fatal.
type Extractor struct {
	queryTimeout time.Duration
}

// NewExtractor returns an Extractor whose sub-queries are bounded by
// queryTimeout. A non-positive timeout falls back to DefaultQueryTimeout.
func NewExtractor(queryTimeout time.Duration) *Extractor {
	if queryTimeout <= 0 {
		queryTimeout = DefaultQueryTimeout
	}
	return &Extractor{queryTimeout: queryTimeout}
}

// Extract validates the repository at path and gathers its metadata into a
// domain.Repository. The returned record is complete even when individual
// queries fail; undetermined fields keep their zero values.
func (e *Extractor) Extract(ctx context.Context, path string) (*domain.Repository, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}

	repo := &domain.Repository{
		Path:       path,
		Name:       filepath.Base(path),
		RemoteName: "origin",
		IsBare:     IsBare(path),
	}
	repo.IsSubmodule = IsSubmodule(path)

	repo.Branch = e.currentBranch(ctx, path)

	url, name := e.remoteInfo(ctx, path)
	repo.RemoteURL = url
	repo.RemoteName = name

	// Bare repositories have no working tree to inspect.
	if !repo.IsBare {
		repo.HasUncommitted, repo.HasUntracked = e.workingTreeStatus(ctx, path)
	}

	if !repo.IsBare && repo.RemoteURL != "" && branchComparable(repo.Branch) {
		repo.Ahead, repo.Behind = e.aheadBehind(ctx, path, repo.Branch, repo.RemoteName)
	}

	repo.State = domain.DeriveState(
		repo.HasUncommitted, repo.HasUntracked,
		repo.Ahead, repo.Behind,
		repo.RemoteURL != "",
	)

	return repo, nil
}

// currentBranch returns the checked-out branch name, a detached@<shortsha>
// marker for a detached HEAD, or "" when undetermined.
func (e *Extractor) currentBranch(ctx context.Context, path string) string {
	out, err := Output(ctx, path, e.queryTimeout, "symbolic-ref", "--short", "HEAD")
	if err == nil && out != "" {
		return out
	}

	out, err = Output(ctx, path, e.queryTimeout, "rev-parse", "--short", "HEAD")
	if err == nil && out != "" {
		return detachedPrefix + out
	}

	return ""
}

// remoteInfo returns the URL and name of the primary remote. "origin" is
// preferred; otherwise the first configured remote is used. With no remotes
// at all the URL is empty and the name stays "origin".
func (e *Extractor) remoteInfo(ctx context.Context, path string) (url, name string) {
	name = "origin"

	out, err := Output(ctx, path, e.queryTimeout, "remote", "get-url", name)
	if err == nil && out != "" {
		return out, name
	}

	remotes, err := Output(ctx, path, e.queryTimeout, "remote")
	if err != nil || remotes == "" {
		return "", name
	}

	first := strings.SplitN(remotes, "\n", 2)[0]
	out, err = Output(ctx, path, e.queryTimeout, "remote", "get-url", first)
	if err == nil && out != "" {
		return out, first
	}

	return "", name
}

// workingTreeStatus parses porcelain status output into uncommitted and
// untracked flags. Any git failure reports a clean tree.
func (e *Extractor) workingTreeStatus(ctx context.Context, path string) (uncommitted, untracked bool) {
	res, err := Run(ctx, path, e.queryTimeout, "status", "--porcelain")
	if err != nil || res.ExitCode != 0 {
		return false, false
	}

	return ParsePorcelainStatus(res.Stdout)
}

// ParsePorcelainStatus scans `git status --porcelain` output. A line whose
// index column is one of M/A/D/R/C, or whose worktree column is M/D, marks
// uncommitted changes; a line starting with "??" marks untracked files.
func ParsePorcelainStatus(output string) (uncommitted, untracked bool) {
	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}

		index, worktree := line[0], line[1]

		if index == '?' && worktree == '?' {
			untracked = true
			continue
		}

		if strings.ContainsRune("MADRC", rune(index)) || strings.ContainsRune("MD", rune(worktree)) {
			uncommitted = true
		}
	}
	return uncommitted, untracked
}

// aheadBehind compares <remote>/<branch> against HEAD with a left-right
// commit count. Any failure yields 0/0.
func (e *Extractor) aheadBehind(ctx context.Context, path, branch, remote string) (ahead, behind int) {
	ref := fmt.Sprintf("%s/%s...HEAD", remote, branch)
	out, err := Output(ctx, path, e.queryTimeout, "rev-list", "--left-right", "--count", ref)
	if err != nil {
		return 0, 0
	}

	// Output format: "<behind><whitespace><ahead>".
	parts := strings.Fields(out)
	if len(parts) != 2 {
		return 0, 0
	}

	behind, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0
	}
	ahead, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0
	}

	return ahead, behind
}

// branchComparable reports whether branch names a real local branch that
// can be compared against a remote tracking ref.
func branchComparable(branch string) bool {
	return branch != "" && !strings.HasPrefix(branch, detachedPrefix)
}
