// Package batch runs git operations across many repositories.
// This file contains the heuristic result classification.
package batch

import (
	"fmt"
	"strings"

	"github.com/gittyup/gittyup/internal/domain"
)

// PatternMatcher checks if a string contains any of a list of patterns.
// It performs case-insensitive matching on the lowercased input.
type PatternMatcher struct {
	patterns []string
}

// NewPatternMatcher creates a new PatternMatcher with the given patterns.
// All patterns should be lowercase for consistent matching.
func NewPatternMatcher(patterns ...string) *PatternMatcher {
	return &PatternMatcher{patterns: patterns}
}

// Matches returns true if the input string contains any of the patterns.
// The input is lowercased before matching.
func (m *PatternMatcher) Matches(s string) bool {
	return m.MatchesLower(strings.ToLower(s))
}

// MatchesLower checks if an already-lowercased string matches any pattern.
func (m *PatternMatcher) MatchesLower(lower string) bool {
	for _, pattern := range m.patterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// errorRule pairs a predicate over lowercased error text with the message it
// produces. Rules are evaluated top to bottom; the first match wins.
type errorRule struct {
	match   func(lower string) bool
	message string
}

// Git output pattern matchers, shared across classifications.
//
//nolint:gochecknoglobals // Package-level immutable pattern matchers for performance
var (
	upToDatePatterns    = NewPatternMatcher("already up to date", "already up-to-date")
	fastForwardPatterns = NewPatternMatcher("fast-forward")

	nothingToCommitPatterns = NewPatternMatcher("nothing to commit")
	noChangesPatterns       = NewPatternMatcher("no changes")
	warningPatterns         = NewPatternMatcher("warning", "hint", "suggestion")

	// errorRules are checked in priority order against stderr, falling
	// back to stdout when stderr is empty.
	errorRules = []errorRule{
		{NewPatternMatcher("not a git repository").MatchesLower, "Not a git repository"},
		{NewPatternMatcher("permission denied").MatchesLower, "Permission denied"},
		{NewPatternMatcher("could not resolve host").MatchesLower, "Network error: Could not resolve host"},
		{
			func(lower string) bool {
				return strings.Contains(lower, "connection") && strings.Contains(lower, "refused")
			},
			"Network error: Connection refused",
		},
		{NewPatternMatcher("authentication failed").MatchesLower, "Authentication failed"},
		{NewPatternMatcher("conflict").MatchesLower, "Merge conflict detected"},
	}
)

// Classify maps one finished git invocation to a status and message. The
// rules mirror git's textual conventions and are evaluated top to bottom.
func Classify(operation string, exitCode int, stdout, stderr string) (domain.OperationStatus, string) {
	if exitCode == 0 {
		return domain.StatusSuccess, successMessage(operation, stdout)
	}

	// Exit code 1 covers several non-critical outcomes.
	if exitCode == 1 && stderr != "" {
		lowerErr := strings.ToLower(stderr)
		switch {
		case nothingToCommitPatterns.MatchesLower(lowerErr):
			return domain.StatusSuccess, "No changes to commit"
		case noChangesPatterns.MatchesLower(lowerErr):
			return domain.StatusSuccess, "No changes"
		case warningPatterns.MatchesLower(lowerErr):
			return domain.StatusWarning, "Completed with warnings: " + truncate(stderr, 100)
		}
	}

	errText := stderr
	if errText == "" {
		errText = stdout
	}
	lower := strings.ToLower(errText)

	for _, rule := range errorRules {
		if rule.match(lower) {
			return domain.StatusError, rule.message
		}
	}

	if errText == "" {
		return domain.StatusError, "Failed: Unknown error"
	}
	return domain.StatusError, "Failed: " + truncate(errText, 200)
}

// successMessage refines a zero-exit result by operation and output content.
func successMessage(operation, stdout string) string {
	lower := strings.ToLower(stdout)

	switch operation {
	case "pull":
		switch {
		case upToDatePatterns.MatchesLower(lower):
			return "Already up to date"
		case fastForwardPatterns.MatchesLower(lower):
			return "Updated (fast-forward)"
		default:
			return "Pull completed successfully"
		}
	case "fetch":
		return "Fetch completed successfully"
	case "status":
		return "Status retrieved successfully"
	default:
		return fmt.Sprintf("%s completed successfully", operation)
	}
}

// truncate caps s at n bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
