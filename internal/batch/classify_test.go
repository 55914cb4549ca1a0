package batch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gittyup/gittyup/internal/domain"
)

func TestPatternMatcher(t *testing.T) {
	m := NewPatternMatcher("connection refused", "timeout")

	assert.True(t, m.Matches("fatal: Connection REFUSED by host"))
	assert.True(t, m.Matches("operation timeout"))
	assert.False(t, m.Matches("all good"))
	assert.False(t, NewPatternMatcher().Matches("anything"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		operation  string
		exitCode   int
		stdout     string
		stderr     string
		wantStatus domain.OperationStatus
		wantMsg    string
	}{
		{
			name:       "pull already up to date",
			operation:  "pull",
			stdout:     "Already up to date.",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Already up to date",
		},
		{
			name:       "pull hyphenated up to date",
			operation:  "pull",
			stdout:     "Already up-to-date.",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Already up to date",
		},
		{
			name:       "pull fast forward",
			operation:  "pull",
			stdout:     "Updating 1a2b3c..4d5e6f\nFast-forward\n file | 1 +",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Updated (fast-forward)",
		},
		{
			name:       "pull generic success",
			operation:  "pull",
			stdout:     "Merge made by the 'ort' strategy.",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Pull completed successfully",
		},
		{
			name:       "fetch success",
			operation:  "fetch",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Fetch completed successfully",
		},
		{
			name:       "status success",
			operation:  "status",
			stdout:     "## main...origin/main",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "Status retrieved successfully",
		},
		{
			name:       "custom operation success",
			operation:  "gc --prune=now",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "gc --prune=now completed successfully",
		},
		{
			name:       "nothing to commit",
			operation:  "commit",
			exitCode:   1,
			stderr:     "nothing to commit, working tree clean",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "No changes to commit",
		},
		{
			name:       "no changes",
			operation:  "pull",
			exitCode:   1,
			stderr:     "no changes found",
			wantStatus: domain.StatusSuccess,
			wantMsg:    "No changes",
		},
		{
			name:       "warning excerpt",
			operation:  "pull",
			exitCode:   1,
			stderr:     "warning: redirecting to https://example.com/repo.git/",
			wantStatus: domain.StatusWarning,
			wantMsg:    "Completed with warnings: warning: redirecting to https://example.com/repo.git/",
		},
		{
			name:       "not a git repository",
			operation:  "pull",
			exitCode:   128,
			stderr:     "fatal: not a git repository (or any of the parent directories): .git",
			wantStatus: domain.StatusError,
			wantMsg:    "Not a git repository",
		},
		{
			name:       "permission denied",
			operation:  "push",
			exitCode:   128,
			stderr:     "git@example.com: Permission denied (publickey).",
			wantStatus: domain.StatusError,
			wantMsg:    "Permission denied",
		},
		{
			name:       "dns failure",
			operation:  "fetch",
			exitCode:   128,
			stderr:     "fatal: unable to access 'https://x/': Could not resolve host: x",
			wantStatus: domain.StatusError,
			wantMsg:    "Network error: Could not resolve host",
		},
		{
			name:       "connection refused",
			operation:  "fetch",
			exitCode:   128,
			stderr:     "fatal: unable to access 'https://x/': Failed to connect: Connection refused",
			wantStatus: domain.StatusError,
			wantMsg:    "Network error: Connection refused",
		},
		{
			name:       "authentication failed",
			operation:  "pull",
			exitCode:   128,
			stderr:     "fatal: Authentication failed for 'https://example.com/repo.git/'",
			wantStatus: domain.StatusError,
			wantMsg:    "Authentication failed",
		},
		{
			name:       "merge conflict",
			operation:  "pull",
			exitCode:   1,
			stdout:     "CONFLICT (content): Merge conflict in main.go",
			wantStatus: domain.StatusError,
			wantMsg:    "Merge conflict detected",
		},
		{
			name:       "stdout fallback when stderr empty",
			operation:  "pull",
			exitCode:   2,
			stdout:     "something odd happened",
			wantStatus: domain.StatusError,
			wantMsg:    "Failed: something odd happened",
		},
		{
			name:       "no text at all",
			operation:  "pull",
			exitCode:   2,
			wantStatus: domain.StatusError,
			wantMsg:    "Failed: Unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Classify(tt.operation, tt.exitCode, tt.stdout, tt.stderr)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for range 3 {
		status, msg := Classify("pull", 0, "Already up to date.", "")
		assert.Equal(t, domain.StatusSuccess, status)
		assert.Equal(t, "Already up to date", msg)
	}
}

func TestClassify_TruncatesLongErrors(t *testing.T) {
	long := strings.Repeat("x", 500)

	_, msg := Classify("pull", 2, "", long)
	assert.Equal(t, "Failed: "+long[:200], msg)

	status, msg := Classify("pull", 1, "", "warning: "+long)
	assert.Equal(t, domain.StatusWarning, status)
	assert.Len(t, msg, len("Completed with warnings: ")+100)
}
