package batch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gittyup/gittyup/internal/domain"
)

// makeRepo fabricates a minimal .git directory layout and returns a
// Repository record pointing at it.
func makeRepo(t *testing.T, name string) domain.Repository {
	t.Helper()
	root := filepath.Join(t.TempDir(), name)
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref: refs/heads/main\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte("[core]\n"), 0o600))

	return domain.Repository{Path: root, Name: name, RemoteName: "origin"}
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		operation string
		want      []string
	}{
		{"pull", []string{"pull", "--no-rebase"}},
		{"fetch", []string{"fetch", "--all", "--prune"}},
		{"status", []string{"status", "--porcelain", "--branch"}},
		{"push", []string{"push"}},
		{"gc --prune=now", []string{"gc", "--prune=now"}},
	}

	for _, tt := range tests {
		t.Run(tt.operation, func(t *testing.T) {
			assert.Equal(t, tt.want, buildArgs(tt.operation))
		})
	}
}

func TestExecutor_ExecuteSingle(t *testing.T) {
	t.Run("dry run skips without invoking git", func(t *testing.T) {
		repo := makeRepo(t, "repo")
		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())

		result := e.ExecuteSingle(context.Background(), repo, "pull")

		assert.Equal(t, domain.StatusSkipped, result.Status)
		assert.Equal(t, "Would execute: git pull --no-rebase", result.Message)
		assert.Empty(t, result.Output)
		assert.Zero(t, result.ExitCode)
	})

	t.Run("vanished repository becomes error result", func(t *testing.T) {
		repo := makeRepo(t, "gone")
		require.NoError(t, os.RemoveAll(repo.Path))

		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())
		result := e.ExecuteSingle(context.Background(), repo, "pull")

		assert.Equal(t, domain.StatusError, result.Status)
		assert.Contains(t, result.Message, "not a valid git repository")
	})

	t.Run("dry run reports custom operations verbatim", func(t *testing.T) {
		repo := makeRepo(t, "repo")
		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())

		result := e.ExecuteSingle(context.Background(), repo, "remote prune origin")

		assert.Equal(t, domain.StatusSkipped, result.Status)
		assert.Equal(t, "Would execute: git remote prune origin", result.Message)
	})
}

func TestExecutor_ExecuteBatch(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		e := NewExecutor(Options{}, zerolog.Nop())
		summary := e.ExecuteBatch(context.Background(), nil, "pull")

		assert.Zero(t, summary.TotalRepositories)
		assert.NotEmpty(t, summary.RunID)
	})

	t.Run("sequential dry run", func(t *testing.T) {
		repos := []domain.Repository{makeRepo(t, "a"), makeRepo(t, "b"), makeRepo(t, "c")}
		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())

		summary := e.ExecuteBatch(context.Background(), repos, "fetch")

		require.Len(t, summary.Results, 3)
		assert.Equal(t, 3, summary.Skipped)
		assert.Equal(t, 3, summary.TotalRepositories)
		// Sequential execution preserves input order.
		for i, repo := range repos {
			assert.Equal(t, repo.Name, summary.Results[i].Repository.Name)
		}
	})

	t.Run("parallel dry run folds every result once", func(t *testing.T) {
		repos := make([]domain.Repository, 8)
		for i := range repos {
			repos[i] = makeRepo(t, "repo"+string(rune('a'+i)))
		}
		e := NewExecutor(Options{DryRun: true, Parallel: true, Workers: 3}, zerolog.Nop())

		summary := e.ExecuteBatch(context.Background(), repos, "pull")

		require.Len(t, summary.Results, 8)
		assert.Equal(t, 8, summary.Skipped)
		assert.Equal(t, summary.TotalRepositories,
			summary.Successful+summary.Warnings+summary.Errors+summary.Skipped)

		seen := map[string]bool{}
		for _, result := range summary.Results {
			assert.False(t, seen[result.Repository.Name], "duplicate result for %s", result.Repository.Name)
			seen[result.Repository.Name] = true
		}
	})

	t.Run("mixed outcomes", func(t *testing.T) {
		ok := makeRepo(t, "ok")
		gone := makeRepo(t, "gone")
		require.NoError(t, os.RemoveAll(gone.Path))

		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())
		summary := e.ExecuteBatch(context.Background(), []domain.Repository{ok, gone}, "pull")

		assert.Equal(t, 1, summary.Skipped)
		assert.Equal(t, 1, summary.Errors)
		assert.True(t, summary.HasErrors())
	})

	t.Run("canceled context stops submission", func(t *testing.T) {
		repos := []domain.Repository{makeRepo(t, "a"), makeRepo(t, "b")}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())
		summary := e.ExecuteBatch(ctx, repos, "pull")

		assert.Empty(t, summary.Results)
	})

	t.Run("wall clock duration is set", func(t *testing.T) {
		e := NewExecutor(Options{DryRun: true}, zerolog.Nop())
		summary := e.ExecuteBatch(context.Background(), []domain.Repository{makeRepo(t, "a")}, "pull")

		assert.Greater(t, summary.Duration, time.Duration(0))
	})
}

func TestExecutor_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script git stub")
	}

	repo := makeRepo(t, "slow")

	// A git stand-in that backgrounds a second sleeper, so the inherited
	// output pipes stay open after the timeout kills the direct child.
	stub := t.TempDir()
	script := "#!/bin/sh\nsleep 5 &\nsleep 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(stub, "git"), []byte(script), 0o700))
	t.Setenv("PATH", stub+string(os.PathListSeparator)+os.Getenv("PATH"))

	e := NewExecutor(Options{Timeout: 200 * time.Millisecond}, zerolog.Nop())

	start := time.Now()
	summary := e.ExecuteBatch(context.Background(), []domain.Repository{repo}, "pull")
	elapsed := time.Since(start)

	require.Len(t, summary.Results, 1)
	result := summary.Results[0]
	assert.Equal(t, domain.StatusTimeout, result.Status)
	assert.Contains(t, result.Message, "timed out after")
	assert.GreaterOrEqual(t, result.Duration, 200*time.Millisecond)

	assert.Equal(t, 1, summary.Errors)
	assert.True(t, summary.HasErrors())

	// The stub sleeps for 5s; a bounded wait must return well before that.
	assert.Less(t, elapsed, 4500*time.Millisecond)
}

func TestNewExecutor_Defaults(t *testing.T) {
	e := NewExecutor(Options{}, zerolog.Nop())
	assert.Equal(t, DefaultTimeout, e.opts.Timeout)
	assert.Equal(t, DefaultWorkers, e.opts.Workers)
}
