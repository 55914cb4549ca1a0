package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gittyup/gittyup/internal/domain"
	"github.com/gittyup/gittyup/internal/errors"
)

func TestParsePorcelainStatus(t *testing.T) {
	tests := []struct {
		name          string
		output        string
		wantUncommit  bool
		wantUntracked bool
	}{
		{name: "empty output", output: ""},
		{name: "modified in index", output: "M  file.go", wantUncommit: true},
		{name: "modified in worktree", output: " M file.go", wantUncommit: true},
		{name: "added", output: "A  new.go", wantUncommit: true},
		{name: "deleted in worktree", output: " D gone.go", wantUncommit: true},
		{name: "renamed", output: "R  old.go -> new.go", wantUncommit: true},
		{name: "copied", output: "C  a.go -> b.go", wantUncommit: true},
		{name: "untracked only", output: "?? scratch.txt", wantUntracked: true},
		{
			name:          "mixed",
			output:        "M  file.go\n?? scratch.txt\n",
			wantUncommit:  true,
			wantUntracked: true,
		},
		{name: "short line ignored", output: "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uncommitted, untracked := ParsePorcelainStatus(tt.output)
			assert.Equal(t, tt.wantUncommit, uncommitted, "uncommitted")
			assert.Equal(t, tt.wantUntracked, untracked, "untracked")
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("invalid repository is fatal", func(t *testing.T) {
		e := NewExtractor(0)
		_, err := e.Extract(context.Background(), t.TempDir())
		require.ErrorIs(t, err, errors.ErrInvalidRepository)
	})

	t.Run("clean repository without remote", func(t *testing.T) {
		dir := initRepo(t)
		e := NewExtractor(30 * time.Second)

		repo, err := e.Extract(context.Background(), dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Base(dir), repo.Name)
		assert.Equal(t, "main", repo.Branch)
		assert.Empty(t, repo.RemoteURL)
		assert.Equal(t, "origin", repo.RemoteName)
		assert.False(t, repo.HasUncommitted)
		assert.False(t, repo.HasUntracked)
		assert.Equal(t, domain.StateNoRemote, repo.State)
	})

	t.Run("untracked file marks dirty state", func(t *testing.T) {
		dir := initRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o600))
		e := NewExtractor(30 * time.Second)

		repo, err := e.Extract(context.Background(), dir)
		require.NoError(t, err)

		assert.True(t, repo.HasUntracked)
		assert.Equal(t, domain.StateDirty, repo.State)
	})

	t.Run("detached head", func(t *testing.T) {
		dir := initRepo(t)
		ctx := context.Background()

		sha, err := Output(ctx, dir, 30*time.Second, "rev-parse", "HEAD")
		require.NoError(t, err)
		res, err := Run(ctx, dir, 30*time.Second, "checkout", "--detach", sha)
		require.NoError(t, err)
		require.Zero(t, res.ExitCode, res.Stderr)

		e := NewExtractor(30 * time.Second)
		repo, err := e.Extract(ctx, dir)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(repo.Branch, "detached@"), "branch %q", repo.Branch)
	})

	t.Run("named remote is reported", func(t *testing.T) {
		dir := initRepo(t)
		ctx := context.Background()

		res, err := Run(ctx, dir, 30*time.Second, "remote", "add", "upstream", "https://example.com/repo.git")
		require.NoError(t, err)
		require.Zero(t, res.ExitCode, res.Stderr)

		e := NewExtractor(30 * time.Second)
		repo, err := e.Extract(ctx, dir)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/repo.git", repo.RemoteURL)
		assert.Equal(t, "upstream", repo.RemoteName)
	})

	t.Run("ahead of remote tracking branch", func(t *testing.T) {
		// A local clone of a local bare remote gives real tracking refs
		// without touching the network.
		requireGit(t)
		ctx := context.Background()
		base := t.TempDir()

		remote := filepath.Join(base, "remote.git")
		res, err := Run(ctx, base, 30*time.Second, "init", "--bare", "--initial-branch=main", remote)
		require.NoError(t, err)
		require.Zero(t, res.ExitCode, res.Stderr)

		clone := filepath.Join(base, "clone")
		res, err = Run(ctx, base, 30*time.Second, "clone", remote, clone)
		require.NoError(t, err)
		require.Zero(t, res.ExitCode, res.Stderr)

		for _, args := range [][]string{
			{"config", "user.email", "test@example.com"},
			{"config", "user.name", "Test"},
			{"commit", "--allow-empty", "-m", "first"},
			{"push", "origin", "main"},
			{"commit", "--allow-empty", "-m", "second"},
		} {
			res, err = Run(ctx, clone, 30*time.Second, args...)
			require.NoError(t, err)
			require.Zero(t, res.ExitCode, "git %v: %s", args, res.Stderr)
		}

		e := NewExtractor(30 * time.Second)
		repo, err := e.Extract(ctx, clone)
		require.NoError(t, err)

		assert.Equal(t, 1, repo.Ahead)
		assert.Zero(t, repo.Behind)
		assert.Equal(t, domain.StateAhead, repo.State)
	})
}

func TestNewExtractor_DefaultTimeout(t *testing.T) {
	e := NewExtractor(0)
	assert.Equal(t, DefaultQueryTimeout, e.queryTimeout)
}
