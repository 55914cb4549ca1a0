// Package git provides git operations for gittyup.
// This file provides shared git command execution utilities. All operations
// shell out to the external git binary; gittyup never touches git's object
// model directly.
package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	gerrors "github.com/gittyup/gittyup/internal/errors"
)

// pipeWaitDelay bounds how long Run waits for the output pipes to close
// after the context kills git. git hands its stdout/stderr to helper
// processes (git-remote-https, ssh) that survive the kill of their parent;
// without a delay Wait would block until every helper exits.
const pipeWaitDelay = 3 * time.Second

// Result holds the captured outcome of one git invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes `git -C <dir> <args...>` with the given timeout and returns
// the captured output and exit code. A non-zero exit code is NOT an error:
// callers classify exit codes themselves. Run returns an error only when
// the command could not be started, the context was canceled, or the
// timeout expired (wrapped with ErrCommandTimeout).
func Run(ctx context.Context, dir string, timeout time.Duration, args ...string) (Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	full := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...) //#nosec G204 -- args are constructed internally, not user input
	cmd.WaitDelay = pipeWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
			return res, gerrors.Wrapf(gerrors.ErrCommandTimeout, "git %s exceeded %s", args[0], timeout)
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, gerrors.Wrapf(err, "git %s", args[0])
	}

	return res, nil
}

// Output runs a git command and returns its trimmed stdout. It converts a
// non-zero exit into an ErrGitOperation error carrying stderr, for callers
// that only care about success/failure.
func Output(ctx context.Context, dir string, timeout time.Duration, args ...string) (string, error) {
	res, err := Run(ctx, dir, timeout, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		detail := strings.TrimSpace(res.Stderr)
		if detail == "" {
			return "", gerrors.Wrapf(gerrors.ErrGitOperation, "git %s exited %d", args[0], res.ExitCode)
		}
		return "", gerrors.Wrapf(gerrors.ErrGitOperation, "git %s: %s", args[0], detail)
	}
	return strings.TrimSpace(res.Stdout), nil
}
