// Package batch runs git operations across many repositories.
// This file implements single and batch operation execution.
package batch

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/gittyup/gittyup/internal/domain"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/git"
)

// DefaultTimeout bounds a single git operation against one repository.
const DefaultTimeout = 300 * time.Second

// DefaultWorkers is the worker-pool size for parallel batches.
const DefaultWorkers = 4

// Options control batch execution.
type Options struct {
	// Timeout bounds each individual git operation. Non-positive values
	// fall back to DefaultTimeout.
	Timeout time.Duration

	// DryRun skips all git invocations, returning SKIPPED results.
	DryRun bool

	// Parallel dispatches operations to a worker pool instead of running
	// them sequentially in input order.
	Parallel bool

	// Workers is the pool size under Parallel. Non-positive values fall
	// back to DefaultWorkers.
	Workers int
}

// Executor applies one git operation across a set of repositories. Each
// repository gets exactly one subprocess invocation at a time; the pool
// bounds concurrent subprocesses overall.
type Executor struct {
	opts Options
	log  zerolog.Logger
}

// NewExecutor returns an Executor with the given options, normalizing
// non-positive timeout and worker values to their defaults.
func NewExecutor(opts Options, log zerolog.Logger) *Executor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	return &Executor{opts: opts, log: log}
}

// buildArgs maps an operation name to its git argument list. Unrecognized
// operations are split on whitespace and passed through verbatim.
func buildArgs(operation string) []string {
	switch operation {
	case "pull":
		return []string{"pull", "--no-rebase"}
	case "fetch":
		return []string{"fetch", "--all", "--prune"}
	case "status":
		return []string{"status", "--porcelain", "--branch"}
	case "push":
		return []string{"push"}
	default:
		return strings.Fields(operation)
	}
}

// ExecuteSingle runs one operation against one repository and always returns
// a result; operational failures become the result's status rather than an
// error. Duration is wall-clock from entry to return.
func (e *Executor) ExecuteSingle(ctx context.Context, repo domain.Repository, operation string) domain.OperationResult {
	start := time.Now()

	result := domain.OperationResult{
		Repository: repo,
		Operation:  operation,
	}

	// The repository may have been deleted or corrupted since the scan.
	if err := git.Validate(repo.Path); err != nil {
		result.Status = domain.StatusError
		result.Message = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	if e.opts.DryRun {
		result.Status = domain.StatusSkipped
		result.Message = "Would execute: git " + strings.Join(buildArgs(operation), " ")
		result.Duration = time.Since(start)
		return result
	}

	res, err := git.Run(ctx, repo.Path, e.opts.Timeout, buildArgs(operation)...)
	result.Duration = time.Since(start)

	switch {
	case err != nil && stderrors.Is(err, errors.ErrCommandTimeout):
		result.Status = domain.StatusTimeout
		result.Message = "Operation timed out after " + e.opts.Timeout.String()
	case err != nil:
		result.Status = domain.StatusError
		result.Message = err.Error()
	default:
		result.Output = res.Stdout
		result.Stderr = res.Stderr
		result.ExitCode = res.ExitCode
		result.Status, result.Message = Classify(operation, res.ExitCode, res.Stdout, res.Stderr)
	}

	e.log.Debug().
		Str("repository", repo.Name).
		Str("operation", operation).
		Str("status", string(result.Status)).
		Dur("duration", result.Duration).
		Msg("operation finished")

	return result
}

// ExecuteBatch runs the operation against every repository and folds each
// result into the summary exactly once. Under parallel execution results
// arrive in completion order; sequential execution preserves input order.
// The summary's Duration is wall-clock around the whole batch.
func (e *Executor) ExecuteBatch(ctx context.Context, repos []domain.Repository, operation string) *domain.ExecutionSummary {
	start := time.Now()
	summary := domain.NewExecutionSummary(uuid.NewString(), len(repos))

	if len(repos) == 0 {
		summary.Duration = time.Since(start)
		return summary
	}

	e.log.Info().
		Str("run_id", summary.RunID).
		Str("operation", operation).
		Int("repositories", len(repos)).
		Bool("parallel", e.opts.Parallel && len(repos) > 1).
		Msg("starting batch")

	if e.opts.Parallel && len(repos) > 1 {
		e.executeParallel(ctx, repos, operation, summary)
	} else {
		for _, repo := range repos {
			if ctx.Err() != nil {
				break
			}
			summary.Add(e.ExecuteSingle(ctx, repo, operation))
		}
	}

	summary.Duration = time.Since(start)
	return summary
}

// executeParallel fans the repositories out over a bounded worker pool and
// folds results as they complete. Workers never touch the summary; a single
// collecting goroutine owns all aggregation.
func (e *Executor) executeParallel(ctx context.Context, repos []domain.Repository, operation string, summary *domain.ExecutionSummary) {
	results := make(chan domain.OperationResult, len(repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	go func() {
		for _, repo := range repos {
			g.Go(func() error {
				if gctx.Err() != nil {
					return nil
				}
				results <- e.ExecuteSingle(gctx, repo, operation)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	for result := range results {
		summary.Add(result)
	}
}
