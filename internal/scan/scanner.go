// Package scan discovers git repositories under a directory tree.
// This file implements the recursive scanner itself.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/gittyup/gittyup/internal/domain"
	"github.com/gittyup/gittyup/internal/errors"
	"github.com/gittyup/gittyup/internal/git"
	"github.com/gittyup/gittyup/internal/logging"
)

// metadataExtractor gathers repository metadata for a discovered path.
type metadataExtractor interface {
	Extract(ctx context.Context, path string) (*domain.Repository, error)
}

// Options control traversal behavior.
type Options struct {
	// MaxDepth limits how many directory levels below the root are
	// entered. Zero or negative means unbounded.
	MaxDepth int

	// ExcludePatterns skips directories whose name matches a pattern
	// exactly or whose path contains it as a substring.
	ExcludePatterns []string

	// FollowSymlinks enables traversal through symlinked directories.
	// Resolved targets are tracked so cycles terminate.
	FollowSymlinks bool

	// SkipMetadata records discovered repositories with path and name
	// only, skipping all git queries. Useful for fast enumeration.
	SkipMetadata bool

	// QueryTimeout bounds each metadata sub-query.
	QueryTimeout time.Duration
}

// Scanner walks a directory tree collecting git repositories. Discovery is
// depth-first and never descends into a repository once found, so nested
// repositories under a parent repository are not reported.
type Scanner struct {
	opts      Options
	extractor metadataExtractor
	log       zerolog.Logger
}

// New returns a Scanner with the given options.
func New(opts Options, log zerolog.Logger) *Scanner {
	return &Scanner{
		opts:      opts,
		extractor: git.NewExtractor(opts.QueryTimeout),
		log:       log,
	}
}

// Scan walks the tree rooted at root and returns every repository found.
// Unreadable directories are recorded in the result's Errors and do not
// abort the scan. The returned repositories are sorted by path.
func (s *Scanner) Scan(ctx context.Context, root string) (*domain.ScanResult, error) {
	start := time.Now()

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "%s", root)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "%s", abs)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "%s is not a directory", abs)
	}

	result := &domain.ScanResult{}

	// The root being a repository short-circuits the walk entirely.
	if git.IsRepository(abs) {
		result.DirsVisited = 1
		s.collect(ctx, abs, result)
		result.Duration = time.Since(start)
		return result, nil
	}

	visited := map[string]struct{}{}
	s.walk(ctx, abs, 0, visited, result)

	sort.Slice(result.Repositories, func(i, j int) bool {
		return result.Repositories[i].Path < result.Repositories[j].Path
	})

	result.Duration = time.Since(start)

	s.log.Debug().
		Int("repositories", result.Len()).
		Int("dirs_visited", result.DirsVisited).
		Dur("duration", result.Duration).
		Msg("scan complete")

	return result, nil
}

// ScanPaths checks each explicitly named path and collects those that are
// repositories. No traversal happens; paths that fail validation are
// recorded as errors.
func (s *Scanner) ScanPaths(ctx context.Context, paths []string) *domain.ScanResult {
	start := time.Now()
	result := &domain.ScanResult{}

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, path+": "+err.Error())
			continue
		}

		result.DirsVisited++

		if err := git.Validate(abs); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		s.collect(ctx, abs, result)
	}

	result.Duration = time.Since(start)
	return result
}

func (s *Scanner) walk(ctx context.Context, dir string, depth int, visited map[string]struct{}, result *domain.ScanResult) {
	if ctx.Err() != nil {
		return
	}

	result.DirsVisited++

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.Errors = append(result.Errors, dir+": "+err.Error())
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			if !s.opts.FollowSymlinks {
				continue
			}

			resolved, rerr := filepath.EvalSymlinks(path)
			if rerr != nil {
				result.Errors = append(result.Errors, path+": "+rerr.Error())
				continue
			}

			target, serr := os.Stat(resolved)
			if serr != nil || !target.IsDir() {
				continue
			}

			if _, seen := visited[resolved]; seen {
				s.log.Debug().Str("path", path).Msg("symlink cycle detected, skipping")
				continue
			}
			visited[resolved] = struct{}{}
			isDir = true
		}

		if !isDir {
			continue
		}

		if ShouldExclude(path, name, s.opts.ExcludePatterns) {
			s.log.Debug().Str("path", path).Msg("excluded by pattern")
			continue
		}

		if git.IsRepository(path) {
			s.collect(ctx, path, result)
			continue
		}

		if s.opts.MaxDepth > 0 && depth+1 >= s.opts.MaxDepth {
			continue
		}

		s.walk(ctx, path, depth+1, visited, result)
	}
}

// collect records a repository, extracting metadata unless SkipMetadata is
// set. Extraction failures are recorded but never abort the scan.
func (s *Scanner) collect(ctx context.Context, path string, result *domain.ScanResult) {
	if s.opts.SkipMetadata {
		result.Repositories = append(result.Repositories, domain.Repository{
			Path:        path,
			Name:        filepath.Base(path),
			RemoteName:  "origin",
			State:       domain.StateUnknown,
			IsBare:      git.IsBare(path),
			IsSubmodule: git.IsSubmodule(path),
		})
		return
	}

	repo, err := s.extractor.Extract(ctx, path)
	if err != nil {
		result.Errors = append(result.Errors, path+": "+err.Error())
		return
	}

	s.log.Debug().
		Str("path", path).
		Str("branch", repo.Branch).
		Str("remote", logging.RedactIfSensitive("remote_url", repo.RemoteURL)).
		Msg("repository found")

	result.Repositories = append(result.Repositories, *repo)
}
