// Package git provides git operations for gittyup.
// This file provides repository detection based purely on filesystem layout,
// without spawning git. Detection covers standard repositories, worktrees,
// bare repositories, and submodules.
package git

import (
	"os"
	"path/filepath"
	"strings"

	gerrors "github.com/gittyup/gittyup/internal/errors"
)

// gitdirPrefix is the marker at the start of a .git file that points a
// worktree or submodule at its real git directory.
const gitdirPrefix = "gitdir: "

// IsRepository reports whether path is a git repository. Detection order,
// first match wins:
//  1. path/.git is a directory containing HEAD, config, and refs.
//  2. path/.git is a file starting with "gitdir: " (worktree/submodule).
//  3. path itself contains HEAD, config, and refs, and config declares
//     "bare = true" (bare repository).
//
// A .git directory missing any of HEAD/config/refs is NOT a repository;
// this guards against half-initialized or placeholder directories.
func IsRepository(path string) bool {
	gitPath := filepath.Join(path, ".git")

	if info, err := os.Stat(gitPath); err == nil {
		if info.IsDir() {
			return hasAdminFiles(gitPath)
		}
		return hasGitdirPointer(gitPath)
	}

	return isBareLayout(path)
}

// Validate checks that path is a git repository and returns an
// ErrInvalidRepository error naming the path and reason otherwise.
func Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return gerrors.Wrapf(gerrors.ErrInvalidRepository, "path does not exist: %s", path)
	}
	if !info.IsDir() {
		return gerrors.Wrapf(gerrors.ErrInvalidRepository, "path is not a directory: %s", path)
	}
	if !IsRepository(path) {
		return gerrors.Wrapf(gerrors.ErrInvalidRepository, "no git repository found at: %s", path)
	}
	return nil
}

// IsBare reports whether path is a bare repository: the administrative
// files live directly in path and config declares bare = true.
func IsBare(path string) bool {
	return isBareLayout(path)
}

// IsSubmodule reports whether path is a git submodule: its .git entry is a
// file whose gitdir pointer leads into a parent's .git/modules area. A
// worktree pointer lacks the modules segment and does not match.
func IsSubmodule(path string) bool {
	gitPath := filepath.Join(path, ".git")

	info, err := os.Stat(gitPath)
	if err != nil || info.IsDir() {
		return false
	}

	content, err := os.ReadFile(gitPath) //#nosec G304 -- path comes from directory traversal
	if err != nil {
		return false
	}

	text := string(content)
	return strings.Contains(text, gitdirPrefix) && strings.Contains(text, "/.git/modules/")
}

// hasAdminFiles reports whether dir directly contains HEAD, config and refs.
func hasAdminFiles(dir string) bool {
	for _, name := range []string{"HEAD", "config", "refs"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// hasGitdirPointer reports whether the file at path starts with "gitdir: ".
func hasGitdirPointer(path string) bool {
	content, err := os.ReadFile(path) //#nosec G304 -- path comes from directory traversal
	if err != nil {
		return false
	}
	return strings.HasPrefix(string(content), gitdirPrefix)
}

// isBareLayout checks the bare-repository layout on path itself.
func isBareLayout(path string) bool {
	if !hasAdminFiles(path) {
		return false
	}
	content, err := os.ReadFile(filepath.Join(path, "config")) //#nosec G304 -- path comes from directory traversal
	if err != nil {
		return false
	}
	return strings.Contains(string(content), "bare = true")
}
