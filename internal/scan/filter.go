// Package scan discovers git repositories under a directory tree.
// This file implements the exclusion filter applied during traversal.
package scan

import "strings"

// ShouldExclude reports whether a directory should be skipped during
// traversal. A pattern matches when it equals the directory's base name or
// appears as a substring of the full path. Matching is case-sensitive and
// an empty pattern never matches.
func ShouldExclude(path, name string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if pattern == name || strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}
