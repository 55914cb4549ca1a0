// Package config provides configuration management for gittyup with layered
// precedence.
//
// Configuration sources are loaded in the following order (highest precedence
// first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (GITTYUP_* prefix)
//  3. Project config (.gittyup.yaml in the working directory)
//  4. Global config (~/.gittyup/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/errors, but MUST NOT import
// internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for gittyup.
type Config struct {
	// Scan contains settings for repository discovery.
	Scan ScanConfig `yaml:"scan" mapstructure:"scan"`

	// Git contains settings for git command execution.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Execution contains settings for batch execution.
	Execution ExecutionConfig `yaml:"execution" mapstructure:"execution"`

	// Output contains settings for terminal output.
	Output OutputConfig `yaml:"output" mapstructure:"output"`

	// Logging contains settings for the rotating file log.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ScanConfig contains settings for repository discovery.
type ScanConfig struct {
	// MaxDepth limits how many directory levels below the root are
	// entered. Zero means unbounded.
	MaxDepth int `yaml:"max_depth" mapstructure:"max_depth"`

	// FollowSymlinks enables traversal through symlinked directories.
	// Default: true
	FollowSymlinks bool `yaml:"follow_symlinks" mapstructure:"follow_symlinks"`

	// ExcludePatterns skips directories whose name matches a pattern
	// exactly or whose path contains it as a substring.
	ExcludePatterns []string `yaml:"exclude_patterns" mapstructure:"exclude_patterns"`

	// QueryTimeout bounds each metadata sub-query during scanning.
	// Default: 10s
	QueryTimeout time.Duration `yaml:"query_timeout" mapstructure:"query_timeout"`
}

// GitConfig contains settings for git command execution.
type GitConfig struct {
	// Operation is the default operation applied to discovered
	// repositories. Default: "pull"
	Operation string `yaml:"operation" mapstructure:"operation"`

	// Timeout bounds each individual git operation. Default: 300s
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ExecutionConfig contains settings for batch execution.
type ExecutionConfig struct {
	// Parallel dispatches operations to a worker pool. Default: true
	Parallel bool `yaml:"parallel" mapstructure:"parallel"`

	// MaxWorkers is the worker-pool size under Parallel. Default: 4
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`
}

// OutputConfig contains settings for terminal output.
type OutputConfig struct {
	// Format selects the output renderer: "text" or "json".
	// Default: "text"
	Format string `yaml:"format" mapstructure:"format"`

	// ShowSummary prints the aggregate summary block after a batch run.
	// Default: true
	ShowSummary bool `yaml:"show_summary" mapstructure:"show_summary"`
}

// LoggingConfig contains settings for the rotating file log.
type LoggingConfig struct {
	// Enabled turns the file log on. Default: true
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// MaxSizeMB is the size at which the log file rotates. Default: 10
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// BackupCount is how many rotated files are kept. Default: 5
	BackupCount int `yaml:"backup_count" mapstructure:"backup_count"`
}
