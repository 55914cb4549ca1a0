package config

import "time"

// DefaultQueryTimeout bounds each metadata sub-query during scanning.
const DefaultQueryTimeout = 10 * time.Second

// DefaultOperationTimeout bounds each individual git operation.
const DefaultOperationTimeout = 300 * time.Second

// DefaultMaxWorkers is the worker-pool size for parallel batches.
const DefaultMaxWorkers = 4

// DefaultExcludePatterns lists directory names that are almost never worth
// descending into: dependency trees, virtualenvs, and build output.
func DefaultExcludePatterns() []string {
	return []string{
		"node_modules",
		"venv",
		".venv",
		"env",
		".env",
		"__pycache__",
		".tox",
		".pytest_cache",
		".mypy_cache",
		"build",
		"dist",
		"target",
		"vendor",
	}
}

// DefaultConfig returns a new Config with sensible default values. These
// defaults are the base layer that config files, environment variables, and
// CLI flags override.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			// MaxDepth: 0 means unbounded. Deep monorepo checkouts
			// can set a limit to keep scans fast.
			MaxDepth:        0,
			FollowSymlinks:  true,
			ExcludePatterns: DefaultExcludePatterns(),
			QueryTimeout:    DefaultQueryTimeout,
		},
		Git: GitConfig{
			// Operation: "pull" is the canonical bulk-update use case.
			Operation: "pull",
			Timeout:   DefaultOperationTimeout,
		},
		Execution: ExecutionConfig{
			Parallel:   true,
			MaxWorkers: DefaultMaxWorkers,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowSummary: true,
		},
		Logging: LoggingConfig{
			Enabled:     true,
			MaxSizeMB:   10,
			BackupCount: 5,
		},
	}
}
