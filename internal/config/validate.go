package config

import (
	"strings"

	"github.com/gittyup/gittyup/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values and
// returns an error describing the first failure found.
//
// Validation rules:
//   - scan.max_depth must not be negative
//   - scan.query_timeout must be positive
//   - git.operation must not be empty
//   - git.timeout must be positive
//   - execution.max_workers must be positive
//   - output.format must be "text" or "json"
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	if cfg.Scan.MaxDepth < 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"scan.max_depth must not be negative, got %d", cfg.Scan.MaxDepth)
	}
	if cfg.Scan.QueryTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"scan.query_timeout must be positive, got %s", cfg.Scan.QueryTimeout)
	}

	if strings.TrimSpace(cfg.Git.Operation) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git.operation must not be empty")
	}
	if cfg.Git.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"git.timeout must be positive, got %s", cfg.Git.Timeout)
	}

	if cfg.Execution.MaxWorkers <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"execution.max_workers must be positive, got %d", cfg.Execution.MaxWorkers)
	}

	switch cfg.Output.Format {
	case "text", "json":
	default:
		return errors.Wrapf(errors.ErrInvalidOutputFormat,
			"output.format must be \"text\" or \"json\", got %q", cfg.Output.Format)
	}

	return nil
}
