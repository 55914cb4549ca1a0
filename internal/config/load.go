package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/gittyup/gittyup/internal/errors"
)

// newViperInstance creates a new Viper instance with standard gittyup
// configuration: defaults, environment prefix (GITTYUP_), and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GITTYUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// Load reads configuration from all available sources with proper
// precedence. Missing config files are not an error; only unreadable or
// malformed ones are.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}

// LoadWithOverrides loads configuration and applies CLI flag overrides,
// which have the highest precedence. Only non-zero override values are
// applied.
//
// Boolean fields cannot be overridden to false here since a false bool is
// indistinguishable from unset; the CLI handles those flags explicitly via
// Changed checks.
func LoadWithOverrides(overrides *Config) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		applyOverrides(cfg, overrides)
	}

	if err := Validate(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration after overrides")
	}

	return cfg, nil
}

// LoadFromPaths loads configuration from specific file paths for testing.
// Either path can be empty to skip that level.
func LoadFromPaths(projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// loadGlobalConfig attempts to load ~/.gittyup/config.yaml. Returns nil if
// the file doesn't exist or the home directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig attempts to load .gittyup.yaml from the working
// directory. Returns nil if the file doesn't exist.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// setDefaults configures all default values on the Viper instance. These
// match DefaultConfig(); keys must match the YAML tag names exactly.
func setDefaults(v *viper.Viper) {
	// Scan defaults
	v.SetDefault("scan.max_depth", 0)
	v.SetDefault("scan.follow_symlinks", true)
	v.SetDefault("scan.exclude_patterns", DefaultExcludePatterns())
	v.SetDefault("scan.query_timeout", "10s")

	// Git defaults
	v.SetDefault("git.operation", "pull")
	v.SetDefault("git.timeout", "300s")

	// Execution defaults
	v.SetDefault("execution.parallel", true)
	v.SetDefault("execution.max_workers", DefaultMaxWorkers)

	// Output defaults
	v.SetDefault("output.format", "text")
	v.SetDefault("output.show_summary", true)

	// Logging defaults
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.backup_count", 5)
}

// applyOverrides merges non-zero override values into the config.
func applyOverrides(cfg, overrides *Config) {
	if overrides.Scan.MaxDepth != 0 {
		cfg.Scan.MaxDepth = overrides.Scan.MaxDepth
	}
	if len(overrides.Scan.ExcludePatterns) > 0 {
		cfg.Scan.ExcludePatterns = append(cfg.Scan.ExcludePatterns, overrides.Scan.ExcludePatterns...)
	}
	if overrides.Scan.QueryTimeout != 0 {
		cfg.Scan.QueryTimeout = overrides.Scan.QueryTimeout
	}

	if overrides.Git.Operation != "" {
		cfg.Git.Operation = overrides.Git.Operation
	}
	if overrides.Git.Timeout != 0 {
		cfg.Git.Timeout = overrides.Git.Timeout
	}

	if overrides.Execution.MaxWorkers != 0 {
		cfg.Execution.MaxWorkers = overrides.Execution.MaxWorkers
	}

	if overrides.Output.Format != "" {
		cfg.Output.Format = overrides.Output.Format
	}
}

// viperDecoderOption configures mapstructure to handle time.Duration
// conversion from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
