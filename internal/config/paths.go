package config

import (
	"os"
	"path/filepath"

	"github.com/gittyup/gittyup/internal/errors"
)

// homeDirName is the per-user gittyup directory under $HOME.
const homeDirName = ".gittyup"

// homeEnvVar overrides the per-user gittyup directory location entirely.
const homeEnvVar = "GITTYUP_HOME"

// GlobalConfigDir returns the path to the per-user gittyup directory,
// typically ~/.gittyup. The GITTYUP_HOME environment variable overrides it.
func GlobalConfigDir() (string, error) {
	if dir := os.Getenv(homeEnvVar); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, homeDirName), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.gittyup/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// ProjectConfigPath returns the project configuration file name, resolved
// relative to the working directory.
func ProjectConfigPath() string {
	return ".gittyup.yaml"
}

// LogDir returns the directory holding the rotating file log, typically
// ~/.gittyup/logs.
func LogDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
