// Package config resolves dex configuration from the environment and the
// optional config file.
//
// Precedence: command-line flags override the config file, which overrides
// built-in defaults. GITHUB_TOKEN is read from the environment only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// EnvHTTPTimeout overrides the API request timeout ("30s", "2m", ...).
	EnvHTTPTimeout = "DEX_HTTP_TIMEOUT"

	// EnvDownloadTimeout overrides the overall download timeout.
	EnvDownloadTimeout = "DEX_DOWNLOAD_TIMEOUT"

	// EnvGitHubToken raises GitHub API rate limits when set.
	EnvGitHubToken = "GITHUB_TOKEN"

	// DefaultHTTPTimeout is the timeout for GitHub API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultDownloadTimeout bounds a single archive download. Generous
	// because release assets can be hundreds of megabytes.
	DefaultDownloadTimeout = 15 * time.Minute
)

// File is the optional on-disk configuration, read from
// $XDG_CONFIG_HOME/dex/config.toml (falling back to ~/.config/dex).
type File struct {
	// OutputDir is the default destination directory when -o is not given.
	OutputDir string `toml:"output_dir"`

	// Keep retains downloaded archives after extraction by default.
	Keep bool `toml:"keep"`
}

// Load reads the config file from its default location. A missing file is
// not an error and yields the zero value.
func Load() (*File, error) {
	path, err := defaultPath()
	if err != nil {
		return &File{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config file at path. A missing file yields the zero
// value; a malformed file is an error.
func LoadFrom(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &f, nil
}

func defaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dex", "config.toml"), nil
}

// HTTPTimeout returns the GitHub API request timeout, honoring
// DEX_HTTP_TIMEOUT when set to a valid duration.
func HTTPTimeout() time.Duration {
	return timeoutFromEnv(EnvHTTPTimeout, DefaultHTTPTimeout)
}

// DownloadTimeout returns the overall download timeout, honoring
// DEX_DOWNLOAD_TIMEOUT when set to a valid duration.
func DownloadTimeout() time.Duration {
	return timeoutFromEnv(EnvDownloadTimeout, DefaultDownloadTimeout)
}

func timeoutFromEnv(key string, fallback time.Duration) time.Duration {
	envValue := os.Getenv(key)
	if envValue == "" {
		return fallback
	}

	duration, err := time.ParseDuration(envValue)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid %s value %q, using default %v\n",
			key, envValue, fallback)
		return fallback
	}

	// Clamp to a sane range rather than failing the whole run.
	if duration < 1*time.Second {
		fmt.Fprintf(os.Stderr, "Warning: %s too low (%v), using minimum 1s\n", key, duration)
		return 1 * time.Second
	}
	if duration > 1*time.Hour {
		fmt.Fprintf(os.Stderr, "Warning: %s too high (%v), using maximum 1h\n", key, duration)
		return 1 * time.Hour
	}
	return duration
}

// GitHubToken returns the GitHub API token from the environment, or empty.
// Absence is not an error, only a rate-limit risk.
func GitHubToken() string {
	return os.Getenv(EnvGitHubToken)
}
