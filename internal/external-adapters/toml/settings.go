// Package toml loads the runner's own settings file. Tool manifests are
// YAML; this file only tunes the runner itself (timeouts, directories,
// logging) and every field has a working default, so CI jobs can run
// without one.
package toml

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment overrides, checked after the settings file is loaded
const (
	EnvManifestDir           = "PREFLIGHT_MANIFEST_DIR"
	EnvLogLevel              = "PREFLIGHT_LOG_LEVEL"
	EnvHTTPTimeoutSeconds    = "PREFLIGHT_HTTP_TIMEOUT_SECONDS"
	EnvInstallTimeoutMinutes = "PREFLIGHT_INSTALL_TIMEOUT_MINUTES"
)

// DefaultPath is where the runner looks for settings when no flag is given
const DefaultPath = "preflight.toml"

// Settings holds the runner configuration
type Settings struct {
	ManifestDir           string `toml:"manifest_dir"`
	LogLevel              string `toml:"log_level"`
	HTTPTimeoutSeconds    int    `toml:"http_timeout_seconds"`
	InstallTimeoutMinutes int    `toml:"install_timeout_minutes"`
}

// Default returns the settings used when no file or overrides exist
func Default() Settings {
	return Settings{
		ManifestDir:           "manifests",
		LogLevel:              "info",
		HTTPTimeoutSeconds:    10,
		InstallTimeoutMinutes: 10,
	}
}

// Load reads settings from path, starting from defaults. A missing file is
// not an error; a malformed one is. Environment overrides are applied last.
func Load(path string) (Settings, error) {
	settings := Default()

	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is the runner's own settings file
	if err != nil {
		if !os.IsNotExist(err) {
			return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
		}
	} else {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	applyEnvOverrides(&settings)
	return settings, nil
}

func applyEnvOverrides(settings *Settings) {
	if dir := strings.TrimSpace(os.Getenv(EnvManifestDir)); dir != "" {
		settings.ManifestDir = dir
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		settings.LogLevel = level
	}
	if raw := strings.TrimSpace(os.Getenv(EnvHTTPTimeoutSeconds)); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			settings.HTTPTimeoutSeconds = seconds
		}
	}
	if raw := strings.TrimSpace(os.Getenv(EnvInstallTimeoutMinutes)); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			settings.InstallTimeoutMinutes = minutes
		}
	}
}

// HTTPTimeout returns the HTTP timeout as a duration
func (s Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// InstallTimeout returns the installer timeout as a duration
func (s Settings) InstallTimeout() time.Duration {
	return time.Duration(s.InstallTimeoutMinutes) * time.Minute
}
