package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tidwall/jsonc"
)

// DefaultShellTimeout bounds inline shell snippet execution.
const DefaultShellTimeout = 30 * time.Second

// Settings holds host-level settings consumed by the command engine.
// The custom-command feature itself is gated by Enabled; the engine never
// flips this flag on its own.
type Settings struct {
	// Enabled gates the whole custom-command feature.
	Enabled bool `json:"enabled"`
	// LogLevel is the minimum log level (DEBUG|INFO|WARN|ERROR).
	LogLevel string `json:"logLevel,omitempty"`
	// ShellTimeoutMS overrides the inline shell snippet timeout.
	ShellTimeoutMS int `json:"shellTimeoutMs,omitempty"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:  true,
		LogLevel: "INFO",
	}
}

// ShellTimeout returns the configured snippet timeout.
func (s *Settings) ShellTimeout() time.Duration {
	if s.ShellTimeoutMS > 0 {
		return time.Duration(s.ShellTimeoutMS) * time.Millisecond
	}
	return DefaultShellTimeout
}

// LoadSettings loads settings from the global and project locations
// (later files override present fields):
//  1. <config-dir>/promptcmd.json(c)
//  2. <workDir>/.promptcmd/promptcmd.json(c)
//  3. PROMPTCMD_ENABLED environment override
//
// A missing file is skipped; a present-but-corrupt file is an error.
func LoadSettings(workDir string) (*Settings, error) {
	settings := DefaultSettings()

	paths := []string{
		filepath.Join(ConfigDir(), "promptcmd.json"),
		filepath.Join(ConfigDir(), "promptcmd.jsonc"),
	}
	if workDir != "" {
		paths = append(paths,
			filepath.Join(ProjectDir(workDir), "promptcmd.json"),
			filepath.Join(ProjectDir(workDir), "promptcmd.jsonc"),
		)
	}

	for _, path := range paths {
		if err := loadSettingsFile(path, settings); err != nil {
			return nil, err
		}
	}

	if raw := os.Getenv("PROMPTCMD_ENABLED"); raw != "" {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PROMPTCMD_ENABLED value %q: %w", raw, err)
		}
		settings.Enabled = enabled
	}

	return settings, nil
}

// loadSettingsFile merges one settings file into settings.
func loadSettingsFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	// Strip JSONC comments before decoding.
	data = jsonc.ToJSON(data)

	if err := json.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	return nil
}
