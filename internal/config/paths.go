// Package config provides settings loading and path management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// ProjectDirName is the per-project directory holding commands and settings.
const ProjectDirName = ".promptcmd"

// ConfigDir returns the user-global configuration directory.
// Prefers PROMPTCMD_CONFIG_DIR, then XDG_CONFIG_HOME, then the platform default.
func ConfigDir() string {
	if dir := os.Getenv("PROMPTCMD_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(getEnvOrDefault("XDG_CONFIG_HOME", defaultConfigHome()), "promptcmd")
}

// CommandsDir returns the user-global commands directory.
func CommandsDir() string {
	return filepath.Join(ConfigDir(), "commands")
}

// ProjectDir returns the project-local directory under workDir.
func ProjectDir(workDir string) string {
	return filepath.Join(workDir, ProjectDirName)
}

// ProjectCommandsDir returns the project-local commands directory.
func ProjectCommandsDir(workDir string) string {
	return filepath.Join(ProjectDir(workDir), "commands")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultConfigHome() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("APPDATA")
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}
