// Package paths resolves CLI directory and file locations.
// Linux follows XDG conventions, Windows uses the standard app-data locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	projectOrg  = "fachschaft"
	projectName = "dms"
)

// ConfigDir returns the CLI config directory.
// Linux: ~/.config/fachschaft/dms/
// Windows: %APPDATA%\fachschaft\dms\
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// LogDir returns the CLI log directory.
// Linux: ~/.local/log/fachschaft/dms/
// Windows: %LOCALAPPDATA%\fachschaft\dms\log\
func LogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), projectOrg, projectName, "log")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "log", projectOrg, projectName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "cli.yaml")
}

// TokenFile returns the path of the saved API token.
func TokenFile() string {
	return filepath.Join(ConfigDir(), "token")
}

// LogFile returns the default CLI log file path.
func LogFile() string {
	return filepath.Join(LogDir(), "cli.log")
}

// EnsureDirs creates the config and log directories with owner-only
// permissions on the config directory (it holds the token).
func EnsureDirs() error {
	if err := os.MkdirAll(ConfigDir(), 0700); err != nil {
		return err
	}
	return os.MkdirAll(LogDir(), 0755)
}
