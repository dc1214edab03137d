// Package paths resolves where wbedit keeps its config file and its revision
// store.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user directories.
const appName = "wbedit"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".wbedit"
	DefaultDataDirName   = ".wbedit-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "WBEDIT_CONFIG_DIR"
	EnvDataDir   = "WBEDIT_DATA_DIR"
)

// ConfigFileName is the config file looked up inside the config directory.
const ConfigFileName = "config.yaml"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $env/wbedit, or ~/<fallback...>/wbedit when env is unset.
func xdgDir(env string, fallback ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}

// userDir returns the OS config directory joined with appName. macOS and
// Windows keep config and data together there.
func userDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/wbedit (fallback ~/.config/wbedit)
// macOS:   ~/Library/Application Support/wbedit
// Windows: %APPDATA%/wbedit
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userDir()
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/wbedit (fallback ~/.local/share/wbedit)
// macOS:   ~/Library/Application Support/wbedit
// Windows: %APPDATA%/wbedit
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return userDir()
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > WBEDIT_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config file value > WBEDIT_DATA_DIR env > $(CWD)/.wbedit-db.
//
// The store lives next to the working tree by default so that revisions
// fetched for one project do not leak into another.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, configValue, os.Getenv(EnvDataDir)} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
