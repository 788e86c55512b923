// Package paths resolves configuration and data directory locations for the
// assocrows CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory name used under platform config/data roots.
const appName = "assocrows"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".assocrows"
	DefaultDataDirName   = ".assocrows-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "ASSOCROWS_CONFIG_DIR"
	EnvDataDir   = "ASSOCROWS_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/assocrows (fallback ~/.config/assocrows)
// macOS:   ~/Library/Application Support/assocrows
// Windows: %APPDATA%/assocrows
func DefaultConfigDir() (string, error) {
	return platformPath("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/assocrows (fallback ~/.local/share/assocrows)
// macOS and Windows: same as DefaultConfigDir
func DefaultDataDir() (string, error) {
	return platformPath("XDG_DATA_HOME", ".local", "share")
}

// platformPath resolves the XDG directory on Linux and os.UserConfigDir elsewhere.
func platformPath(xdgEnv string, homeFallback ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appName), nil
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, homeFallback...)
	return filepath.Join(append(parts, appName)...), nil
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > ASSOCROWS_CONFIG_DIR env > $(CWD)/.assocrows.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDirName, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > config.yaml value > ASSOCROWS_DATA_DIR env > $(CWD)/.assocrows-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	return firstAbs(DefaultDataDirName, flag, configYAMLValue, os.Getenv(EnvDataDir))
}

// firstAbs returns the first non-empty candidate as an absolute path, or
// the CWD-relative fallback when every candidate is empty.
func firstAbs(fallback string, candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, fallback), nil
}
