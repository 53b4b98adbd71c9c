// Package paths provides XDG-compliant path resolution for tablaunch.
//
// Resolution order:
// 1. TABLAUNCH_HOME (portable root) → $TABLAUNCH_HOME/{config,data}
// 2. XDG env vars (APPDATA/LOCALAPPDATA on Windows) → $XDG_*_HOME/tablaunch
// 3. Platform defaults → ~/.config/tablaunch, ~/.local/share/tablaunch
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under every base directory.
const AppName = "tablaunch"

// LogFileName is the name of the diagnostic log inside LogDir.
const LogFileName = "tablaunch.log"

// HomeDir returns the current user's home directory, preferring USERPROFILE
// so Windows shells that also export HOME resolve the same way.
func HomeDir() string {
	if profile := os.Getenv("USERPROFILE"); profile != "" {
		return profile
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if root := os.Getenv("TABLAUNCH_HOME"); root != "" {
		return filepath.Join(root, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData
		}
	}
	if homeDir := HomeDir(); homeDir != "" {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getDataHome returns the base data home directory.
func getDataHome() string {
	if root := os.Getenv("TABLAUNCH_HOME"); root != "" {
		return filepath.Join(root, "data")
	}
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return xdgDataHome
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData
		}
	}
	if homeDir := HomeDir(); homeDir != "" {
		return filepath.Join(homeDir, ".local", "share")
	}
	return ""
}

// ConfigDir returns the tablaunch configuration directory.
// Used for tablaunch.yml.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}

// DataDir returns the application's private data directory. The log path
// is confined to this directory.
func DataDir() string {
	base := getDataHome()
	if base == "" {
		if homeDir := HomeDir(); homeDir != "" {
			return filepath.Join(homeDir, "."+AppName)
		}
		return ""
	}
	return filepath.Join(base, AppName)
}

// LogDir returns the directory holding the diagnostic log.
func LogDir() string {
	data := DataDir()
	if data == "" {
		return ""
	}
	return filepath.Join(data, "logs")
}

// DefaultLogPath returns the default diagnostic log file.
func DefaultLogPath() string {
	dir := LogDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, LogFileName)
}
