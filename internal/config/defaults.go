// Package config handles configuration loading and validation for restrokey.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// PlatformConfigDir returns the platform-specific config directory.
//
// Platform paths:
//   - Windows: %APPDATA%\restrokey\
//   - macOS:   ~/Library/Application Support/restrokey/
//   - Linux:   ~/.config/restrokey/
func PlatformConfigDir() string {
	if envDir := os.Getenv("RESTROKEY_CONFIG_DIR"); envDir != "" {
		return envDir
	}
	switch runtime.GOOS {
	case "windows":
		return windowsDataDir()
	case "darwin":
		return macOSDataDir()
	case "linux":
		return linuxConfigDir()
	default:
		return fallbackDir()
	}
}

// PlatformLogDir returns the platform-specific log directory.
//
// Platform paths:
//   - Windows: %LOCALAPPDATA%\restrokey\logs\
//   - macOS:   ~/Library/Logs/restrokey/
//   - Linux:   ~/.local/share/restrokey/logs/
func PlatformLogDir() string {
	switch runtime.GOOS {
	case "windows":
		return windowsLogDir()
	case "darwin":
		home := homeDir()
		return filepath.Join(home, "Library", "Logs", "restrokey")
	case "linux":
		return filepath.Join(linuxDataDir(), "logs")
	default:
		return filepath.Join(fallbackDir(), "logs")
	}
}

func windowsDataDir() string {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "restrokey")
	}
	return filepath.Join(homeDir(), "AppData", "Roaming", "restrokey")
}

func windowsLogDir() string {
	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, "restrokey", "logs")
	}
	return filepath.Join(homeDir(), "AppData", "Local", "restrokey", "logs")
}

func macOSDataDir() string {
	return filepath.Join(homeDir(), "Library", "Application Support", "restrokey")
}

func linuxConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "restrokey")
	}
	return filepath.Join(homeDir(), ".config", "restrokey")
}

func linuxDataDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "restrokey")
	}
	return filepath.Join(homeDir(), ".local", "share", "restrokey")
}

func fallbackDir() string {
	return filepath.Join(homeDir(), ".restrokey")
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, _ := os.UserHomeDir()
	return home
}

// SupportedConfigFormats returns the supported config file formats.
func SupportedConfigFormats() []string {
	return []string{"toml", "json", "yaml", "yml"}
}

// FindConfigFile searches standard locations for a config file and
// returns the first match, or empty string if none exists.
func FindConfigFile() string {
	searchDirs := []string{".", PlatformConfigDir()}
	for _, dir := range searchDirs {
		for _, ext := range SupportedConfigFormats() {
			path := filepath.Join(dir, "config."+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}
