package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnsubsample"

	// TriggerEnv names the environment variable that identifies who or what
	// started a run. It is used only as a label in run reports.
	TriggerEnv = "GNSUBSAMPLE_TRIGGER"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnsubsample by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gnsubsample by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// PriorityCacheDir returns the directory of the cross-run priority cache.
// Returns ~/.cache/gnsubsample/priorities by default.
func PriorityCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "priorities")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnsubsample/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnsubsample/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
