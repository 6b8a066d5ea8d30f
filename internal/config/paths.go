package config

import (
	"os"
	"path/filepath"
)

// GetCovdirHome returns COVDIR_HOME or ~/.covdir default
func GetCovdirHome() string {
	home := os.Getenv("COVDIR_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".covdir"
		}
		return filepath.Join(homeDir, ".covdir")
	}
	return ExpandPath(home)
}

// GetCachePath returns $COVDIR_HOME/cache.db
func GetCachePath() string {
	return filepath.Join(GetCovdirHome(), "cache.db")
}

// GetSettingsPath returns $COVDIR_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetCovdirHome(), "settings.json")
}

// GetSSHDir returns $COVDIR_HOME/ssh, where the server host key lives
func GetSSHDir() string {
	return filepath.Join(GetCovdirHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
