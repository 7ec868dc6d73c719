package config

import (
	"os"
	"path/filepath"
)

// GetHome returns $CUTDESK_HOME or ~/.cutdesk
func GetHome() string {
	home := os.Getenv("CUTDESK_HOME")
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".cutdesk"
		}
		return filepath.Join(homeDir, ".cutdesk")
	}
	return ExpandPath(home)
}

// GetDBPath returns $CUTDESK_HOME/state.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "state.db")
}

// GetSettingsPath returns $CUTDESK_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetSSHDir returns $CUTDESK_HOME/ssh, where the server host key lives
func GetSSHDir() string {
	return filepath.Join(GetHome(), "ssh")
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
