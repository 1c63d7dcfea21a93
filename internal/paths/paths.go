package paths

import (
	"os"
	"path/filepath"
)

const (
	appDirName = "eventform"
	configFile = "config.json"
	draftFile  = "draft.json"
)

// configFiles are tried in order; the JSON name is used when none exists.
var configFiles = []string{"config.json", "config.yaml", "config.yml"}

func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		legacy := filepath.Join(home, ".config", appDirName)
		if _, err := os.Stat(legacy); err == nil {
			return legacy, nil
		}
	}
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appDirName), nil
}

// ConfigPath returns the first existing config file in ConfigDir, so a
// hand-written config.yaml is picked up without a --config flag.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	for _, name := range configFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return filepath.Join(dir, configFile), nil
}

// StateDir holds files the editor writes between runs.
func StateDir() (string, error) {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "state", appDirName), nil
	}
	return ConfigDir()
}

func DraftPath() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, draftFile), nil
}
