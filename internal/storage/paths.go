// Package storage provides persistent storage for viewer preferences and
// cached position analyses.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "sharpmove"

// dataHome returns the per-user directory applications keep data under:
// ~/Library/Application Support on macOS, %APPDATA% on Windows and
// $XDG_DATA_HOME (default ~/.local/share) elsewhere.
func dataHome() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support"), nil
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir, nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "AppData", "Roaming"), nil
	}

	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// DataDir returns the application's data directory. It is not created.
func DataDir() (string, error) {
	home, err := dataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appName), nil
}

// DatabaseDir returns the directory of the default analysis database,
// creating it and any missing parents.
func DatabaseDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "db")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
