package chrome

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Profile file names.
const (
	BookmarksFile = "Bookmarks"
	HistoryFile   = "History"
)

// DefaultProfileDir returns the default Chrome profile directory for the
// current platform. It does not check that the directory exists.
func DefaultProfileDir() (string, error) {
	return profileDirFor(runtime.GOOS)
}

func profileDirFor(goos string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "Default"), nil
	case "windows":
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(home, "AppData", "Local")
		}
		return filepath.Join(base, "Google", "Chrome", "User Data", "Default"), nil
	default:
		base := os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			base = filepath.Join(home, ".config")
		}
		return filepath.Join(base, "google-chrome", "Default"), nil
	}
}

// ResolveProfileDir returns dir, or the platform default when dir is empty,
// and checks that it exists.
func ResolveProfileDir(dir string) (string, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultProfileDir(); err != nil {
			return "", err
		}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return dir, fmt.Errorf("%w: %s", ErrProfileNotFound, dir)
	}
	return dir, nil
}
