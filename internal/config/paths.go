package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultDir returns the platform config directory for todoai
// (%APPDATA%\todoai-cli on Windows, ~/Library/Application Support/todoai-cli
// on macOS, $XDG_CONFIG_HOME/todoai-cli elsewhere).
func DefaultDir() string {
	switch runtime.GOOS {
	case "windows":
		base := os.Getenv("APPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "todoai-cli"
			}
			base = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(base, "todoai-cli")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "todoai-cli"
		}
		return filepath.Join(home, "Library", "Application Support", "todoai-cli")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "todoai-cli")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "todoai-cli")
		}
		return filepath.Join(home, ".config", "todoai-cli")
	}
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(DefaultDir(), "config.json")
}

// ResolvePath turns a user-supplied --config-path value into a config file
// path. An empty value means the default path; a directory (existing, or one
// spelled with a trailing separator) gets config.json appended; anything else
// is taken as the file itself.
func ResolvePath(arg string) string {
	if arg == "" {
		return Path()
	}
	arg = expandHome(arg)
	if strings.HasSuffix(arg, string(os.PathSeparator)) {
		return filepath.Join(arg, "config.json")
	}
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return filepath.Join(arg, "config.json")
	}
	return arg
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
