package cli

import (
	"os"
	"path/filepath"
	"sync"
)

// Name is the program name, used for usage text and per-user directories.
const Name = "vispel"

const (
	configFileName = "config.yaml"
	historyName    = "history"
	diagnosticsLog = "diagnostics.log"
	profileSubdir  = "pprof"
)

var defaultDirMode os.FileMode = 0o700

// configDir returns the configuration directory path.
var configDir = sync.OnceValue(
	func() string {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".config")
			} else {
				dir = "."
			}
		}
		return filepath.Join(dir, Name)
	},
)

// cacheDir returns the directory for history, diagnostics and profiles.
var cacheDir = sync.OnceValue(
	func() string {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir, err = os.UserHomeDir()
			if err == nil {
				dir = filepath.Join(dir, ".cache")
			} else {
				dir = "."
			}
		}
		return filepath.Join(dir, Name)
	},
)

func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}

func cachePath(elem ...string) string {
	return filepath.Join(append([]string{cacheDir()}, elem...)...)
}

// mkdirAllRequired creates the configuration and cache directories.
func mkdirAllRequired() error {
	if err := os.MkdirAll(configDir(), defaultDirMode); err != nil {
		return err
	}
	return os.MkdirAll(cacheDir(), defaultDirMode)
}
