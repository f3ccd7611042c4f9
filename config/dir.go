package config

import (
	"os"
	"path/filepath"
)

func defaultRootDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "nsuuid")
	}
	return filepath.Join(home, ".nsuuid")
}
