package am

import (
	"os"
	"path/filepath"

	"github.com/teranos/visualgenome/errors"
)

// DataDir resolves the configured data directory. Relative paths are joined
// to the working directory; an empty setting means DefaultDataDir.
func DataDir(c *Config) (string, error) {
	dir := c.Data.Dir
	if dir == "" {
		dir = DefaultDataDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve working directory")
	}
	return filepath.Join(wd, dir), nil
}

// EnsureDataDir resolves the data directory and creates it if needed
func EnsureDataDir(c *Config) (string, error) {
	dir, err := DataDir(c)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return "", errors.Wrapf(err, "failed to create data directory %s", dir)
	}
	return dir, nil
}
