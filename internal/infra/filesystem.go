package infra

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", errors.Wrapf(err, "expand %s", path)
	}
	return filepath.Clean(expanded), nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	return nil
}
