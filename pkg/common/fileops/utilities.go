package fileops

import (
	"fmt"
	"os"

	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

// Exists checks if a file or directory exists at the given path.
// Returns an error only if there's a filesystem error other than non-existence.
func Exists(p scpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(p scpath.AbsolutePath) error {
	if err := os.MkdirAll(p.String(), 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", p, err)
	}
	return nil
}

// IsDirectory checks if the path exists and is a directory.
// Returns false if the path doesn't exist or is not a directory.
func IsDirectory(p scpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.IsDir(), nil
}
