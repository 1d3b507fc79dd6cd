package scpath

import (
	"fmt"
	"path/filepath"
)

// String returns the path as a string
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid checks if this is a valid absolute path
func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

// Join joins path elements to the repository path
func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// SourcePath returns the path to the .source directory
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), SourceDir))
}

// Parent returns the enclosing directory. The second result is false when rp
// is already the filesystem root.
func (rp RepositoryPath) Parent() (RepositoryPath, bool) {
	parent := filepath.Dir(string(rp))
	if parent == string(rp) {
		return rp, false
	}
	return RepositoryPath(parent), true
}

// NewRepositoryPath creates a cleaned absolute RepositoryPath from any path.
func NewRepositoryPath(path string) (RepositoryPath, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryPath(absPath), nil
}
