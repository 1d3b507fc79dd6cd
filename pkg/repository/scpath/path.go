package scpath

import "path/filepath"

// RepositoryPath represents an absolute path to a repository root directory
// (the working tree, not the metadata directory).
// Example: "/home/user/myproject"
type RepositoryPath string

// SourcePath represents a path inside the metadata directory.
// Example: "/home/user/myproject/.source/objects"
type SourcePath string

// AbsolutePath represents an arbitrary absolute filesystem path.
type AbsolutePath string

// ObjectPath represents a path relative to the objects directory.
// Format: "ab/cdef123..." (2-char directory + 38-char file name)
type ObjectPath string

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// Join joins path elements to the absolute path
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// Dir returns all but the last element of the path
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// Base returns the last element of the path
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

// isHexString checks if a string contains only hex characters
func isHexString(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
