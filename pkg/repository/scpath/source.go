package scpath

import "path/filepath"

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// IsValid checks if this is a valid source path
func (sp SourcePath) IsValid() bool {
	return len(sp) > 0
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	parts := append([]string{string(sp)}, elem...)
	return SourcePath(filepath.Join(parts...))
}

// ToAbsolutePath converts to an absolute path
func (sp SourcePath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(sp)
}

// Dir returns all but the last element of the path
func (sp SourcePath) Dir() SourcePath {
	return SourcePath(filepath.Dir(string(sp)))
}

// ObjectsPath returns the path to the objects directory
func (sp SourcePath) ObjectsPath() SourcePath {
	return sp.Join(ObjectsDir)
}

// ConfigPath returns the path to the config file
func (sp SourcePath) ConfigPath() SourcePath {
	return sp.Join(ConfigFile)
}

// DescriptionPath returns the path to the description file
func (sp SourcePath) DescriptionPath() SourcePath {
	return sp.Join(DescriptionFile)
}

// ObjectFilePath returns the path to an object file given its hash, or "" if
// the hash is not 40 hex characters. sp must be the objects directory.
// Example: hash "abcdef..." returns ".source/objects/ab/cdef..."
func (sp SourcePath) ObjectFilePath(hash string) SourcePath {
	op, err := NewObjectPath(hash)
	if err != nil {
		return ""
	}
	return op.ToSourcePath(sp)
}
