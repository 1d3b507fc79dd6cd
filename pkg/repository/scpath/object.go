package scpath

import (
	"fmt"
	"strings"
)

// String returns the object path as a string
func (op ObjectPath) String() string {
	return string(op)
}

// IsValid checks if this is a valid object path (format: "ab/cdef...")
func (op ObjectPath) IsValid() bool {
	s := string(op)
	if len(s) != keyHexLength+1 || s[fanoutLength] != '/' {
		return false
	}
	return isHexString(s[:fanoutLength]) && isHexString(s[fanoutLength+1:])
}

// Hash returns the full object hash (concatenating prefix and suffix)
func (op ObjectPath) Hash() string {
	return op.Prefix() + op.Suffix()
}

// Prefix returns the 2-character directory name
func (op ObjectPath) Prefix() string {
	if len(op) < fanoutLength {
		return ""
	}
	return string(op[:fanoutLength])
}

// Suffix returns the 38-character file name
func (op ObjectPath) Suffix() string {
	if len(op) <= fanoutLength+1 {
		return ""
	}
	return string(op[fanoutLength+1:])
}

// ToSourcePath converts to a path within the objects directory
func (op ObjectPath) ToSourcePath(objectsDir SourcePath) SourcePath {
	return objectsDir.Join(op.Prefix(), op.Suffix())
}

// NewObjectPath creates an ObjectPath from a 40-character hex hash.
// The split is always 2/38.
func NewObjectPath(hash string) (ObjectPath, error) {
	if len(hash) != keyHexLength {
		return "", fmt.Errorf("hash must be %d characters, got %d", keyHexLength, len(hash))
	}
	if !isHexString(hash) {
		return "", fmt.Errorf("hash must be hex string")
	}
	hash = strings.ToLower(hash)
	return ObjectPath(hash[:fanoutLength] + "/" + hash[fanoutLength:]), nil
}

// ParseObjectPath builds an ObjectPath from the fan-out directory and file
// names found while walking the objects directory. Temp files and anything
// else that does not form a 40-hex key are rejected.
func ParseObjectPath(dir, file string) (ObjectPath, error) {
	op := ObjectPath(dir + "/" + file)
	if !op.IsValid() {
		return "", fmt.Errorf("not an object path: %s", op)
	}
	return ObjectPath(strings.ToLower(string(op))), nil
}

// FanoutDir returns the directory name used for the given hex prefix, which
// must have at least two characters.
func FanoutDir(prefix string) (string, error) {
	if len(prefix) < fanoutLength || !isHexString(prefix[:fanoutLength]) {
		return "", fmt.Errorf("prefix %q too short for fan-out", prefix)
	}
	return strings.ToLower(prefix[:fanoutLength]), nil
}
