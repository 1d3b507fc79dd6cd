package objects

import (
	"fmt"
	"os"
	"strconv"
)

// FileMode is the mode recorded for a tree entry.
// The upper 4 bits hold the file type and the lower bits the permissions.
type FileMode uint32

const (
	FileModeTypeMask FileMode = 0xF000 // Upper 4 bits (bits 12-15)
	FileModeExecMask FileMode = 0x0049 // Execute bits (owner/group/other)

	FileModeTypeRegular FileMode = 0x8000
	FileModeTypeSymlink FileMode = 0xA000
	FileModeTypeGitlink FileMode = 0xE000
	FileModeTypeDir     FileMode = 0x4000

	FileModeRegular    FileMode = 0o100644 // Regular file, rw-r--r--
	FileModeExecutable FileMode = 0o100755 // Executable file, rwxr-xr-x
	FileModeSymlink    FileMode = 0o120000 // Symbolic link
	FileModeGitlink    FileMode = 0o160000 // Gitlink (submodule)
	FileModeDirectory  FileMode = 0o040000 // Directory (used in trees)
)

// Type returns the file type portion of the mode.
func (m FileMode) Type() FileMode {
	return m & FileModeTypeMask
}

// IsDirectory returns true if this is a directory.
func (m FileMode) IsDirectory() bool {
	return m.Type() == FileModeTypeDir
}

// IsRegular returns true for regular and executable files.
func (m FileMode) IsRegular() bool {
	return m.Type() == FileModeTypeRegular
}

// IsSymlink returns true if this is a symbolic link.
func (m FileMode) IsSymlink() bool {
	return m.Type() == FileModeTypeSymlink
}

// IsGitlink returns true if this is a gitlink (submodule).
func (m FileMode) IsGitlink() bool {
	return m.Type() == FileModeTypeGitlink
}

// IsExecutable returns true if the file has execute permissions.
func (m FileMode) IsExecutable() bool {
	return m.IsRegular() && (m&FileModeExecMask) != 0
}

// IsKnown reports whether m is one of the five modes allowed in a tree.
func (m FileMode) IsKnown() bool {
	switch m {
	case FileModeRegular, FileModeExecutable, FileModeSymlink, FileModeGitlink, FileModeDirectory:
		return true
	default:
		return false
	}
}

// ObjectType returns the type of object an entry with this mode points at.
func (m FileMode) ObjectType() ObjectType {
	switch {
	case m.IsDirectory():
		return TreeType
	case m.IsGitlink():
		return CommitType
	default:
		return BlobType
	}
}

// ToOctalString returns the mode as a six digit octal string (e.g., "100644", "040000").
func (m FileMode) ToOctalString() string {
	return fmt.Sprintf("%06o", uint32(m))
}

// String returns the octal form.
func (m FileMode) String() string {
	return m.ToOctalString()
}

// ParseFileMode parses the octal mode found in a tree entry. Both "40000"
// and "040000" are accepted for directories.
func ParseFileMode(s string) (FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid mode %q: %w", s, err)
	}
	m := FileMode(n)
	if !m.IsKnown() {
		return 0, fmt.Errorf("unsupported mode %q", s)
	}
	return m, nil
}

// FromOSFileMode maps a filesystem mode to the mode a tree would record.
func FromOSFileMode(mode os.FileMode) FileMode {
	switch {
	case mode.IsDir():
		return FileModeDirectory
	case mode&os.ModeSymlink != 0:
		return FileModeSymlink
	case mode&0o111 != 0:
		return FileModeExecutable
	default:
		return FileModeRegular
	}
}
