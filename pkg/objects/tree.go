package objects

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"
)

// TreeEntry is a single named reference inside a tree.
//
// Serialized format:
// [octal mode] [space] [name] [NUL] [20-byte raw SHA-1]
//
// Example serialized entry for "hello.txt":
// "100644 hello.txt\0[20 bytes of SHA-1]"
type TreeEntry struct {
	mode FileMode
	name string
	hash ObjectHash
}

// NewTreeEntry creates a new TreeEntry with validation
func NewTreeEntry(mode FileMode, name string, hash ObjectHash) (*TreeEntry, error) {
	if !mode.IsKnown() {
		return nil, fmt.Errorf("unsupported mode %s", mode)
	}
	if err := validateEntryName(name); err != nil {
		return nil, err
	}
	h, err := NewObjectHashFromString(hash.String())
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", name, err)
	}
	return &TreeEntry{mode: mode, name: name, hash: h}, nil
}

// Mode returns the entry mode
func (e *TreeEntry) Mode() FileMode {
	return e.mode
}

// Name returns the entry name
func (e *TreeEntry) Name() string {
	return e.name
}

// Hash returns the key of the referenced object
func (e *TreeEntry) Hash() ObjectHash {
	return e.hash
}

// IsDirectory returns true if this entry is a directory
func (e *TreeEntry) IsDirectory() bool {
	return e.mode.IsDirectory()
}

// sortKey is the name git sorts by: directories compare as if they ended in "/".
func (e *TreeEntry) sortKey() string {
	if e.IsDirectory() {
		return e.name + "/"
	}
	return e.name
}

func (e *TreeEntry) appendTo(buf *bytes.Buffer) error {
	raw, err := e.hash.Raw()
	if err != nil {
		return fmt.Errorf("entry %q: %w", e.name, err)
	}
	// git writes modes without a leading zero, so directories are "40000".
	fmt.Fprintf(buf, "%o %s", uint32(e.mode), e.name)
	buf.WriteByte(NullByte)
	buf.Write(raw[:])
	return nil
}

// Tree is a directory listing: an ordered set of entries.
//
// Entries are kept sorted the way git sorts them so that two trees with the
// same entries always produce the same payload and key.
type Tree struct {
	entries []*TreeEntry
}

// NewTree creates a new Tree object with the given entries
func NewTree(entries []*TreeEntry) *Tree {
	t := &Tree{entries: slices.Clone(entries)}
	t.sortEntries()
	return t
}

// Type returns the object type
func (t *Tree) Type() ObjectType {
	return TreeType
}

// Entries returns the entries in canonical order.
func (t *Tree) Entries() []*TreeEntry {
	return slices.Clone(t.entries)
}

// Serialize encodes every entry in canonical order. A tree with nil or
// duplicate entries refuses.
func (t *Tree) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	seen := make(map[string]struct{}, len(t.entries))

	for _, e := range t.entries {
		if e == nil {
			return nil, refuse(TreeType, "nil tree entry")
		}
		if _, dup := seen[e.name]; dup {
			return nil, refuse(TreeType, "duplicate entry %q", e.name)
		}
		seen[e.name] = struct{}{}

		if err := e.appendTo(&buf); err != nil {
			return nil, refuse(TreeType, "%v", err)
		}
	}
	return buf.Bytes(), nil
}

// DeserializeTree parses a tree payload. The payload must already be in
// canonical form: entries sorted, names unique and modes written the way
// Serialize writes them. Anything else would decode to a tree with a
// different key.
func DeserializeTree(payload []byte) (*Tree, error) {
	var (
		entries []*TreeEntry
		seen    = make(map[string]struct{})
		prev    *TreeEntry
	)

	for offset := 0; offset < len(payload); {
		entry, next, err := parseTreeEntry(payload, offset)
		if err != nil {
			return nil, malformed(TreeType, "entry at offset %d: %v", offset, err)
		}
		if _, dup := seen[entry.name]; dup {
			return nil, malformed(TreeType, "duplicate entry %q", entry.name)
		}
		if prev != nil && strings.Compare(prev.sortKey(), entry.sortKey()) > 0 {
			return nil, malformed(TreeType, "entry %q out of order after %q", entry.name, prev.name)
		}
		seen[entry.name] = struct{}{}
		entries = append(entries, entry)
		prev = entry
		offset = next
	}
	return &Tree{entries: entries}, nil
}

func parseTreeEntry(data []byte, offset int) (*TreeEntry, int, error) {
	sp := bytes.IndexByte(data[offset:], SpaceByte)
	if sp == -1 {
		return nil, 0, fmt.Errorf("missing space")
	}
	sp += offset

	modeText := string(data[offset:sp])
	mode, err := ParseFileMode(modeText)
	if err != nil {
		return nil, 0, err
	}
	if fmt.Sprintf("%o", uint32(mode)) != modeText {
		return nil, 0, fmt.Errorf("non-canonical mode %q", modeText)
	}

	nul := bytes.IndexByte(data[sp+1:], NullByte)
	if nul == -1 {
		return nil, 0, fmt.Errorf("missing NUL")
	}
	nul += sp + 1

	end := nul + 1 + RawHashLength
	if end > len(data) {
		return nil, 0, fmt.Errorf("truncated hash")
	}

	hash := ObjectHash(hex.EncodeToString(data[nul+1 : end]))
	entry, err := NewTreeEntry(mode, string(data[sp+1:nul]), hash)
	if err != nil {
		return nil, 0, err
	}
	return entry, end, nil
}

func (t *Tree) sortEntries() {
	slices.SortStableFunc(t.entries, func(a, b *TreeEntry) int {
		if a == nil || b == nil {
			return 0
		}
		return strings.Compare(a.sortKey(), b.sortKey())
	})
}

func validateEntryName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name %q", name)
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("invalid characters in name: %q", name)
	}
	return nil
}

func (*Tree) sealed() {}
