package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash is the key of an object: the SHA-1 of its frame as 40 lowercase hex characters.
// Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
type ObjectHash string

// RawHash represents a SHA-1 hash as a 20-byte array
type RawHash [20]byte

const (
	// HashLength is the length of a full SHA-1 hash in hex (40 characters)
	HashLength = 40
	// ShortHashLength is the default length for abbreviated hashes (7 characters)
	ShortHashLength = 7
	// RawHashLength is the length of a SHA-1 hash in bytes (20 bytes)
	RawHashLength = 20
	// MinPrefixLength is the shortest abbreviation accepted when resolving names
	MinPrefixLength = 4
)

// ComputeHash returns the key of a frame.
func ComputeHash(frame []byte) ObjectHash {
	sum := sha1.Sum(frame)
	return NewObjectHashFromRaw(sum)
}

// NewObjectHashFromRaw creates an ObjectHash from a 20-byte array
func NewObjectHashFromRaw(raw RawHash) ObjectHash {
	return ObjectHash(hex.EncodeToString(raw[:]))
}

// NewObjectHashFromString creates an ObjectHash from a hex string.
// Upper-case input is folded to lower case.
func NewObjectHashFromString(s string) (ObjectHash, error) {
	hash := ObjectHash(strings.ToLower(s))
	if err := hash.Validate(); err != nil {
		return "", err
	}
	return hash, nil
}

// String returns the hash as a string
func (h ObjectHash) String() string {
	return string(h)
}

// IsValid returns true if this is a valid SHA-1 hash
func (h ObjectHash) IsValid() bool {
	return h.Validate() == nil
}

// Validate checks if the hash is valid
func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return fmt.Errorf("hash must be %d characters long, got %d", HashLength, len(h))
	}
	if !IsHex(string(h)) {
		return fmt.Errorf("hash must contain only hex characters: %q", string(h))
	}
	return nil
}

// Short returns the abbreviated version of the hash
func (h ObjectHash) Short() string {
	if len(h) >= ShortHashLength {
		return string(h[:ShortHashLength])
	}
	return string(h)
}

// Raw returns the hash as a 20-byte array
func (h ObjectHash) Raw() (RawHash, error) {
	if err := h.Validate(); err != nil {
		return RawHash{}, err
	}
	b, err := hex.DecodeString(string(h))
	if err != nil {
		return RawHash{}, err
	}

	var raw RawHash
	copy(raw[:], b)
	return raw, nil
}

// HasPrefix returns true if the hash starts with the given prefix
func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(h), strings.ToLower(prefix))
}

// IsHex reports whether s is non-empty and made only of hex digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// parseHashValue reads a key stored inside a payload. Only the lowercase
// form that Serialize writes is accepted.
func parseHashValue(s string) (ObjectHash, error) {
	h := ObjectHash(s)
	if err := h.Validate(); err != nil {
		return "", err
	}
	if s != strings.ToLower(s) {
		return "", fmt.Errorf("hash must be lowercase: %q", s)
	}
	return h, nil
}
