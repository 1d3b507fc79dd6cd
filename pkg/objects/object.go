// Package objects implements the four object variants stored by the
// repository and their canonical encoding.
//
// Every object is stored as a frame
//
//	<type> SP <decimal payload length> NUL <payload>
//
// and addressed by the SHA-1 of the whole frame. The frame is zlib
// compressed before it reaches disk.
package objects

import (
	"fmt"
	"strconv"
)

// ObjectType is the type tag carried in a frame header.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
	TagType    ObjectType = "tag"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// String implements the Stringer interface
func (o ObjectType) String() string {
	return string(o)
}

// IsValid reports whether o is one of the four known tags.
func (o ObjectType) IsValid() bool {
	switch o {
	case BlobType, TreeType, CommitType, TagType:
		return true
	default:
		return false
	}
}

// ParseObjectType converts a string to ObjectType
func ParseObjectType(s string) (ObjectType, error) {
	if t := ObjectType(s); t.IsValid() {
		return t, nil
	}
	return "", unknownType("parse-type", s)
}

// Object is implemented by *Blob, *Tree, *Commit and *Tag only.
type Object interface {
	// Type returns the tag written into the frame header.
	Type() ObjectType

	// Serialize returns the payload bytes. Objects missing required
	// fields refuse with a serialization error.
	Serialize() ([]byte, error)

	sealed()
}

// Decode builds the typed object for a payload read from a frame.
func Decode(t ObjectType, payload []byte) (Object, error) {
	var (
		obj Object
		err error
	)

	switch t {
	case BlobType:
		obj, err = DeserializeBlob(payload)
	case TreeType:
		obj, err = DeserializeTree(payload)
	case CommitType:
		obj, err = DeserializeCommit(payload)
	case TagType:
		obj, err = DeserializeTag(payload)
	default:
		return nil, unknownType("decode", t.String())
	}

	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Encode serializes obj and returns its frame and key.
func Encode(obj Object) ([]byte, ObjectHash, error) {
	payload, err := obj.Serialize()
	if err != nil {
		return nil, "", err
	}
	frame := NewFrame(obj.Type(), payload)
	return frame, ComputeHash(frame), nil
}

func quote(s string) string {
	return strconv.Quote(s)
}

func refuse(t ObjectType, format string, args ...any) error {
	return serializationError("serialize", t, fmt.Errorf(format, args...))
}

func malformed(t ObjectType, format string, args ...any) error {
	return serializationError("deserialize", t, fmt.Errorf(format, args...))
}
