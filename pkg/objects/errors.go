package objects

import (
	"github.com/utkarsh5026/tvcs/pkg/common/err"
)

const pkgName = "objects"

func serializationError(op string, t ObjectType, cause error) *err.Error {
	return err.New(pkgName, err.CodeSerialization, op, "cannot encode "+t.String(), cause).
		WithContext("type", t.String())
}

func corruptObject(op, reason string) *err.Error {
	return err.New(pkgName, err.CodeCorruptObject, op, reason, nil).
		WithContext("reason", reason)
}

func unknownType(op, tag string) *err.Error {
	return err.New(pkgName, err.CodeUnknownObjectType, op, "unknown object type "+quote(tag), nil).
		WithContext("tag", tag)
}

// IsCorrupt reports whether e describes a malformed frame or compressed stream.
func IsCorrupt(e error) bool {
	return err.IsCode(e, err.CodeCorruptObject)
}

// IsUnknownType reports whether e describes a frame with an unrecognised type tag.
func IsUnknownType(e error) bool {
	return err.IsCode(e, err.CodeUnknownObjectType)
}

// IsSerialization reports whether e describes an object that refused to encode or decode.
func IsSerialization(e error) bool {
	return err.IsCode(e, err.CodeSerialization)
}
