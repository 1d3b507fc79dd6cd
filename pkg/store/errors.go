package store

import (
	"strings"

	"github.com/utkarsh5026/tvcs/pkg/common/err"
	"github.com/utkarsh5026/tvcs/pkg/objects"
)

const pkgName = "store"

func notFound(op, name string) error {
	return err.New(pkgName, err.CodeNotFound, op, "object not found: "+name, nil).
		WithContext("name", name)
}

func typeMismatch(op, name string, want, got objects.ObjectType) error {
	return err.New(pkgName, err.CodeNotFound, op,
		"object "+name+" is a "+got.String()+", not a "+want.String(), nil).
		WithContext("name", name).
		WithContext("type", got.String())
}

func ambiguous(op, prefix string, candidates []objects.ObjectHash) error {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.String()
	}
	return err.New(pkgName, err.CodeAmbiguous, op,
		"short object name "+prefix+" is ambiguous: "+strings.Join(names, ", "), nil).
		WithContext("prefix", prefix).
		WithContext("candidates", names)
}

func ioError(op, path string, cause error) error {
	return err.New(pkgName, err.CodeIO, op, "object i/o failed", cause).
		WithContext("path", path)
}

func corrupt(op string, key objects.ObjectHash, cause error) error {
	return err.New(pkgName, err.CodeCorruptObject, op, "object "+key.String()+" is corrupt", cause).
		WithContext("key", key.String())
}

// wrap attaches the key to an error that already carries its own code.
func wrap(op string, key objects.ObjectHash, cause error) error {
	if key == "" {
		return err.Wrap(cause, pkgName, op)
	}
	return err.New(pkgName, "", op, "object "+key.String(), cause).
		WithContext("key", key.String())
}

// IsNotFound reports whether e means no object matched.
func IsNotFound(e error) bool {
	return err.IsCode(e, err.CodeNotFound)
}

// IsAmbiguous reports whether e means an abbreviated name matched several objects.
func IsAmbiguous(e error) bool {
	return err.IsCode(e, err.CodeAmbiguous)
}

// IsCorrupt reports whether e means an object file failed verification.
func IsCorrupt(e error) bool {
	return err.IsCode(e, err.CodeCorruptObject)
}
