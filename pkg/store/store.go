package store

import (
	"github.com/utkarsh5026/tvcs/pkg/objects"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

// ObjectStore defines the operations on the object database.
type ObjectStore interface {
	// Put encodes obj and returns its key. With persist set the compressed
	// frame is written under objects/<2 hex>/<38 hex> unless already present.
	Put(obj objects.Object, persist bool) (objects.ObjectHash, error)

	// Get reads, verifies and decodes the object stored under key.
	Get(key objects.ObjectHash) (objects.Object, error)

	// Resolve maps a user-supplied name to a key, optionally requiring a type.
	Resolve(name string, expected objects.ObjectType, followTags bool) (objects.ObjectHash, error)

	// Has reports whether an object file exists for key.
	Has(key objects.ObjectHash) (bool, error)
}

// Repository is the part of a repository handle the store needs.
type Repository interface {
	ObjectsDirectory() scpath.SourcePath
}

var _ ObjectStore = (*FileObjectStore)(nil)
