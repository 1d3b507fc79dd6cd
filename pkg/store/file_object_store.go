package store

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/utkarsh5026/tvcs/pkg/common/fileops"
	"github.com/utkarsh5026/tvcs/pkg/common/logger"
	"github.com/utkarsh5026/tvcs/pkg/objects"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

// objectFileMode is the permission of every object file. Objects are immutable.
const objectFileMode = 0444

// maxTagDepth bounds how many tags Resolve peels before giving up.
const maxTagDepth = 32

// FileObjectStore stores objects as loose files, the way git's object database does.
//
// Each object is:
// 1. Serialized and framed as "<type> <size>\0<payload>"
// 2. Keyed by the SHA-1 of the whole frame
// 3. Compressed with zlib
// 4. Written to a file named by its key
//
// Directory Structure:
// ┌─ .source/objects/
// │ ├─ ab/ ← First 2 characters of the key
// │ │ └─ cdef123... ← Remaining 38 characters
// │ ├─ cd/
// │ │ └─ ef456789...
// │ └─ ...
type FileObjectStore struct {
	objectsPath scpath.SourcePath
	log         *slog.Logger
}

// New creates a store over the objects directory of repo.
func New(repo Repository) *FileObjectStore {
	return &FileObjectStore{
		objectsPath: repo.ObjectsDirectory(),
		log:         logger.With("component", "store"),
	}
}

// Put encodes obj and returns its key.
//
// With persist unset nothing touches the disk. Otherwise the fan-out
// directory is created, and the compressed frame is written through a temp
// file and a rename unless a file for the key already exists. Writers racing
// on the same key produce identical bytes, so the last rename wins harmlessly.
func (s *FileObjectStore) Put(obj objects.Object, persist bool) (objects.ObjectHash, error) {
	if obj == nil {
		return "", wrap("put", "", errors.New("nil object"))
	}

	frame, key, err := objects.Encode(obj)
	if err != nil {
		return "", wrap("put", "", err)
	}

	if !persist {
		return key, nil
	}

	path := s.objectPath(key)
	if err := fileops.EnsureDir(path.Dir().ToAbsolutePath()); err != nil {
		return "", ioError("put", path.Dir().String(), err)
	}

	exists, err := fileops.Exists(path.ToAbsolutePath())
	if err != nil {
		return "", ioError("put", path.String(), err)
	}
	if exists {
		s.log.Debug("object already stored", "key", key, "type", obj.Type())
		return key, nil
	}

	compressed, err := objects.Compress(frame)
	if err != nil {
		return "", ioError("put", path.String(), err)
	}

	if err := fileops.AtomicWrite(path.ToAbsolutePath(), compressed, objectFileMode); err != nil {
		return "", ioError("put", path.String(), err)
	}

	s.log.Debug("object written", "key", key, "type", obj.Type(), "size", len(frame))
	return key, nil
}

// Get reads the object stored under key.
//
// The file must inflate cleanly and its frame must parse strictly: a
// missing separator, a bad length or a length that disagrees with the
// payload is corruption. A tag outside the four known types is reported as
// such.
func (s *FileObjectStore) Get(key objects.ObjectHash) (objects.Object, error) {
	frame, key, err := s.readFrame("get", key)
	if err != nil {
		return nil, err
	}

	t, payload, err := objects.ParseFrame(frame)
	if err != nil {
		return nil, wrap("get", key, err)
	}

	obj, err := objects.Decode(t, payload)
	if err != nil {
		if objects.IsSerialization(err) {
			return nil, corrupt("get", key, err)
		}
		return nil, wrap("get", key, err)
	}

	s.log.Debug("object read", "key", key, "type", t, "size", len(payload))
	return obj, nil
}

// ReadHeader returns the type and payload size of an object without
// decoding the payload.
func (s *FileObjectStore) ReadHeader(key objects.ObjectHash) (objects.Header, error) {
	frame, key, err := s.readFrame("read-header", key)
	if err != nil {
		return objects.Header{}, err
	}

	h, err := objects.ParseHeader(frame)
	if err != nil {
		return objects.Header{}, wrap("read-header", key, err)
	}
	return h, nil
}

// Has reports whether an object file exists for key.
func (s *FileObjectStore) Has(key objects.ObjectHash) (bool, error) {
	k, err := objects.NewObjectHashFromString(key.String())
	if err != nil {
		return false, nil
	}

	path := s.objectPath(k)
	exists, err := fileops.Exists(path.ToAbsolutePath())
	if err != nil {
		return false, ioError("has", path.String(), err)
	}
	return exists, nil
}

// Walk calls fn for every loose object, in key order. Temporary files and
// anything else that is not named like an object are skipped. A missing
// objects directory is an I/O error.
func (s *FileObjectStore) Walk(fn func(key objects.ObjectHash) error) error {
	fanouts, err := os.ReadDir(s.objectsPath.String())
	if err != nil {
		return ioError("walk", s.objectsPath.String(), err)
	}

	for _, dir := range fanouts {
		if !dir.IsDir() {
			continue
		}
		keys, err := s.keysIn(dir.Name())
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := fn(key); err != nil {
				return err
			}
		}
	}
	return nil
}

// ObjectCount returns the number of loose objects.
func (s *FileObjectStore) ObjectCount() (int, error) {
	count := 0
	err := s.Walk(func(objects.ObjectHash) error {
		count++
		return nil
	})
	return count, err
}

// Resolve maps name to a key.
//
// A full 40 character key must exist. A shorter hex name of at least
// objects.MinPrefixLength characters is matched against the keys in its
// fan-out directory and must match exactly one. When expected is set the
// object must have that type; a tag is peeled to its target when
// followTags is set.
func (s *FileObjectStore) Resolve(name string, expected objects.ObjectType, followTags bool) (objects.ObjectHash, error) {
	key, err := s.resolveName(name)
	if err != nil {
		return "", err
	}

	if expected == "" {
		return key, nil
	}

	for depth := 0; depth <= maxTagDepth; depth++ {
		h, err := s.ReadHeader(key)
		if err != nil {
			return "", err
		}

		if h.Type == expected {
			return key, nil
		}
		if h.Type != objects.TagType || !followTags {
			return "", typeMismatch("resolve", name, expected, h.Type)
		}

		obj, err := s.Get(key)
		if err != nil {
			return "", err
		}
		tag := obj.(*objects.Tag)
		s.log.Debug("peeling tag", "tag", tag.Name, "key", key, "target", tag.Object)
		key = tag.Object
	}

	return "", notFound("resolve", name)
}

func (s *FileObjectStore) resolveName(name string) (objects.ObjectHash, error) {
	name = strings.TrimSpace(name)

	if len(name) == objects.HashLength {
		key, err := objects.NewObjectHashFromString(name)
		if err != nil {
			return "", notFound("resolve", name)
		}
		ok, err := s.Has(key)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", notFound("resolve", name)
		}
		return key, nil
	}

	if len(name) < objects.MinPrefixLength || len(name) > objects.HashLength || !objects.IsHex(name) {
		return "", notFound("resolve", name)
	}

	fanout, err := scpath.FanoutDir(name)
	if err != nil {
		return "", notFound("resolve", name)
	}

	keys, err := s.keysIn(fanout)
	if err != nil {
		return "", err
	}

	var matches []objects.ObjectHash
	for _, k := range keys {
		if k.HasPrefix(name) {
			matches = append(matches, k)
		}
	}

	switch len(matches) {
	case 0:
		return "", notFound("resolve", name)
	case 1:
		return matches[0], nil
	default:
		return "", ambiguous("resolve", name, matches)
	}
}

// keysIn lists the keys stored in one fan-out directory in sorted order.
// A missing directory holds no keys.
func (s *FileObjectStore) keysIn(fanout string) ([]objects.ObjectHash, error) {
	dir := s.objectsPath.Join(fanout)
	entries, err := os.ReadDir(dir.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, ioError("list", dir.String(), err)
	}

	var keys []objects.ObjectHash
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		op, err := scpath.ParseObjectPath(fanout, e.Name())
		if err != nil {
			continue
		}
		keys = append(keys, objects.ObjectHash(op.Hash()))
	}
	return keys, nil
}

// readFrame loads and inflates the object file for key. It returns the
// normalized key alongside the frame.
func (s *FileObjectStore) readFrame(op string, key objects.ObjectHash) ([]byte, objects.ObjectHash, error) {
	k, err := objects.NewObjectHashFromString(key.String())
	if err != nil {
		return nil, key, notFound(op, key.String())
	}

	path := s.objectPath(k)
	compressed, err := os.ReadFile(path.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, k, notFound(op, k.String())
		}
		return nil, k, ioError(op, path.String(), err)
	}

	frame, err := objects.Decompress(compressed)
	if err != nil {
		return nil, k, wrap(op, k, err)
	}
	return frame, k, nil
}

// objectPath returns objects/<2 hex>/<38 hex> for a validated key.
func (s *FileObjectStore) objectPath(key objects.ObjectHash) scpath.SourcePath {
	return s.objectsPath.ObjectFilePath(key.String())
}
