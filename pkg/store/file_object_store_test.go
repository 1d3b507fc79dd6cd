package store

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/tvcs/pkg/common/err"
	"github.com/utkarsh5026/tvcs/pkg/objects"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

type testRepo struct {
	objects scpath.SourcePath
}

func (r testRepo) ObjectsDirectory() scpath.SourcePath {
	return r.objects
}

// setupTestStore creates a store over a fresh objects directory.
func setupTestStore(t *testing.T) (*FileObjectStore, scpath.SourcePath) {
	t.Helper()

	repoPath, e := scpath.NewRepositoryPath(t.TempDir())
	if e != nil {
		t.Fatalf("failed to create repository path: %v", e)
	}
	objectsDir := repoPath.SourcePath().ObjectsPath()
	if e := os.MkdirAll(objectsDir.String(), 0755); e != nil {
		t.Fatalf("failed to create objects dir: %v", e)
	}
	return New(testRepo{objects: objectsDir}), objectsDir
}

// plantFrame compresses frame and stores it under key without any checks,
// the way a damaged or foreign object database might look.
func plantFrame(t *testing.T, objectsDir scpath.SourcePath, key string, compressed []byte) objects.ObjectHash {
	t.Helper()
	path := objectsDir.ObjectFilePath(key)
	require.NotEmpty(t, path)
	require.NoError(t, os.MkdirAll(path.Dir().String(), 0755))
	require.NoError(t, os.WriteFile(path.String(), compressed, 0444))
	return objects.ObjectHash(key)
}

func compress(t *testing.T, frame string) []byte {
	t.Helper()
	c, e := objects.Compress([]byte(frame))
	require.NoError(t, e)
	return c
}

func testPerson(t *testing.T) *objects.Person {
	t.Helper()
	p, e := objects.NewPerson("Ada", "ada@example.com", time.Unix(1700000000, 0).UTC())
	require.NoError(t, e)
	return p
}

func TestPut_HelloWorld(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	key, e := s.Put(objects.NewBlob([]byte("Hello, world!")), true)
	require.NoError(t, e)
	assert.Equal(t, objects.ObjectHash("5dd01c177f5d7d1be5346a5bc18a569a7410c2ef"), key)

	path := filepath.Join(objectsDir.String(), "5d", "d01c177f5d7d1be5346a5bc18a569a7410c2ef")
	data, e := os.ReadFile(path)
	require.NoError(t, e)

	frame, e := objects.Decompress(data)
	require.NoError(t, e)
	assert.Equal(t, "blob 13\x00Hello, world!", string(frame))

	if runtime.GOOS != "windows" {
		info, e := os.Stat(path)
		require.NoError(t, e)
		assert.Equal(t, os.FileMode(0444), info.Mode().Perm())
	}

	obj, e := s.Get(key)
	require.NoError(t, e)
	blob, ok := obj.(*objects.Blob)
	require.True(t, ok)
	assert.Equal(t, "Hello, world!", string(blob.Data()))
}

func TestPut_WithoutPersistTouchesNothing(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	key, e := s.Put(objects.NewBlob([]byte("hello\n")), false)
	require.NoError(t, e)
	assert.Equal(t, objects.ObjectHash("ce013625030ba8dba906f756967f9e9ca394464a"), key)

	entries, e := os.ReadDir(objectsDir.String())
	require.NoError(t, e)
	assert.Empty(t, entries)

	_, e = s.Get(key)
	assert.True(t, IsNotFound(e))
}

func TestPut_IsIdempotent(t *testing.T) {
	s, _ := setupTestStore(t)
	blob := objects.NewBlob([]byte("same content"))

	first, e := s.Put(blob, true)
	require.NoError(t, e)
	second, e := s.Put(blob, true)
	require.NoError(t, e)
	assert.Equal(t, first, second)

	count, e := s.ObjectCount()
	require.NoError(t, e)
	assert.Equal(t, 1, count)
}

func TestPut_ConcurrentSameKey(t *testing.T) {
	s, _ := setupTestStore(t)

	var wg sync.WaitGroup
	keys := make([]objects.ObjectHash, 16)
	errs := make([]error, 16)
	for i := range keys {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys[i], errs[i] = s.Put(objects.NewBlob([]byte("racing writers")), true)
		}(i)
	}
	wg.Wait()

	for i := range keys {
		require.NoError(t, errs[i])
		assert.Equal(t, keys[0], keys[i])
	}

	obj, e := s.Get(keys[0])
	require.NoError(t, e)
	assert.Equal(t, "racing writers", string(obj.(*objects.Blob).Data()))
}

func TestPutGet_AllVariants(t *testing.T) {
	s, _ := setupTestStore(t)

	blobKey, e := s.Put(objects.NewBlob([]byte("content")), true)
	require.NoError(t, e)

	entry, e := objects.NewTreeEntry(objects.FileModeRegular, "file.txt", blobKey)
	require.NoError(t, e)
	treeKey, e := s.Put(objects.NewTree([]*objects.TreeEntry{entry}), true)
	require.NoError(t, e)

	commit := &objects.Commit{Tree: treeKey, Author: testPerson(t), Committer: testPerson(t), Message: "first\n"}
	commitKey, e := s.Put(commit, true)
	require.NoError(t, e)

	tag := &objects.Tag{Object: commitKey, ObjectType: objects.CommitType, Name: "v1", Tagger: testPerson(t), Message: "tagged\n"}
	tagKey, e := s.Put(tag, true)
	require.NoError(t, e)

	tests := []struct {
		key  objects.ObjectHash
		want objects.ObjectType
	}{
		{blobKey, objects.BlobType},
		{treeKey, objects.TreeType},
		{commitKey, objects.CommitType},
		{tagKey, objects.TagType},
	}
	for _, tt := range tests {
		obj, e := s.Get(tt.key)
		require.NoError(t, e)
		assert.Equal(t, tt.want, obj.Type())

		again, e := s.Put(obj, false)
		require.NoError(t, e)
		assert.Equal(t, tt.key, again, "re-encoding %s changed its key", tt.want)

		h, e := s.ReadHeader(tt.key)
		require.NoError(t, e)
		assert.Equal(t, tt.want, h.Type)
	}

	gotCommit, e := s.Get(commitKey)
	require.NoError(t, e)
	assert.Equal(t, treeKey, gotCommit.(*objects.Commit).Tree)
	assert.Equal(t, "first\n", gotCommit.(*objects.Commit).Message)
}

func TestPut_TagKeepsItsOwnTypeTag(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	target, e := s.Put(objects.NewBlob([]byte("x")), true)
	require.NoError(t, e)
	key, e := s.Put(&objects.Tag{Object: target, ObjectType: objects.BlobType, Name: "v0"}, true)
	require.NoError(t, e)

	data, e := os.ReadFile(objectsDir.ObjectFilePath(key.String()).String())
	require.NoError(t, e)
	frame, e := objects.Decompress(data)
	require.NoError(t, e)
	assert.True(t, strings.HasPrefix(string(frame), "tag "), "frame starts with %q", frame[:8])
}

func TestPut_SerializationRefused(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	_, e := s.Put(&objects.Commit{Message: "no tree, no author"}, true)
	require.Error(t, e)
	assert.True(t, err.IsCode(e, err.CodeSerialization))

	_, e = s.Put(&objects.Tag{Name: "dangling"}, true)
	require.Error(t, e)
	assert.True(t, err.IsCode(e, err.CodeSerialization))

	_, e = s.Put(nil, true)
	assert.Error(t, e)

	entries, _ := os.ReadDir(objectsDir.String())
	assert.Empty(t, entries)
}

func TestGet_Missing(t *testing.T) {
	s, _ := setupTestStore(t)

	_, e := s.Get("0123456789012345678901234567890123456789")
	require.Error(t, e)
	assert.True(t, IsNotFound(e))

	_, e = s.Get("not-a-key")
	assert.True(t, IsNotFound(e))
}

func TestGet_StrictFraming(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	good := compress(t, "blob 200\x00"+strings.Repeat("a", 200))

	tests := []struct {
		name  string
		data  []byte
		check func(error) bool
	}{
		{"length longer than payload", compress(t, "blob 5\x00hi"), IsCorrupt},
		{"length shorter than payload", compress(t, "blob 1\x00hi"), IsCorrupt},
		{"negative length", compress(t, "blob -2\x00hi"), IsCorrupt},
		{"hex length", compress(t, "blob 0x2\x00hi"), IsCorrupt},
		{"missing space", compress(t, "blob2\x00hi"), IsCorrupt},
		{"missing NUL", compress(t, "blob 2 hi"), IsCorrupt},
		{"truncated stream", good[:len(good)/2], IsCorrupt},
		{"not zlib", []byte("plain text"), IsCorrupt},
		{"bad tree payload", compress(t, "tree 3\x00abc"), IsCorrupt},
		{"unknown type", compress(t, "note 2\x00hi"), objects.IsUnknownType},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := plantFrame(t, objectsDir, strings.Repeat("0", 38)+hex2(i), tt.data)
			_, e := s.Get(key)
			require.Error(t, e)
			assert.True(t, tt.check(e), "unexpected error: %v", e)
		})
	}
}

func hex2(i int) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[i/16%16], digits[i%16]})
}

func TestResolve(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	blobKey, e := s.Put(objects.NewBlob([]byte("Hello, world!")), true)
	require.NoError(t, e)
	tagKey, e := s.Put(&objects.Tag{Object: blobKey, ObjectType: objects.BlobType, Name: "v1"}, true)
	require.NoError(t, e)

	t.Run("full key", func(t *testing.T) {
		got, e := s.Resolve(blobKey.String(), "", false)
		require.NoError(t, e)
		assert.Equal(t, blobKey, got)

		got, e = s.Resolve(strings.ToUpper(blobKey.String()), objects.BlobType, false)
		require.NoError(t, e)
		assert.Equal(t, blobKey, got)
	})

	t.Run("unique prefix", func(t *testing.T) {
		got, e := s.Resolve(blobKey.String()[:7], objects.BlobType, false)
		require.NoError(t, e)
		assert.Equal(t, blobKey, got)
	})

	t.Run("not found", func(t *testing.T) {
		for _, name := range []string{
			"0000000000000000000000000000000000000000",
			"5dd",
			"ffff",
			"HEAD",
			"",
		} {
			_, e := s.Resolve(name, "", false)
			assert.True(t, IsNotFound(e), "name %q: %v", name, e)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		plantFrame(t, objectsDir, "abcd"+strings.Repeat("0", 36), compress(t, "blob 0\x00"))
		plantFrame(t, objectsDir, "abcd"+strings.Repeat("1", 36), compress(t, "blob 0\x00"))

		_, e := s.Resolve("abcd", "", false)
		require.Error(t, e)
		assert.True(t, IsAmbiguous(e))

		got, e := s.Resolve("abcd1", "", false)
		require.NoError(t, e)
		assert.Equal(t, objects.ObjectHash("abcd"+strings.Repeat("1", 36)), got)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, e := s.Resolve(blobKey.String(), objects.TreeType, true)
		require.Error(t, e)
		assert.True(t, IsNotFound(e))
	})

	t.Run("tag following", func(t *testing.T) {
		got, e := s.Resolve(tagKey.String(), objects.BlobType, true)
		require.NoError(t, e)
		assert.Equal(t, blobKey, got)

		_, e = s.Resolve(tagKey.String(), objects.BlobType, false)
		assert.True(t, IsNotFound(e))

		got, e = s.Resolve(tagKey.String(), objects.TagType, false)
		require.NoError(t, e)
		assert.Equal(t, tagKey, got)
	})
}

func TestWalk_SkipsForeignFiles(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	keys := map[objects.ObjectHash]bool{}
	for _, content := range []string{"one", "two", "three"} {
		k, e := s.Put(objects.NewBlob([]byte(content)), true)
		require.NoError(t, e)
		keys[k] = true
	}

	fanout := objectsDir.Join("ab")
	require.NoError(t, os.MkdirAll(fanout.String(), 0755))
	require.NoError(t, os.WriteFile(fanout.Join(".tmp-12345").String(), []byte("partial"), 0644))
	require.NoError(t, os.MkdirAll(objectsDir.Join("info").String(), 0755))
	require.NoError(t, os.WriteFile(objectsDir.Join("info", "packs").String(), nil, 0644))

	var seen []objects.ObjectHash
	require.NoError(t, s.Walk(func(k objects.ObjectHash) error {
		seen = append(seen, k)
		return nil
	}))

	assert.Len(t, seen, 3)
	for _, k := range seen {
		assert.True(t, keys[k], "unexpected key %s", k)
	}
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i-1].String(), seen[i].String())
	}
}

func TestHas(t *testing.T) {
	s, _ := setupTestStore(t)

	key, e := s.Put(objects.NewBlob(nil), true)
	require.NoError(t, e)
	assert.Equal(t, objects.ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"), key)

	ok, e := s.Has(key)
	require.NoError(t, e)
	assert.True(t, ok)

	ok, e = s.Has("e69de29bb2d1d6434b8b29ae775ad8c2e48c5390")
	require.NoError(t, e)
	assert.False(t, ok)

	ok, e = s.Has("short")
	require.NoError(t, e)
	assert.False(t, ok)
}

// plantPayload stores a frame for payload under its true key, bypassing Put.
func plantPayload(t *testing.T, objectsDir scpath.SourcePath, typ objects.ObjectType, payload string) objects.ObjectHash {
	t.Helper()
	frame := objects.NewFrame(typ, []byte(payload))
	return plantFrame(t, objectsDir, objects.ComputeHash(frame).String(), compress(t, string(frame)))
}

func treeEntry(t *testing.T, mode, name string, key objects.ObjectHash) string {
	t.Helper()
	raw, e := key.Raw()
	require.NoError(t, e)
	return mode + " " + name + "\x00" + string(raw[:])
}

func TestGet_NonCanonicalPayloadIsCorrupt(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	blobKey, e := s.Put(objects.NewBlob([]byte("hello\n")), true)
	require.NoError(t, e)
	person := "a <a@x> 1 +0000"

	tests := []struct {
		name    string
		typ     objects.ObjectType
		payload string
	}{
		{"unsorted tree", objects.TreeType,
			treeEntry(t, "100644", "b", blobKey) + treeEntry(t, "100644", "a", blobKey)},
		{"duplicate tree entry", objects.TreeType,
			treeEntry(t, "100644", "a", blobKey) + treeEntry(t, "100644", "a", blobKey)},
		{"commit headers out of order", objects.CommitType,
			"author " + person + "\ntree " + blobKey.String() + "\ncommitter " + person + "\n\n"},
		{"commit with repeated author", objects.CommitType,
			"tree " + blobKey.String() + "\nauthor " + person + "\nauthor " + person + "\ncommitter " + person + "\n\n"},
		{"tag with repeated object", objects.TagType,
			"object " + blobKey.String() + "\nobject " + blobKey.String() + "\ntype blob\ntag v1\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := plantPayload(t, objectsDir, tt.typ, tt.payload)

			_, e := s.Get(key)
			require.Error(t, e)
			assert.True(t, IsCorrupt(e), "got %v", e)
			assert.Equal(t, err.CodeCorruptObject, err.GetCode(e))
		})
	}
}

func TestGet_ReturnsStoredBytes(t *testing.T) {
	s, objectsDir := setupTestStore(t)

	payload := "tree 4b825dc642cb6eb9a060e54bf8d69288fbee4904\n" +
		"author A <a@b> 1 -0000\n" +
		"committer A <a@b> 1 -0000\n" +
		"\n" +
		"negative zero offset\n"
	key := plantPayload(t, objectsDir, objects.CommitType, payload)

	obj, e := s.Get(key)
	require.NoError(t, e)

	again, e := obj.Serialize()
	require.NoError(t, e)
	assert.Equal(t, payload, string(again))

	rekey, e := s.Put(obj, false)
	require.NoError(t, e)
	assert.Equal(t, key, rekey)
}
