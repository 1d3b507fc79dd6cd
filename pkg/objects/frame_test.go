package objects

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrame(t *testing.T) {
	frame := NewFrame(BlobType, []byte("Hello, world!"))
	assert.Equal(t, []byte("blob 13\x00Hello, world!"), frame)

	assert.Equal(t, []byte("tree 0\x00"), NewFrame(TreeType, nil))
}

func TestComputeHash_KnownKeys(t *testing.T) {
	tests := []struct {
		payload string
		want    ObjectHash
	}{
		{"", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hello\n", "ce013625030ba8dba906f756967f9e9ca394464a"},
		{"Hello, world!", "5dd01c177f5d7d1be5346a5bc18a569a7410c2ef"},
	}

	for _, tt := range tests {
		frame := NewFrame(BlobType, []byte(tt.payload))
		assert.Equal(t, tt.want, ComputeHash(frame), "payload %q", tt.payload)

		sum := sha1.Sum(frame)
		assert.Equal(t, hex.EncodeToString(sum[:]), ComputeHash(frame).String())
	}
}

func TestParseFrame_Valid(t *testing.T) {
	typ, payload, err := ParseFrame([]byte("commit 3\x00a\x00b"))
	require.NoError(t, err)
	assert.Equal(t, CommitType, typ)
	assert.Equal(t, []byte("a\x00b"), payload)

	typ, payload, err = ParseFrame([]byte("blob 0\x00"))
	require.NoError(t, err)
	assert.Equal(t, BlobType, typ)
	assert.Empty(t, payload)
}

func TestParseFrame_Corrupt(t *testing.T) {
	tests := map[string]string{
		"missing NUL":        "blob 5hello",
		"missing space":      "blob5\x00hello",
		"negative length":    "blob -5\x00hello",
		"signed length":      "blob +5\x00hello",
		"non-decimal length": "blob 0x5\x00hello",
		"empty length":       "blob \x00hello",
		"leading zero":       "blob 05\x00hello",
		"length too long":    "blob 6\x00hello",
		"length too short":   "blob 4\x00hello",
		"overflowing length": "blob 99999999999999999999\x00hello",
		"empty":              "",
	}

	for name, frame := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseFrame([]byte(frame))
			require.Error(t, err)
			assert.True(t, IsCorrupt(err), "got %v", err)
		})
	}
}

func TestParseFrame_UnknownType(t *testing.T) {
	_, _, err := ParseFrame([]byte("note 5\x00hello"))
	require.Error(t, err)
	assert.True(t, IsUnknownType(err))
	assert.Contains(t, err.Error(), "note")
}

func TestParseHeader(t *testing.T) {
	h, err := ParseHeader([]byte("tag 7\x00payload-and-more"))
	require.NoError(t, err)
	assert.Equal(t, TagType, h.Type)
	assert.Equal(t, int64(7), h.Size)
	assert.Equal(t, 6, h.Offset)
}

func TestCompressRoundTrip(t *testing.T) {
	frame := NewFrame(BlobType, bytes.Repeat([]byte("abc"), 1000))

	compressed, err := Compress(frame)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(frame))
	// zlib streams start with a CMF byte of 0x78 for deflate with a 32K window.
	assert.Equal(t, byte(0x78), compressed[0])

	out, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, frame, out)
}

func TestDecompress_Corrupt(t *testing.T) {
	compressed, err := Compress(NewFrame(BlobType, bytes.Repeat([]byte("xyz"), 500)))
	require.NoError(t, err)

	tests := map[string][]byte{
		"not zlib":  []byte("definitely not compressed"),
		"truncated": compressed[:len(compressed)/2],
		"empty":     nil,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decompress(data)
			require.Error(t, err)
			assert.True(t, IsCorrupt(err))
		})
	}
}

func TestObjectHash(t *testing.T) {
	h, err := NewObjectHashFromString("5DD01C177F5D7D1BE5346A5BC18A569A7410C2EF")
	require.NoError(t, err)
	assert.Equal(t, ObjectHash("5dd01c177f5d7d1be5346a5bc18a569a7410c2ef"), h)
	assert.Equal(t, "5dd01c1", h.Short())
	assert.True(t, h.HasPrefix("5DD0"))

	raw, err := h.Raw()
	require.NoError(t, err)
	assert.Equal(t, h, NewObjectHashFromRaw(raw))

	for _, bad := range []string{"", "5dd0", "zz" + string(h[2:]), string(h) + "00"} {
		_, err := NewObjectHashFromString(bad)
		assert.Error(t, err, "input %q", bad)
	}
}
