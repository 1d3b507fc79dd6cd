package objects

// Blob is an opaque byte payload. Its encoding is the identity.
type Blob struct {
	data []byte
}

// NewBlob creates a blob holding a copy of data.
func NewBlob(data []byte) *Blob {
	return &Blob{data: append([]byte(nil), data...)}
}

// DeserializeBlob creates a blob from a payload.
func DeserializeBlob(payload []byte) (*Blob, error) {
	return NewBlob(payload), nil
}

// Type returns the object type
func (b *Blob) Type() ObjectType {
	return BlobType
}

// Serialize returns the blob bytes unchanged.
func (b *Blob) Serialize() ([]byte, error) {
	return append([]byte(nil), b.data...), nil
}

// Data returns the blob contents. The slice must not be modified.
func (b *Blob) Data() []byte {
	return b.data
}

// Size returns the size of the content in bytes
func (b *Blob) Size() int {
	return len(b.data)
}

func (*Blob) sealed() {}
