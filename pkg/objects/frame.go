package objects

import (
	"bytes"
	"strconv"
)

// NewFrame builds the canonical frame for a payload.
// Format: "<type> <size>\0<payload>"
func NewFrame(t ObjectType, payload []byte) []byte {
	header := t.String() + " " + strconv.Itoa(len(payload))
	frame := make([]byte, 0, len(header)+1+len(payload))
	frame = append(frame, header...)
	frame = append(frame, NullByte)
	return append(frame, payload...)
}

// Header is the decoded prefix of a frame.
type Header struct {
	Type ObjectType
	Size int64

	// Offset is where the payload starts in the frame.
	Offset int
}

// ParseHeader decodes the frame header without checking the payload length.
// A frame missing its space or NUL, or with a length that is not a
// canonical non-negative decimal, is corrupt. The length is validated
// before the type tag.
func ParseHeader(frame []byte) (Header, error) {
	nul := bytes.IndexByte(frame, NullByte)
	if nul == -1 {
		return Header{}, corruptObject("parse-header", "missing NUL after header")
	}

	sp := bytes.IndexByte(frame[:nul], SpaceByte)
	if sp == -1 {
		return Header{}, corruptObject("parse-header", "missing space in header")
	}

	size, ok := parseLength(frame[sp+1 : nul])
	if !ok {
		return Header{}, corruptObject("parse-header", "invalid length "+quote(string(frame[sp+1:nul])))
	}

	t := ObjectType(frame[:sp])
	if !t.IsValid() {
		return Header{}, unknownType("parse-header", string(frame[:sp]))
	}

	return Header{Type: t, Size: size, Offset: nul + 1}, nil
}

// ParseFrame splits a frame into its type and payload.
// The payload length must equal the declared length exactly.
func ParseFrame(frame []byte) (ObjectType, []byte, error) {
	h, err := ParseHeader(frame)
	if err != nil {
		return "", nil, err
	}

	payload := frame[h.Offset:]
	if int64(len(payload)) != h.Size {
		return "", nil, corruptObject("parse-frame",
			"length mismatch: header says "+strconv.FormatInt(h.Size, 10)+", payload has "+strconv.Itoa(len(payload)))
	}
	return h.Type, payload, nil
}

// parseLength accepts only ASCII digits without a sign or leading zeros.
func parseLength(b []byte) (int64, bool) {
	if len(b) == 0 || (len(b) > 1 && b[0] == '0') {
		return 0, false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
