package objects

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress zlib-compresses a frame.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)

	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize compression: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress inflates a zlib stream. Truncated or damaged input yields a
// corrupt-object error.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, corruptObject("decompress", "invalid zlib header: "+err.Error())
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, corruptObject("decompress", "invalid zlib stream: "+err.Error())
	}
	return out, nil
}
