package compress

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/potency/format"
)

// S2Compressor writes the S2 stream format.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as an S2 stream.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := s2.NewWriter(&buf, s2.WriterConcurrency(1))
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("s2 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes an S2 (or Snappy framed) stream.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readAllLimited(s2.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}

// Type returns format.CompressionS2.
func (c S2Compressor) Type() format.CompressionType {
	return format.CompressionS2
}
