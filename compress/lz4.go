package compress

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/potency/format"
)

// Frame writers keep sizable internal buffers, so they are pooled and Reset per call.
var lz4WriterPool = sync.Pool{
	New: func() any {
		return lz4.NewWriter(nil)
	},
}

// LZ4Compressor writes the LZ4 frame format.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as one LZ4 frame with a content checksum.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w, _ := lz4WriterPool.Get().(*lz4.Writer)
	defer lz4WriterPool.Put(w)
	w.Reset(&buf)

	if err := w.Apply(lz4.ChecksumOption(true), lz4.ConcurrencyOption(1)); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decodes an LZ4 frame.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := readAllLimited(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	return out, nil
}

// Type returns format.CompressionLZ4.
func (c LZ4Compressor) Type() format.CompressionType {
	return format.CompressionLZ4
}
