//go:build cgo && cgozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

const zstdLevel = 3

// Compress encodes data as a single Zstandard frame through libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes Zstandard frames through libzstd.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decompressed, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(decompressed) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return decompressed, nil
}
