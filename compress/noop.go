package compress

import "github.com/arloliu/potency/format"

// NoOpCompressor passes data through unchanged.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through codec.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, failing only beyond MaxDecompressedSize.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return data, nil
}

// Type returns format.CompressionNone.
func (c NoOpCompressor) Type() format.CompressionType {
	return format.CompressionNone
}
