package compress

import "github.com/arloliu/potency/format"

// ZstdCompressor writes Zstandard frames.
//
// The implementation is selected at build time; see zstd_pure.go and zstd_cgo.go.
// Both produce standard frames and decode each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with the default level.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(report)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// Type returns format.CompressionZstd.
func (c ZstdCompressor) Type() format.CompressionType {
	return format.CompressionZstd
}
