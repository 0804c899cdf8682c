package compress

import (
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/potency/format"
)

// MaxDecompressedSize bounds the output of Decompress.
const MaxDecompressedSize = 64 * 1024 * 1024 // 64MiB

// ErrTooLarge is returned when decompressed data exceeds MaxDecompressedSize.
var ErrTooLarge = errors.New("compress: decompressed data exceeds size limit")

// Compressor compresses a complete payload.
//
// The returned slice is owned by the caller. The input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Returns an error when the input is corrupted, was produced by another algorithm or
// expands beyond MaxDecompressedSize.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions and reports its algorithm.
type Codec interface {
	Compressor
	Decompressor
	Type() format.CompressionType
}

// Stats describes one compression operation.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size (0 if the original is empty).
// Values below 1 mean the output shrank.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage. Negative values indicate
// framing overhead larger than the savings, common for very small reports.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0
	}

	return (1 - s.Ratio()) * 100
}

// CreateCodec creates a Codec for the compression type.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: What the codec is used for, included in error messages
//
// Returns:
//   - Codec: Codec for the requested type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// CompressWithStats compresses data with codec and reports the sizes.
func CompressWithStats(codec Codec, data []byte) ([]byte, Stats, error) {
	out, err := codec.Compress(data)
	if err != nil {
		return nil, Stats{}, err
	}

	return out, Stats{
		Algorithm:      codec.Type(),
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
	}, nil
}

// readAllLimited drains r, failing with ErrTooLarge past MaxDecompressedSize.
func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDecompressedSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return data, nil
}
