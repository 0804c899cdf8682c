//go:build !(cgo && cgozstd)

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Decoders are reused across calls; DecodeAll is stateless.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(MaxDecompressedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress encodes data as a single Zstandard frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes one or more concatenated Zstandard frames.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(decompressed) > MaxDecompressedSize {
		return nil, ErrTooLarge
	}

	return decompressed, nil
}
