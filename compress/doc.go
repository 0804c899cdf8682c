// Package compress provides the codecs applied to exported reports and accepted on
// compressed dataset input.
//
// Every codec produces a self-describing stream in the standard container format of
// its algorithm, so exported files open with the usual command line tools:
//
//   - None (format.CompressionNone): data is passed through unchanged
//   - Zstd (format.CompressionZstd): Zstandard frames, readable by `zstd -d`
//   - S2 (format.CompressionS2): S2 stream format, readable by `s2d`
//   - LZ4 (format.CompressionLZ4): LZ4 frame format, readable by `lz4 -d`
//
// Zstd uses the pure-Go klauspost/compress implementation by default. Building with
// `-tags cgozstd` (and cgo enabled) switches to the valyala/gozstd binding.
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "report")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(reportBytes)
//
// Decompression output is capped at MaxDecompressedSize to bound memory on untrusted
// input.
//
// All codecs are safe for concurrent use.
package compress
