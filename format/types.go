// Package format defines the enumerations shared by report rendering, export and transport.
package format

import (
	"fmt"
	"strings"
)

type (
	CompressionType uint8
	ReportFormat    uint8
	ImageFormat     uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	FormatText ReportFormat = 0x1 // FormatText is the human-readable report.
	FormatCSV  ReportFormat = 0x2 // FormatCSV is the Parameter,Value table.
	FormatJSON ReportFormat = 0x3 // FormatJSON is the structured result.

	ImagePNG ImageFormat = 0x1 // ImagePNG renders raster plots.
	ImageSVG ImageFormat = 0x2 // ImageSVG renders vector plots.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Ext returns the file extension appended to exported files, including the dot.
func (c CompressionType) Ext() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompressionType parses a case-insensitive compression name.
// An empty name selects CompressionNone.
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (supported: none, zstd, s2, lz4)", name)
	}
}

func (f ReportFormat) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Ext returns the file extension for the report format, including the dot.
func (f ReportFormat) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type of the rendered report.
func (f ReportFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseReportFormat parses a case-insensitive report format name.
// An empty name selects FormatText.
func ParseReportFormat(name string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown report format %q (supported: text, csv, json)", name)
	}
}

func (f ImageFormat) String() string {
	switch f {
	case ImagePNG:
		return "png"
	case ImageSVG:
		return "svg"
	default:
		return "unknown"
	}
}

// ContentType returns the MIME type of the rendered image.
func (f ImageFormat) ContentType() string {
	if f == ImageSVG {
		return "image/svg+xml"
	}

	return "image/png"
}

// ParseImageFormat parses a case-insensitive image format name.
// An empty name selects ImagePNG.
func ParseImageFormat(name string) (ImageFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return ImagePNG, nil
	case "svg":
		return ImageSVG, nil
	default:
		return 0, fmt.Errorf("unknown image format %q (supported: png, svg)", name)
	}
}

// ImageFormatFromPath picks the image format from a file name extension.
func ImageFormatFromPath(path string) ImageFormat {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return ImageSVG
	}

	return ImagePNG
}

// CompressionTypeFromPath picks the compression from a file name extension.
// Unrecognized extensions select CompressionNone.
func CompressionTypeFromPath(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, c := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.HasSuffix(lower, c.Ext()) {
			return c
		}
	}

	return CompressionNone
}
