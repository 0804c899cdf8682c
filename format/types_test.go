package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in       string
		expected CompressionType
		ext      string
	}{
		{"", CompressionNone, ""},
		{"none", CompressionNone, ""},
		{"ZSTD", CompressionZstd, ".zst"},
		{"s2", CompressionS2, ".s2"},
		{" lz4 ", CompressionLZ4, ".lz4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ct, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.expected, ct)
			require.Equal(t, tt.ext, ct.Ext())
		})
	}

	_, err := ParseCompressionType("gzip")
	require.Error(t, err)
	require.Equal(t, "Unknown", CompressionType(0xFF).String())
}

func TestParseReportFormat(t *testing.T) {
	f, err := ParseReportFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatText, f)

	f, err = ParseReportFormat("CSV")
	require.NoError(t, err)
	require.Equal(t, FormatCSV, f)
	require.Equal(t, ".csv", f.Ext())
	require.Equal(t, "text/csv; charset=utf-8", f.ContentType())

	f, err = ParseReportFormat("json")
	require.NoError(t, err)
	require.Equal(t, "json", f.String())

	_, err = ParseReportFormat("xml")
	require.Error(t, err)
}

func TestImageFormat(t *testing.T) {
	f, err := ParseImageFormat("svg")
	require.NoError(t, err)
	require.Equal(t, ImageSVG, f)
	require.Equal(t, "image/svg+xml", f.ContentType())

	require.Equal(t, ImagePNG, ImageFormatFromPath("plot.PNG"))
	require.Equal(t, ImageSVG, ImageFormatFromPath("out/plot.svg"))
	require.Equal(t, ImagePNG, ImageFormatFromPath("plot"))

	_, err = ParseImageFormat("gif")
	require.Error(t, err)
}

func TestCompressionTypeFromPath(t *testing.T) {
	require.Equal(t, CompressionZstd, CompressionTypeFromPath("run.csv.zst"))
	require.Equal(t, CompressionS2, CompressionTypeFromPath("run.csv.S2"))
	require.Equal(t, CompressionLZ4, CompressionTypeFromPath("/tmp/run.lz4"))
	require.Equal(t, CompressionNone, CompressionTypeFromPath("run.csv"))
}
