package report

import (
	"fmt"
	"io"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/compress"
	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/internal/pool"
)

// Export renders res and writes it compressed with ct.
//
// Returns:
//   - compress.Stats: Rendered and written sizes
//   - error: Render, compression or write failure
func Export(w io.Writer, res *assay.Result, rf format.ReportFormat, ct format.CompressionType, opts ...Option) (compress.Stats, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return compress.Stats{}, fmt.Errorf("export report: %w", err)
	}

	buf := pool.GetReportBuffer()
	defer pool.PutReportBuffer(buf)

	if err := Render(buf, res, rf, opts...); err != nil {
		return compress.Stats{}, err
	}

	out, stats, err := compress.CompressWithStats(codec, buf.Bytes())
	if err != nil {
		return compress.Stats{}, fmt.Errorf("export report: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return compress.Stats{}, fmt.Errorf("export report: %w", err)
	}

	return stats, nil
}

// ExportName appends the report and compression extensions to base,
// e.g. "run1" becomes "run1.json.zst".
func ExportName(base string, rf format.ReportFormat, ct format.CompressionType) string {
	return base + rf.Ext() + ct.Ext()
}
