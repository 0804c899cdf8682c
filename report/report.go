package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/internal/options"
)

// Parameter names, in report order.
const (
	ParamReferenceSlope     = "Reference Slope"
	ParamReferenceIntercept = "Reference Intercept"
	ParamTestSlope          = "Test Slope"
	ParamTestIntercept      = "Test Intercept"
	ParamRelativePotency    = "Relative Potency (RP)"
	ParamSlopeDifference    = "Slope Difference"
)

// Parameter is one named value of a report.
type Parameter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Parameters lists the reported values of res in their fixed order.
func Parameters(res *assay.Result) []Parameter {
	return []Parameter{
		{Name: ParamReferenceSlope, Value: res.Reference.Slope},
		{Name: ParamReferenceIntercept, Value: res.Reference.Intercept},
		{Name: ParamTestSlope, Value: res.Test.Slope},
		{Name: ParamTestIntercept, Value: res.Test.Intercept},
		{Name: ParamRelativePotency, Value: res.RelativePotency},
		{Name: ParamSlopeDifference, Value: res.SlopeDifference},
	}
}

// Document is the JSON report.
type Document struct {
	DatasetID       string         `json:"dataset_id,omitempty"`
	Source          string         `json:"source,omitempty"`
	Parameters      []Parameter    `json:"parameters"`
	Reference       assay.GroupFit `json:"reference"`
	Test            assay.GroupFit `json:"test"`
	RelativePotency float64        `json:"relative_potency"`
	SlopeDifference float64        `json:"slope_difference"`
}

// NewDocument builds the JSON report of res.
func NewDocument(res *assay.Result, opts ...Option) (*Document, error) {
	cfg := &renderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return newDocument(res, cfg), nil
}

func newDocument(res *assay.Result, cfg *renderConfig) *Document {
	return &Document{
		DatasetID:       cfg.datasetID,
		Source:          cfg.source,
		Parameters:      Parameters(res),
		Reference:       res.Reference,
		Test:            res.Test,
		RelativePotency: res.RelativePotency,
		SlopeDifference: res.SlopeDifference,
	}
}

// Render writes res to w in the requested format.
//
// Text uses two decimals per value. CSV and JSON keep full float64 precision.
func Render(w io.Writer, res *assay.Result, rf format.ReportFormat, opts ...Option) error {
	if res == nil {
		return fmt.Errorf("render report: nil result")
	}

	cfg := &renderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	switch rf {
	case format.FormatText:
		return renderText(w, res, cfg)
	case format.FormatCSV:
		return renderCSV(w, res)
	case format.FormatJSON:
		return renderJSON(w, res, cfg)
	default:
		return fmt.Errorf("render report: unsupported format %s", rf)
	}
}

func renderText(w io.Writer, res *assay.Result, cfg *renderConfig) error {
	ew := &errWriter{w: w}

	ew.printf("Parallel-Line Relative Potency\n")
	if cfg.source != "" {
		ew.printf("Source: %s\n", cfg.source)
	}
	if cfg.datasetID != "" {
		ew.printf("Dataset: %s\n", cfg.datasetID)
	}
	ew.printf("\n")
	for _, p := range Parameters(res) {
		ew.printf("%s: %s\n", p.Name, fixed2(p.Value))
	}
	ew.printf("\n")
	for _, fit := range []assay.GroupFit{res.Reference, res.Test} {
		ew.printf("%s fit: R² = %.4f, RMSE = %s, n = %d, dose %g to %g\n",
			fit.Group, fit.RSquared, fixed2(fit.RMSE), fit.N, fit.MinDose, fit.MaxDose)
	}

	return ew.err
}

func renderCSV(w io.Writer, res *assay.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Parameter", "Value"}); err != nil {
		return err
	}
	for _, p := range Parameters(res) {
		if err := cw.Write([]string{p.Name, strconv.FormatFloat(p.Value, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func renderJSON(w io.Writer, res *assay.Result, cfg *renderConfig) error {
	enc := json.NewEncoder(w)
	if cfg.indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(newDocument(res, cfg))
}

// fixed2 formats v with two decimals without printing negative zero.
func fixed2(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	if s == "-0.00" {
		return "0.00"
	}

	return s
}

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(layout string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, layout, args...)
}
