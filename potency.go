// Package potency estimates the relative potency of a test sample against a reference
// standard with the parallel-line bioassay model.
//
// Each sample group is fitted independently with response = Intercept + Slope * log10(dose).
// The horizontal shift between the two lines, expressed on the natural exponential scale,
// is the relative potency:
//
//	RP = exp((Test.Intercept - Reference.Intercept) / Reference.Slope)
//
// # Core Features
//
//   - Per-group ordinary least squares fits on log10(dose)
//   - Relative potency and slope difference with typed validation and computation errors
//   - CSV, TSV and JSON dataset ingestion with column aliases
//   - Text, CSV and JSON reports, optionally compressed with Zstd, S2 or LZ4
//   - PNG and SVG dose-response plots
//
// # Basic Usage
//
// Estimating from an in-memory CSV dataset:
//
//	import "github.com/arloliu/potency"
//
//	res, err := potency.EstimateCSV(strings.NewReader(data))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("RP = %.2f\n", res.RelativePotency)
//
// Analyzing a file, which may be compressed:
//
//	a, _ := potency.AnalyzeFile("run1.csv.zst", nil)
//	fmt.Println(a.DatasetID, a.Result.RelativePotency)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the assay, dataset and
// compress packages. For fine-grained control, use those packages directly.
package potency

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/compress"
	"github.com/arloliu/potency/dataset"
	"github.com/arloliu/potency/format"
)

// Analysis is one estimated dataset together with its provenance.
type Analysis struct {
	// Source is the file name or label the dataset came from.
	Source string
	// DatasetID is the hex fingerprint of Observations.
	DatasetID    string
	Observations []assay.Observation
	Result       *assay.Result
}

// EstimateCSV reads a delimited dataset with a header row and estimates its relative potency.
//
// Parameters:
//   - r: CSV input
//   - opts: Estimator options
//
// Returns:
//   - *assay.Result: The estimate
//   - error: Read, validation or computation error
func EstimateCSV(r io.Reader, opts ...assay.Option) (*assay.Result, error) {
	obs, err := dataset.Read(r)
	if err != nil {
		return nil, err
	}

	return assay.Estimate(obs, opts...)
}

// Decode parses data according to the extensions of name.
//
// A trailing .zst, .s2 or .lz4 extension decompresses data first. The remaining
// extension then selects the reader: .json for JSON documents, .tsv for tab separated
// text and anything else for CSV.
//
// Parameters:
//   - name: File name used only for its extensions
//   - data: Raw file contents
//   - opts: Reader options
//
// Returns:
//   - []assay.Observation: Parsed rows
//   - error: Decompression or read error
func Decode(name string, data []byte, opts ...dataset.Option) ([]assay.Observation, error) {
	base := name
	if ct := format.CompressionTypeFromPath(name); ct != format.CompressionNone {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return nil, err
		}
		if data, err = codec.Decompress(data); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", filepath.Base(name), err)
		}
		base = name[:len(name)-len(ct.Ext())]
	}

	r := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".json":
		return dataset.ReadJSON(r, opts...)
	case ".tsv":
		return dataset.Read(r, append([]dataset.Option{dataset.WithComma('\t')}, opts...)...)
	default:
		return dataset.Read(r, opts...)
	}
}

// Analyze decodes data and estimates its relative potency.
//
// Parameters:
//   - name: Source label; its extensions select the decoding (see Decode)
//   - data: Raw contents
//   - readOpts: Reader options, may be nil
//   - estimateOpts: Estimator options
//
// Returns:
//   - *Analysis: The decoded rows and estimate
//   - error: Read, validation or computation error
func Analyze(name string, data []byte, readOpts []dataset.Option, estimateOpts ...assay.Option) (*Analysis, error) {
	obs, err := Decode(name, data, readOpts...)
	if err != nil {
		return nil, err
	}

	res, err := assay.Estimate(obs, estimateOpts...)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Source:       name,
		DatasetID:    dataset.FingerprintHex(obs),
		Observations: obs,
		Result:       res,
	}, nil
}

// AnalyzeFile is Analyze on the contents of path.
func AnalyzeFile(path string, readOpts []dataset.Option, estimateOpts ...assay.Option) (*Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Analyze(path, data, readOpts, estimateOpts...)
}
