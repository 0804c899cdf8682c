package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/potency/compress"
	"github.com/arloliu/potency/errs"
	"github.com/arloliu/potency/report"
)

const scenarioCSV = `E_T_Ratio,Killing(%),Sample
2,20,Reference
4,40,Reference
8,60,Reference
16,80,Reference
2,25,Test
4,45,Test
8,65,Test
16,85,Test
`

func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)

	return stdout.String(), stderr.String(), err
}

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestAnalyze_Text(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)

	out, _, err := execute(t, context.Background(), "analyze", path)
	require.NoError(t, err)
	require.Contains(t, out, "Parallel-Line Relative Potency\n")
	require.Contains(t, out, "Source: "+path+"\n")
	require.Contains(t, out, "Relative Potency (RP): 1.08\n")
	require.Contains(t, out, "Slope Difference: 0.00\n")
}

func TestAnalyze_MultipleFilesInOrder(t *testing.T) {
	first := writeDataset(t, "first.csv", scenarioCSV)
	second := writeDataset(t, "second.tsv", strings.ReplaceAll(scenarioCSV, ",", "\t"))

	out, _, err := execute(t, context.Background(), "analyze", "--format", "csv", second, first)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(out, "Parameter,Value\n"))

	out, _, err = execute(t, context.Background(), "analyze", second, first)
	require.NoError(t, err)
	require.Less(t, strings.Index(out, second), strings.Index(out, first))
}

func TestAnalyze_PreviewAndExport(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)
	export := filepath.Join(t.TempDir(), "report.json.zst")

	out, stderr, err := execute(t, context.Background(),
		"analyze", "--format", "json", "--preview", "3", "--export", export, path)
	require.NoError(t, err)
	require.Contains(t, out, "Response")
	require.Contains(t, out, "Reference")
	require.Contains(t, out, `"relative_potency"`)
	require.Contains(t, stderr, "report exported")

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	plain, err := compress.NewZstdCompressor().Decompress(data)
	require.NoError(t, err)

	var doc report.Document
	require.NoError(t, json.Unmarshal(plain, &doc))
	require.InEpsilon(t, 1.07816, doc.RelativePotency, 1e-5)
	require.Equal(t, path, doc.Source)
}

func TestAnalyze_ExportCompressFlag(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)
	export := filepath.Join(t.TempDir(), "report.csv")

	_, _, err := execute(t, context.Background(),
		"analyze", "--format", "csv", "--export", export, "--compress", "s2", path)
	require.NoError(t, err)

	data, err := os.ReadFile(export)
	require.NoError(t, err)
	plain, err := compress.NewS2Compressor().Decompress(data)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(plain), "Parameter,Value\n"))
}

func TestAnalyze_Plot(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)
	plot := filepath.Join(t.TempDir(), "fit.svg")

	_, _, err := execute(t, context.Background(), "analyze", "--plot", plot, path)
	require.NoError(t, err)

	data, err := os.ReadFile(plot)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")
}

func TestAnalyze_Errors(t *testing.T) {
	missingTest := writeDataset(t, "ref.csv", "dose,response,group\n1,10,Reference\n10,30,Reference\n")
	good := writeDataset(t, "run.csv", scenarioCSV)

	_, _, err := execute(t, context.Background(), "analyze", missingTest)
	require.ErrorIs(t, err, errs.ErrMissingGroup)
	require.Equal(t,
		fmt.Sprintf("error (validation): %s: missing group (field group, group Test): no rows", missingTest),
		formatError(err))

	_, _, err = execute(t, context.Background(), "analyze", "--tolerance", "1000", good)
	require.ErrorIs(t, err, errs.ErrUndefinedPotency)
	require.True(t, strings.HasPrefix(formatError(err), "error (computation): "))

	_, _, err = execute(t, context.Background(), "analyze", "--format", "xml", good)
	require.Error(t, err)

	_, _, err = execute(t, context.Background(), "analyze", "--export", "x.json", good, good)
	require.EqualError(t, err, "--export and --plot accept a single input file")

	_, _, err = execute(t, context.Background(), "analyze", filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = execute(t, context.Background(), "analyze")
	require.Error(t, err)
}

func TestAnalyze_IgnoreUnknownGroups(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV+"2,5,Blank\n")

	_, _, err := execute(t, context.Background(), "analyze", path)
	require.ErrorIs(t, err, errs.ErrInvalidGroup)

	out, _, err := execute(t, context.Background(), "analyze", "--ignore-unknown-groups", path)
	require.NoError(t, err)
	require.Contains(t, out, "Relative Potency (RP): 1.08")
}

func TestPredict(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name:     "doe defaults",
			args:     []string{"predict", "doe"},
			contains: []string{"Predicted potency: 77.0%"},
		},
		{
			name:     "cytokine defaults",
			args:     []string{"predict", "cytokine"},
			contains: []string{"IL-2", "GM-CSF", "Predicted potency: 20.0% (raw score 2.40)"},
		},
		{
			name:     "stability refrigerated",
			args:     []string{"predict", "stability"},
			contains: []string{"Month", "100.0", "Estimated shelf life: 3.6 months"},
		},
		{
			name:     "stability ultra frozen",
			args:     []string{"predict", "stability", "--condition=-80C"},
			contains: []string{"Shelf life: >18 months (potency remains above 70%)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, context.Background(), tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestPredict_Errors(t *testing.T) {
	_, _, err := execute(t, context.Background(), "predict", "doe", "--moi", "50")
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "moi", ve.Field)

	_, _, err = execute(t, context.Background(), "predict", "stability", "--condition", "room")
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, _, err = execute(t, context.Background(), "predict", "stability", "--points", "1")
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestPredict_Plots(t *testing.T) {
	dir := t.TempDir()
	stability := filepath.Join(dir, "stability.png")
	contributions := filepath.Join(dir, "contributions.svg")

	_, _, err := execute(t, context.Background(), "predict", "stability", "--plot", stability)
	require.NoError(t, err)
	data, err := os.ReadFile(stability)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))

	_, _, err = execute(t, context.Background(), "predict", "cytokine", "--plot", contributions)
	require.NoError(t, err)
	data, err = os.ReadFile(contributions)
	require.NoError(t, err)
	require.Contains(t, string(data), "<svg")
}

func TestWatch_InitialRun(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, _, err := execute(t, ctx, "watch", path)
	require.NoError(t, err)
	require.Contains(t, out, "== "+path+" (")
	require.Contains(t, out, "Relative Potency (RP): 1.08")
}

func TestWatch_ReportsFailures(t *testing.T) {
	path := writeDataset(t, "run.csv", "dose,response,group\n")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, stderr, err := execute(t, ctx, "watch", path)
	require.NoError(t, err)
	require.Contains(t, out, "error (validation): missing group (field group, group Reference): no rows")
	require.Contains(t, stderr, "analysis failed")
}

func TestGlobalFlags(t *testing.T) {
	path := writeDataset(t, "run.csv", scenarioCSV)

	_, _, err := execute(t, context.Background(), "--log-level", "loud", "analyze", path)
	require.Error(t, err)

	cfgPath := writeDataset(t, "potency.yaml", "analysis:\n  ignore_unknown_groups: true\n")
	blank := writeDataset(t, "blank.csv", scenarioCSV+"2,5,Blank\n")
	_, _, err = execute(t, context.Background(), "--config", cfgPath, "analyze", blank)
	require.NoError(t, err)

	badCfg := writeDataset(t, "bad.yaml", "unknown: 1\n")
	_, _, err = execute(t, context.Background(), "--config", badCfg, "analyze", path)
	require.Error(t, err)

	_, stderr, err := execute(t, context.Background(), "--log-level", "debug", "analyze", path)
	require.NoError(t, err)
	require.Contains(t, stderr, "analyzed")
}

func TestFormatError(t *testing.T) {
	require.Equal(t, "error (internal): boom", formatError(errors.New("boom")))
	require.Equal(t, "error (computation): undefined relative potency: reference slope is 0",
		formatError(errs.Computation(errs.ErrUndefinedPotency, "reference slope is 0")))
}
