package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/arloliu/potency"
	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/dataset"
	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/internal/logging"
	"github.com/arloliu/potency/report"
)

type analyzeOptions struct {
	format        string
	preview       int
	export        string
	compression   string
	plot          string
	tolerance     float64
	ignoreUnknown bool
}

func (o *analyzeOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.format, "format", "f", "text", "report format: text, json or csv")
	f.IntVar(&o.preview, "preview", 0, "print the first N rows before the report, -1 for all")
	f.Float64Var(&o.tolerance, "tolerance", assay.DefaultSlopeTolerance, "minimum absolute slope of either group")
	f.BoolVar(&o.ignoreUnknown, "ignore-unknown-groups", false, "skip rows whose group is neither Reference nor Test")
}

// estimateOptions resolves flags over the configuration.
func (a *app) estimateOptions(cmd *cobra.Command, o *analyzeOptions) ([]dataset.Option, []assay.Option) {
	var readOpts []dataset.Option
	if o.ignoreUnknown || a.cfg.Analysis.IgnoreUnknownGroups {
		readOpts = append(readOpts, dataset.WithIgnoreUnknownGroups())
	}

	tolerance := a.cfg.Analysis.SlopeTolerance
	if cmd.Flags().Changed("tolerance") {
		tolerance = o.tolerance
	}

	return readOpts, []assay.Option{assay.WithSlopeTolerance(tolerance)}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	o := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Estimate relative potency for one or more datasets",
		Long: `Estimate relative potency for each FILE.

Files may be CSV, TSV (.tsv) or JSON (.json), optionally compressed (.zst, .s2, .lz4).
Several files are analyzed concurrently and reported in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAnalyze(cmd, args, o)
		},
	}

	o.addFlags(cmd)
	cmd.Flags().StringVar(&o.export, "export", "", "write the report to PATH")
	cmd.Flags().StringVar(&o.compression, "compress", "", "export compression: none, zstd, s2 or lz4 (default from PATH or config)")
	cmd.Flags().StringVar(&o.plot, "plot", "", "write a dose-response plot to PATH (.png or .svg)")

	return cmd
}

func (a *app) runAnalyze(cmd *cobra.Command, paths []string, o *analyzeOptions) error {
	rf, err := format.ParseReportFormat(o.format)
	if err != nil {
		return err
	}
	if (o.export != "" || o.plot != "") && len(paths) > 1 {
		return errors.New("--export and --plot accept a single input file")
	}

	readOpts, estimateOpts := a.estimateOptions(cmd, o)

	results := make([]*potency.Analysis, len(paths))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			an, err := potency.AnalyzeFile(path, readOpts, estimateOpts...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = an

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, an := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := a.printAnalysis(out, an, rf, o.preview); err != nil {
			return err
		}
	}

	if o.export != "" {
		if err := a.exportReport(cmd, results[0], rf, o); err != nil {
			return err
		}
	}
	if o.plot != "" {
		if err := writeFile(o.plot, func(w io.Writer) error {
			return report.PlotDoseResponse(w, results[0].Observations, results[0].Result, format.ImageFormatFromPath(o.plot))
		}); err != nil {
			return err
		}
		a.logger.Info("plot written", slog.String("path", o.plot))
	}

	return nil
}

func (a *app) printAnalysis(out io.Writer, an *potency.Analysis, rf format.ReportFormat, preview int) error {
	if preview != 0 {
		fmt.Fprintln(out, renderTable(report.PreviewHeader, report.Preview(an.Observations, preview)))
	}

	if err := report.Render(out, an.Result, rf,
		report.WithSource(an.Source),
		report.WithDatasetID(an.DatasetID),
		report.WithIndent(),
	); err != nil {
		return err
	}

	a.logger.Debug("analyzed",
		slog.String(logging.KeySource, an.Source),
		slog.String(logging.KeyDatasetID, an.DatasetID),
		slog.Float64("relative_potency", an.Result.RelativePotency),
	)

	return nil
}

func (a *app) exportReport(cmd *cobra.Command, an *potency.Analysis, rf format.ReportFormat, o *analyzeOptions) error {
	ct := format.CompressionTypeFromPath(o.export)
	if ct == format.CompressionNone {
		ct = a.cfg.CompressionType()
	}
	if cmd.Flags().Changed("compress") {
		var err error
		if ct, err = format.ParseCompressionType(o.compression); err != nil {
			return err
		}
	}

	return writeFile(o.export, func(w io.Writer) error {
		stats, err := report.Export(w, an.Result, rf, ct,
			report.WithSource(an.Source),
			report.WithDatasetID(an.DatasetID),
		)
		if err != nil {
			return err
		}
		a.logger.Info("report exported",
			slog.String("path", o.export),
			slog.String("algorithm", stats.Algorithm.String()),
			slog.Int64("original_size", stats.OriginalSize),
			slog.Int64("compressed_size", stats.CompressedSize),
		)

		return nil
	})
}

// writeFile creates path and runs write against it, removing the file on failure.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)

		return err
	}

	return f.Close()
}
