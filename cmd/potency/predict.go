package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/formula"
	"github.com/arloliu/potency/report"
)

func newPredictCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Evaluate the potency formula models",
	}
	cmd.AddCommand(
		newPredictDOECmd(),
		newPredictCytokineCmd(a),
		newPredictStabilityCmd(a),
	)

	return cmd
}

func newPredictDOECmd() *cobra.Command {
	in := formula.DefaultDOEInputs()

	cmd := &cobra.Command{
		Use:   "doe",
		Short: "Predict potency from process parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := formula.PredictDOE(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Predicted potency: %.1f%%\n", p)

			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.MOI, "moi", in.MOI, "multiplicity of infection, 2 to 10")
	f.Float64Var(&in.CultureDays, "culture-days", in.CultureDays, "culture duration in days, 7 to 14")
	f.Float64Var(&in.ActivationMarker, "activation-marker", in.ActivationMarker, "activation marker percentage, 40 to 90")

	return cmd
}

func newPredictCytokineCmd(a *app) *cobra.Command {
	in := formula.DefaultCytokineInputs()
	var plot string

	cmd := &cobra.Command{
		Use:   "cytokine",
		Short: "Predict potency from secreted cytokine levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pred, err := formula.PredictCytokine(in)
			if err != nil {
				return err
			}

			rows := make([][]string, len(pred.Contributions))
			for i, c := range pred.Contributions {
				rows[i] = []string{c.Name, strconv.FormatFloat(c.Value, 'f', 2, 64)}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Cytokine", "Contribution"}, rows))
			fmt.Fprintf(out, "Predicted potency: %.1f%% (raw score %.2f)\n", pred.Potency, pred.RawScore)

			if plot == "" {
				return nil
			}
			if err := writeFile(plot, func(w io.Writer) error {
				return report.PlotContributions(w, pred, format.ImageFormatFromPath(plot))
			}); err != nil {
				return err
			}
			a.logger.Info("plot written", slog.String("path", plot))

			return nil
		},
	}

	f := cmd.Flags()
	f.Float64Var(&in.IL2, "il2", in.IL2, "IL-2 in pg/mL, 100 to 800")
	f.Float64Var(&in.IFNg, "ifng", in.IFNg, "IFN-γ in pg/mL, 150 to 1000")
	f.Float64Var(&in.TNFa, "tnfa", in.TNFa, "TNF-α in pg/mL, 50 to 400")
	f.Float64Var(&in.GMCSF, "gmcsf", in.GMCSF, "GM-CSF in pg/mL, 30 to 250")
	f.StringVar(&plot, "plot", "", "write a contribution bar chart to PATH (.png or .svg)")

	return cmd
}

func newPredictStabilityCmd(a *app) *cobra.Command {
	var (
		condition string
		horizon   float64
		points    int
		plot      string
	)

	cmd := &cobra.Command{
		Use:   "stability",
		Short: "Project potency decay under a storage condition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cond, err := formula.ParseStorageCondition(condition)
			if err != nil {
				return err
			}
			curve, err := formula.Curve(cond, horizon, points)
			if err != nil {
				return err
			}
			shelf, err := formula.ShelfLife(cond)
			if err != nil {
				return err
			}

			rows := make([][]string, len(curve))
			for i, p := range curve {
				rows[i] = []string{
					strconv.FormatFloat(p.Months, 'f', 1, 64),
					strconv.FormatFloat(p.Potency, 'f', 1, 64),
				}
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Month", "Potency (%)"}, rows))
			fmt.Fprintln(out, shelf.String())

			if plot == "" {
				return nil
			}
			if err := writeFile(plot, func(w io.Writer) error {
				return report.PlotStability(w, cond, horizon, format.ImageFormatFromPath(plot))
			}); err != nil {
				return err
			}
			a.logger.Info("plot written", slog.String("path", plot))

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&condition, "condition", string(formula.Refrigerated), "storage condition: 2-8C, -20C or -80C")
	f.Float64Var(&horizon, "horizon", formula.StudyHorizonMonths, "projection horizon in months")
	f.IntVar(&points, "points", 19, "number of curve samples")
	f.StringVar(&plot, "plot", "", "write the decay curve to PATH (.png or .svg)")

	return cmd
}
