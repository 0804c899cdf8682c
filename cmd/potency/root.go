package main

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/arloliu/potency/internal/config"
	"github.com/arloliu/potency/internal/logging"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "potency",
		Short: "Parallel-line relative potency estimation",
		Long: `potency fits response = a + b*log10(dose) to the Reference and Test groups of a
bioassay dataset and reports the relative potency of Test against Reference.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newAnalyzeCmd(a),
		newWatchCmd(a),
		newPredictCmd(a),
		newServeCmd(a),
	)

	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)

	return nil
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		}).
		String()
}
