package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/arloliu/potency"
	"github.com/arloliu/potency/format"
	"github.com/arloliu/potency/internal/logging"
)

// Editors often emit several events per save.
const watchDebounce = 200 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	o := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-run the analysis whenever FILE changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(cmd, args[0], o)
		},
	}
	o.addFlags(cmd)

	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, path string, o *analyzeOptions) error {
	rf, err := format.ParseReportFormat(o.format)
	if err != nil {
		return err
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// The directory is watched so that atomic saves through rename are seen.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	readOpts, estimateOpts := a.estimateOptions(cmd, o)
	out := cmd.OutOrStdout()
	run := func() {
		fmt.Fprintf(out, "== %s (%s) ==\n", path, time.Now().Format(time.TimeOnly))
		an, err := potency.AnalyzeFile(target, readOpts, estimateOpts...)
		if err == nil {
			err = a.printAnalysis(out, an, rf, o.preview)
		}
		if err != nil {
			fmt.Fprintln(out, formatError(err))
			a.logger.Warn("analysis failed", slog.String(logging.KeySource, path), logging.Err(err))
		}
	}

	run()

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	defer timer.Stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				timer.Reset(watchDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watch error", logging.Err(err))
		case <-timer.C:
			fmt.Fprintln(out)
			run()
		}
	}
}
