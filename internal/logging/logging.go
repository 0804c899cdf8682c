// Package logging builds the slog logger used by the CLI and the server.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Standard attribute keys.
const (
	KeyDatasetID = "dataset_id"
	KeyErrorKind = "error_kind"
	KeyRequestID = "request_id"
	KeySource    = "source"
)

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
	}

	return level, nil
}

// New creates a logger writing to w.
//
// Format "json" selects the slog JSON handler. Any other format selects tint text
// output, coloured only when w is a terminal.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

// Setup creates a stderr logger from textual settings and installs it as the default.
func Setup(levelName, format string) (*slog.Logger, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	logger := New(os.Stderr, level, format)
	slog.SetDefault(logger)

	return logger, nil
}

// Err returns an attribute carrying err under the "err" key.
func Err(err error) slog.Attr {
	return tint.Err(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
