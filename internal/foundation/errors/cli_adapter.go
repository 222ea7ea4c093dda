package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryValidation:
		return 2
	case CategoryNotFound:
		return 3
	case CategoryConfig:
		return 7
	case CategoryInternal:
		return 10
	case CategoryFileSystem:
		return 11
	default:
		return 1
	}
}

// FormatError formats an error for display. In verbose mode the context of
// a classified error is appended as sorted key=value pairs.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	classified, ok := AsClassified(err)
	if !ok || !a.verbose || len(classified.Context()) == 0 {
		return msg
	}
	ctx := classified.Context()
	pairs := make([]string, 0, len(ctx))
	for _, k := range slices.Sorted(maps.Keys(ctx)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return msg + " (" + strings.Join(pairs, " ") + ")"
}

// Report logs err, writes the formatted message to w and returns the exit code.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	a.logError(err)
	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Debug("Unclassified error", "error", err)
		return
	}
	level := slog.LevelDebug
	if a.verbose {
		level = slog.LevelWarn
		if classified.IsFatal() {
			level = slog.LevelError
		}
	}
	attrs := []slog.Attr{
		slog.String("category", string(classified.Category())),
		slog.String("severity", string(classified.Severity())),
	}
	if cause := classified.Cause(); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	a.logger.LogAttrs(context.Background(), level, classified.Message(), attrs...)
}
