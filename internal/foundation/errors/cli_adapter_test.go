package errors

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, quietLogger())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, 0},
		{"validation", NewError(CategoryValidation, "bad sidebar").Build(), 2},
		{"not found", NotFoundError("missing page").Build(), 3},
		{"config", ConfigError("bad yaml").Build(), 7},
		{"internal", NewError(CategoryInternal, "bug").Build(), 10},
		{"filesystem", FileSystemError("read failed").Build(), 11},
		{"unclassified", errors.New("unknown error"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	err := NewError(CategoryValidation, "invalid site configuration").
		WithContext("path", "docs/sitenav.yaml").
		WithContext("kind", "duplicate_path").
		Build()

	quiet := NewCLIErrorAdapter(false, quietLogger())
	require.Equal(t, "Error: invalid site configuration", quiet.FormatError(err))
	require.Empty(t, quiet.FormatError(nil))

	verbose := NewCLIErrorAdapter(true, quietLogger())
	require.Equal(t,
		"Error: invalid site configuration (kind=duplicate_path path=docs/sitenav.yaml)",
		verbose.FormatError(err))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, quietLogger())
	var buf bytes.Buffer

	code := adapter.Report(&buf, ConfigError("bad yaml").Build())
	require.Equal(t, 7, code)
	require.Equal(t, "Error: bad yaml\n", buf.String())

	buf.Reset()
	require.Equal(t, 0, adapter.Report(&buf, nil))
	require.Empty(t, buf.String())
}

func TestCLIErrorAdapter_LogsCauseInVerboseMode(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fatal := WrapError(errors.New("yaml: line 3"), CategoryConfig, "decode configuration file").Fatal().Build()
	NewCLIErrorAdapter(true, logger).Report(io.Discard, fatal)
	require.Contains(t, logs.String(), "level=ERROR")
	require.Contains(t, logs.String(), `cause="yaml: line 3"`)

	logs.Reset()
	NewCLIErrorAdapter(true, logger).Report(io.Discard, NotFoundError("missing page").Build())
	require.Contains(t, logs.String(), "level=WARN")
	require.NotContains(t, logs.String(), "cause=")

	logs.Reset()
	NewCLIErrorAdapter(false, logger).Report(io.Discard, fatal)
	require.Contains(t, logs.String(), "level=DEBUG")
}
