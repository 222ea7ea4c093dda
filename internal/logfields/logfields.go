package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyConfigPath = "config_path"
	KeyOverlays   = "overlays"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyTitle      = "title"
	KeyEntries    = "entries"
	KeyPages      = "pages"
	KeyPlugins    = "plugins"
	KeySnapshot   = "snapshot"
	KeyDocsDir    = "docs_dir"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ConfigPath(p string) slog.Attr   { return slog.String(KeyConfigPath, p) }
func Overlays(ps []string) slog.Attr  { return slog.Any(KeyOverlays, ps) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Entries(n int) slog.Attr         { return slog.Int(KeyEntries, n) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Plugins(n int) slog.Attr         { return slog.Int(KeyPlugins, n) }
func Snapshot(s string) slog.Attr     { return slog.String(KeySnapshot, s) }
func DocsDir(d string) slog.Attr      { return slog.String(KeyDocsDir, d) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
