package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyDocument   = "document"
	KeyStage      = "stage"
	KeyTarget     = "target"
	KeyDurationMS = "duration_ms"
	KeyPages      = "pages"
	KeyOutput     = "output"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Document(id string) slog.Attr    { return slog.String(KeyDocument, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Output(dir string) slog.Attr     { return slog.String(KeyOutput, dir) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
