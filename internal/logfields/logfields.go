package logfields

import "log/slog"

// Canonical log field names shared by the build pipeline.
const (
	KeyPost       = "post"
	KeySource     = "source"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyBuildID    = "build_id"
	KeyCount      = "count"
	KeyError      = "error"
	KeyMethod     = "method"
	KeyStatus     = "status"
)

func Post(slug string) slog.Attr      { return slog.String(KeyPost, slug) }
func Source(src string) slog.Attr     { return slog.String(KeySource, src) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }

// Error renders err as a string attribute; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
