// Package logging provides the leveled logger of the linstory host.
// Only the CLI logs; the matrix and engine packages stay silent.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"
)

// LevelTrace is a custom slog level below Debug. At this level the host
// also logs full request and response bodies.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing text records to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Label the custom trace level
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

// Outcome records one evaluated operation at debug level: its name, whether
// it succeeded, the failure kind (empty on success) and the elapsed time.
func Outcome(l *slog.Logger, op string, ok bool, kind string, elapsed time.Duration) {
	attrs := []any{"op", op, "ok", ok, "elapsed", elapsed}
	if !ok {
		attrs = append(attrs, "kind", kind)
	}
	l.Debug("operation evaluated", attrs...)
}

// Bodies records the request and response of one operation at trace level.
// Both are marshaled to JSON only when trace is enabled.
func Bodies(ctx context.Context, l *slog.Logger, op string, req, resp any) {
	if !l.Enabled(ctx, LevelTrace) {
		return
	}
	l.Log(ctx, LevelTrace, "operation bodies", "op", op, "request", jsonText(req), "response", jsonText(resp))
}

func jsonText(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(data)
}
