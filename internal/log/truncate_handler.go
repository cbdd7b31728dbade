package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the longest string attribute the handler passes
// through unmodified. Anything longer is cut to head...tail with the
// elided byte count in between.
const DefaultMaxValueLen = 256

// TruncateHandler wraps an slog.Handler and caps the length of string
// attribute values. Values sourced from live pages (anchor text, hrefs,
// error snippets) have no upper bound, and a single unbounded value can
// make a log line unreadable or blow up log storage.
//
// Design decision: a handler wrapper rather than call-site discipline
// because the values come from third-party markup; no amount of care at
// the call site bounds what a page puts in an alt attribute.
type TruncateHandler struct {
	handler slog.Handler
	maxLen  int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given
// handler. maxLen <= 0 means DefaultMaxValueLen. A nil handler falls
// back to slog.Default().Handler().
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates oversized string attributes before delegating.
func (h *TruncateHandler) Handle(ctx context.Context, record slog.Record) error {
	truncated := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new TruncateHandler with the attributes added to
// the underlying handler, truncated like record attributes.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(out), maxLen: h.maxLen}
}

// WithGroup returns a new TruncateHandler with the group added to the
// underlying handler.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = h.truncateAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		return slog.String(a.Key, h.truncate(a.Value.String()))
	default:
		return a
	}
}

// truncate shortens s to head...tail, keeping both ends because the
// interesting part of a URL is as often the end as the beginning. The
// cut lands on rune boundaries so the output stays valid UTF-8.
func (h *TruncateHandler) truncate(s string) string {
	if len(s) <= h.maxLen {
		return s
	}

	head := h.maxLen * 3 / 4
	tail := h.maxLen - head

	for head > 0 && !utf8.RuneStart(s[head]) {
		head--
	}
	tailStart := len(s) - tail
	for tailStart < len(s) && !utf8.RuneStart(s[tailStart]) {
		tailStart++
	}

	return fmt.Sprintf("%s...[%d bytes elided]...%s", s[:head], tailStart-head, s[tailStart:])
}

// NewLogger creates a text logger with value truncation. Verbose runs
// log at Debug, normal runs at Info.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(textHandler, 0))
}

// NewJSONLogger creates a JSON logger with value truncation, for runs
// whose logs feed an aggregator.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(jsonHandler, 0))
}
