package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Prompt prefixes every line the handler writes, so CI logs show which tool spoke.
const Prompt = "prettier-master"

// PrettyHandler is a slog.Handler for human-friendly CI output.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	w      io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts:  opts,
		w:     w,
		mu:    &sync.Mutex{},
		attrs: []slog.Attr{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelWarn
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString(color.HiBlackString(Prompt + ":"))
	buf.WriteString(" ")
	buf.WriteString(h.formatLevel(r.Level))
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	attrs := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs = append(attrs, formatAttr(a))
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, formatAttr(h.qualify(a)))
		return true
	})

	if len(attrs) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(attrs, " "))
	}

	if h.opts.AddSource && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			buf.WriteString(" ")
			buf.WriteString(color.HiBlackString("(%s:%d)", filepath.Base(frame.File), frame.Line))
		}
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Keys are qualified now; a later WithGroup must not rename them.
	newAttrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	for _, a := range attrs {
		newAttrs = append(newAttrs, h.qualify(a))
	}

	return &PrettyHandler{
		opts:   h.opts,
		w:      h.w,
		mu:     h.mu,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &PrettyHandler{
		opts:   h.opts,
		w:      h.w,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func (h *PrettyHandler) formatLevel(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return color.HiBlackString("[DEBUG]")
	case slog.LevelInfo:
		return color.CyanString("[INFO] ")
	case slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case slog.LevelError:
		return color.RedString("[ERROR]")
	default:
		return fmt.Sprintf("[%s]", level.String())
	}
}

func (h *PrettyHandler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(h.groups, ".") + "." + a.Key, Value: a.Value}
}

func formatAttr(a slog.Attr) string {
	key := a.Key
	val := a.Value.String()

	switch key[strings.LastIndex(key, ".")+1:] {
	case "error", "err":
		return color.RedString("%s=%s", key, val)
	case "commit", "branch":
		return color.MagentaString("%s=%s", key, val)
	case "count", "files":
		return color.GreenString("%s=%s", key, val)
	default:
		return color.HiBlackString("%s=%s", key, val)
	}
}
