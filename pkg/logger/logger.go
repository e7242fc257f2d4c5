// Package logger provides a level-colored slog handler for console output.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	debugColor = color.New(color.FgCyan)
	infoColor  = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	attrColor  = color.New(color.Faint)
)

// ColorHandler is a slog.Handler that writes human-readable, level-colored
// lines. Attributes render as key=value pairs after the message.
type ColorHandler struct {
	opts  slog.HandlerOptions
	attrs []slog.Attr
	group string

	mu sync.Mutex
	w  io.Writer
}

// NewColorHandler creates a new ColorHandler writing to w.
func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	h := &ColorHandler{w: w}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// NewDefaultLogger returns a logger backed by a ColorHandler on stderr.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Enabled implements slog.Handler
func (h *ColorHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle implements slog.Handler
func (h *ColorHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(r.Time.Format(time.RFC3339))
	sb.WriteByte(' ')
	sb.WriteString(levelColor(r.Level).Sprintf("%-5s", r.Level.String()))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, attr := range h.attrs {
		writeAttr(&sb, h.group, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.group, a)
		return true
	})
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs implements slog.Handler
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return clone
}

// WithGroup implements slog.Handler
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	if clone.group != "" {
		clone.group = clone.group + "." + name
	} else {
		clone.group = name
	}
	return clone
}

func (h *ColorHandler) clone() *ColorHandler {
	return &ColorHandler{
		opts:  h.opts,
		attrs: h.attrs,
		group: h.group,
		w:     h.w,
	}
}

func writeAttr(sb *strings.Builder, group string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	sb.WriteByte(' ')
	sb.WriteString(attrColor.Sprintf("%s=%v", key, attr.Value.Resolve()))
}

func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return errorColor
	case level >= slog.LevelWarn:
		return warnColor
	case level >= slog.LevelInfo:
		return infoColor
	default:
		return debugColor
	}
}
