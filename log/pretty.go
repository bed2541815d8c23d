package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler is a colorized text handler for terminal output: gray
// timestamps, a colored level tag, and key=value attributes with gray
// keys.
type prettyHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
	group string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	if clone.group != "" {
		name = clone.group + "." + name
	}

	clone.group = name

	return &clone
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorGreen
	case level >= slog.LevelDebug:
		return colorBlue
	default:
		return colorMagenta
	}
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		stamp := r.Time
		if rep := h.opts.ReplaceAttr; rep != nil {
			a := rep(nil, slog.Time(slog.TimeKey, stamp))
			if !a.Equal(slog.Attr{}) {
				fmt.Fprintf(buf, "%s%s%s ",
					colorGray, a.Value.String(), colorReset)
			}
		} else {
			fmt.Fprintf(buf, "%s%s%s ",
				colorGray, stamp.Format(time.RFC3339), colorReset)
		}
	}

	fmt.Fprintf(buf, "%s%-5s%s ",
		levelColor(r.Level), Level(r.Level).String(), colorReset)

	buf.WriteString(r.Message)

	emit := func(a slog.Attr) {
		h.writeAttr(buf, a)
	}

	for _, a := range h.attrs {
		emit(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		emit(a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, member := range a.Value.Group() {
			if a.Key != "" {
				member.Key = a.Key + "." + member.Key
			}

			h.writeAttr(buf, member)
		}

		return
	}

	key := a.Key
	if h.group != "" {
		key = h.group + "." + key
	}

	val := a.Value.String()
	if a.Value.Kind() == slog.KindString {
		val = strconv.Quote(val)
	}

	fmt.Fprintf(buf, " %s%s=%s%s%s%s",
		colorGray, key, colorReset, colorCyan, val, colorReset)
}
