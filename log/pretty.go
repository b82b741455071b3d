package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by the pretty handler. Styles are bound to
// a renderer for the handler's writer, so nothing is colored unless that
// writer is a color-capable terminal.
type palette struct {
	key, str, num, boolTrue, boolFalse, dur, time, punct lipgloss.Style
	level                                                map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style { return r.NewStyle().Foreground(lipgloss.Color(c)) }

	return palette{
		key:       fg("8"),
		str:       fg("6"),
		num:       fg("3"),
		boolTrue:  fg("2"),
		boolFalse: fg("1"),
		dur:       fg("5"),
		time:      fg("4"),
		punct:     fg("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): fg("8"),
			slog.LevelDebug:        fg("4"),
			slog.LevelInfo:         fg("2"),
			slog.LevelWarn:         fg("3").Bold(true),
			slog.LevelError:        fg("1").Bold(true),
		},
	}
}

// prettyHandler writes colorized text lines, or indented JSON objects when
// json is set.
type prettyHandler struct {
	opts   slog.HandlerOptions
	json   bool
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, json bool) *prettyHandler {
	return &prettyHandler{
		opts:  *opts,
		json:  json,
		style: newPalette(w),
		mu:    &sync.Mutex{},
		w:     w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], nest(h.groups, attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// nest wraps attrs in the open groups, innermost last.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}

	return attrs
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	head := make([]slog.Attr, 0, 4)

	if !r.Time.IsZero() {
		head = append(head, slog.Time(slog.TimeKey, r.Time))
	}

	head = append(head, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil && src.File != "" {
			head = append(head, slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	head = append(head, slog.String(slog.MessageKey, r.Message))

	body := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		body = append(body, a)

		return true
	})

	all := make([]slog.Attr, 0, len(head)+len(h.attrs)+len(body))
	for _, a := range head {
		if a = h.replace(nil, a); a.Key != "" {
			all = append(all, a)
		}
	}

	all = append(all, h.attrs...)
	all = append(all, nest(h.groups, body)...)

	buf := new(bytes.Buffer)
	if h.json {
		h.writeJSONObject(buf, all, 0)
	} else {
		h.writeText(buf, "", all)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) replace(groups []string, a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	return a
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, prefix string, attrs []slog.Attr) {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Key == "" && a.Value.Kind() != slog.KindGroup {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			p := prefix
			if a.Key != "" {
				p = prefix + a.Key + "."
			}

			h.writeText(buf, p, a.Value.Group())

			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(prefix + a.Key))
		buf.WriteString(h.style.punct.Render("="))
		buf.WriteString(h.value(a.Key, a.Value, false))
	}
}

func (h *prettyHandler) writeJSONObject(buf *bytes.Buffer, attrs []slog.Attr, depth int) {
	indent := strings.Repeat("  ", depth+1)

	buf.WriteString(h.style.punct.Render("{"))

	n := 0
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		if a.Key == "" {
			continue
		}

		if n > 0 {
			buf.WriteString(h.style.punct.Render(","))
		}

		n++

		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(h.style.punct.Render(":"))
		buf.WriteByte(' ')

		if a.Value.Kind() == slog.KindGroup {
			h.writeJSONObject(buf, a.Value.Group(), depth+1)

			continue
		}

		buf.WriteString(h.value(a.Key, a.Value, true))
	}

	if n > 0 {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth))
	}

	buf.WriteString(h.style.punct.Render("}"))
}

func (h *prettyHandler) value(key string, v slog.Value, quote bool) string {
	text := func(s string) string {
		if quote {
			return strconv.Quote(s)
		}

		return s
	}
	str := func(s string) string { return h.style.str.Render(text(s)) }

	switch v.Kind() {
	case slog.KindString:
		if key == slog.LevelKey {
			return h.levelStyle(v.String()).Render(text(v.String()))
		}

		return str(v.String())

	case slog.KindInt64:
		return h.style.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.style.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.style.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.style.boolTrue.Render("true")
		}

		return h.style.boolFalse.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(text(v.Duration().String()))

	case slog.KindTime:
		return h.style.time.Render(text(v.Time().Format(time.RFC3339)))

	default:
		if err, ok := v.Any().(error); ok {
			return h.style.boolFalse.Render(text(err.Error()))
		}

		return str(fmt.Sprint(v.Any()))
	}
}

func (h *prettyHandler) levelStyle(name string) lipgloss.Style {
	l := ParseLevel(name)
	if s, ok := h.style.level[slog.Level(l)]; ok {
		return s
	}

	return h.style.str
}
