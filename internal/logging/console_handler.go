package logging

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler writes one line per record:
//
//	2025-06-30T12:00:00Z INFO lifecycle: task completed goal_id=g1 task_id=2 event_type=task_completed session_id=...
//
// The goal and task a record concerns lead its fields. Bookkeeping fields
// (event_type, error_hint, impact, session_id) trail them.
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     slog.Leveler
	addSource bool
	group     string
	preset    []consoleField
}

type consoleField struct {
	key   string
	value slog.Value
}

func newConsoleHandler(w io.Writer, level slog.Leveler, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, out: w, level: level, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	fields := slices.Clone(h.preset)
	record.Attrs(func(attr slog.Attr) bool {
		fields = appendConsoleField(fields, h.group, attr)
		return true
	})

	var component string
	fields = slices.DeleteFunc(fields, func(f consoleField) bool {
		if f.key != FieldComponent {
			return false
		}
		if component == "" {
			component = f.value.String()
		}
		return true
	})
	slices.SortStableFunc(fields, func(a, b consoleField) int {
		return cmp.Compare(fieldRank(a.key), fieldRank(b.key))
	})

	stamp := record.Time
	if stamp.IsZero() {
		stamp = time.Now()
	}

	var line strings.Builder
	line.WriteString(stamp.UTC().Format(time.RFC3339))
	line.WriteByte(' ')
	line.WriteString(record.Level.String())
	line.WriteByte(' ')
	if component != "" {
		line.WriteString(component)
		line.WriteString(": ")
	}
	line.WriteString(strings.TrimSpace(record.Message))
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&line, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	for _, f := range fields {
		line.WriteByte(' ')
		line.WriteString(f.key)
		line.WriteByte('=')
		line.WriteString(renderConsoleValue(f.value))
	}
	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line.String())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = slices.Clone(h.preset)
	for _, attr := range attrs {
		next.preset = appendConsoleField(next.preset, h.group, attr)
	}
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.group = joinKey(h.group, name)
	return &next
}

func appendConsoleField(dst []consoleField, group string, attr slog.Attr) []consoleField {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	key := joinKey(group, attr.Key)
	if attr.Value.Kind() == slog.KindGroup {
		for _, member := range attr.Value.Group() {
			dst = appendConsoleField(dst, key, member)
		}
		return dst
	}
	if key == "" {
		return dst
	}
	return append(dst, consoleField{key: key, value: attr.Value})
}

func joinKey(group, key string) string {
	switch {
	case group == "":
		return key
	case key == "":
		return group
	default:
		return group + "." + key
	}
}

// fieldRank orders console fields; equal ranks keep record order.
func fieldRank(key string) int {
	switch key {
	case FieldGoalID:
		return 0
	case FieldTaskID:
		return 1
	case FieldEventType:
		return 3
	case FieldErrorHint:
		return 4
	case FieldImpact:
		return 5
	case FieldSessionID:
		return 6
	default:
		return 2
	}
}

func renderConsoleValue(v slog.Value) string {
	var text string
	switch v.Kind() {
	case slog.KindTime:
		text = v.Time().UTC().Format(time.RFC3339)
	case slog.KindFloat64:
		text = strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			text = err.Error()
		} else {
			text = fmt.Sprint(v.Any())
		}
	default:
		text = v.String()
	}
	if text == "" || strings.ContainsFunc(text, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.Quote(text)
	}
	return text
}
