package adt

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
)

// LogLevel represents the severity level for logs.
type LogLevel int

const (
	LevelError LogLevel = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelError: "ERROR",
	LevelWarn:  "WARN",
	LevelInfo:  "INFO",
	LevelDebug: "DEBUG",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name, case-insensitively. "warning" is
// accepted for "warn".
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToUpper(s)
	if name == "WARNING" {
		return LevelWarn, nil
	}
	for l, n := range levelNames {
		if n == name {
			return LogLevel(l), nil
		}
	}
	return LevelWarn, fmt.Errorf("unknown log level %q", s)
}

// Logger is the interface used by registries and the CLI for logging.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	// With returns a child logger augmented with the provided fields.
	With(fields map[string]any) Logger
}

const logTimeFormat = "%Y-%m-%dT%H:%M:%S.%f%z"

type logField struct {
	key   string
	value any
}

// textLogger writes one line per entry:
//
//	[LEVEL] ts msg key1=val1 key2=val2
//
// Fields are kept sorted by key.
type textLogger struct {
	w      io.Writer
	level  LogLevel
	fields []logField
	mu     *sync.Mutex // shared with children
}

// NewLogger creates a text logger writing entries at or above level to w.
// If w is nil, os.Stderr is used.
func NewLogger(level LogLevel, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	return &textLogger{w: w, level: level, mu: &sync.Mutex{}}
}

func (l *textLogger) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	merged := make([]logField, 0, len(l.fields)+len(fields))
	for _, f := range l.fields {
		if _, replaced := fields[f.key]; !replaced {
			merged = append(merged, f)
		}
	}
	for k, v := range fields {
		merged = append(merged, logField{k, v})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].key < merged[j].key })
	return &textLogger{w: l.w, level: l.level, fields: merged, mu: l.mu}
}

func (l *textLogger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *textLogger) Infof(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *textLogger) Warnf(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *textLogger) Errorf(format string, args ...any) { l.logf(LevelError, format, args...) }

func (l *textLogger) logf(level LogLevel, format string, args ...any) {
	if level > l.level {
		return
	}
	line := appendEntry(make([]byte, 0, 128), time.Now(), level, fmt.Sprintf(format, args...), l.fields)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(line)
}

func appendEntry(b []byte, ts time.Time, level LogLevel, msg string, fields []logField) []byte {
	b = append(b, '[')
	b = append(b, level.String()...)
	b = append(b, "] "...)
	b = timefmt.AppendFormat(b, ts.UTC(), logTimeFormat)
	b = append(b, ' ')
	b = append(b, msg...)
	for _, f := range fields {
		b = append(b, ' ')
		b = append(b, f.key...)
		b = append(b, '=')
		b = appendFieldValue(b, f.value)
	}
	return append(b, '\n')
}

// appendFieldValue quotes values containing spaces or control characters.
func appendFieldValue(b []byte, v any) []byte {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	case error:
		s = t.Error()
	default:
		s = fmt.Sprint(v)
	}
	if strings.IndexFunc(s, func(r rune) bool { return r <= ' ' }) >= 0 {
		return strconv.AppendQuote(b, s)
	}
	return append(b, s...)
}

// noopLogger discards all output.
type noopLogger struct{}

func (noopLogger) Debugf(string, ...any)        {}
func (noopLogger) Infof(string, ...any)         {}
func (noopLogger) Warnf(string, ...any)         {}
func (noopLogger) Errorf(string, ...any)        {}
func (n noopLogger) With(map[string]any) Logger { return n }

// schemaFields are the log fields describing s.
func schemaFields(s *Schema) map[string]any {
	erased := 0
	for _, v := range s.variants {
		if v.Erased() {
			erased++
		}
	}
	fields := map[string]any{
		"schema":   s.id,
		"variants": variantSummary(s, 5),
	}
	if erased > 0 {
		fields["erased"] = erased
	}
	return fields
}

// variantSummary renders a schema's variants as "NAME:type,..." truncated to max entries.
func variantSummary(s *Schema, max int) string {
	items := make([]string, 0, len(s.variants))
	for _, v := range s.variants {
		items = append(items, v.Name+":"+v.Payload.String())
	}
	return truncateList(items, max)
}

// truncateList joins items with "," and appends +N if truncated.
func truncateList(items []string, max int) string {
	if max <= 0 || len(items) <= max {
		return strings.Join(items, ",")
	}
	return strings.Join(items[:max], ",") + fmt.Sprintf(",+%d", len(items)-max)
}
