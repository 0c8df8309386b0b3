package adt

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LevelError,
		"WARNING": LevelWarn,
		"warn":    LevelWarn,
		"info":    LevelInfo,
		"Debug":   LevelDebug,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}

	got, err := ParseLogLevel("bogus")
	if err == nil || got != LevelWarn {
		t.Errorf("ParseLogLevel(bogus) = %v, %v, want warn and an error", got, err)
	}
	if LogLevel(9).String() != "UNKNOWN" {
		t.Errorf("String() of an out-of-range level = %q", LogLevel(9).String())
	}
}

func TestLogger_FormatAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelInfo, &buf)

	l.Debugf("hidden")
	l.With(map[string]any{"schema": "Either", "note": "two words"}).Infof("extracted %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	re := regexp.MustCompile(`^\[INFO\] \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+\S* extracted 2 note="two words" schema=Either\n$`)
	if !re.MatchString(out) {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestRegistry_LogsExtraction(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = NewLogger(LevelDebug, &buf)
	r := NewRegistry(opts)

	if _, err := r.Extract(eitherDecl()); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(buf.String(), "extracted schema") || !strings.Contains(buf.String(), "variants=LEFT:L,RIGHT:R") {
		t.Errorf("missing extraction log: %q", buf.String())
	}

	buf.Reset()
	_, _ = r.Extract(Declare("Either", Case("ONLY", TypeOf[int]())))
	if !strings.Contains(buf.String(), "[WARN]") {
		t.Errorf("expected a warning for conflicting redeclaration: %q", buf.String())
	}
}

func TestLogger_WithOverridesAndQuotes(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(LevelError, &buf).With(map[string]any{"b": 1, "a": "x"})
	l.With(map[string]any{"a": "y z"}).Errorf("boom")
	l.Warnf("hidden")

	out := buf.String()
	if !strings.HasSuffix(out, ` boom a="y z" b=1`+"\n") {
		t.Errorf("unexpected log line: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("warn message logged at error level: %q", out)
	}
}

func TestSchemaFields(t *testing.T) {
	r := testRegistry()
	generic, _ := r.Extract(eitherDecl())
	fields := schemaFields(generic)
	if fields["schema"] != "Either" || fields["erased"] != 2 {
		t.Errorf("schemaFields = %v", fields)
	}
	if _, ok := schemaFields(intOrString(t, r))["erased"]; ok {
		t.Error("concrete schemas should not report erased variants")
	}
}

func TestTruncateList(t *testing.T) {
	if got := truncateList([]string{"a", "b", "c"}, 2); got != "a,b,+1" {
		t.Errorf("truncateList = %q", got)
	}
	if got := truncateList([]string{"a"}, 2); got != "a" {
		t.Errorf("truncateList = %q", got)
	}
}
