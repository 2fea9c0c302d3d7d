package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: WARN, Output: &buf, Format: FormatText})

	log.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below configured level, got %q", buf.String())
	}

	log.Warn("should appear")
	if !strings.Contains(buf.String(), "should appear") {
		t.Fatalf("expected message in output, got %q", buf.String())
	}
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Output: &buf, Format: FormatJSON})

	log.Info("hello", map[string]interface{}{"key": "value"})

	var decoded entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded.Message != "hello" {
		t.Errorf("Message = %q, want hello", decoded.Message)
	}
	if decoded.Fields["key"] != "value" {
		t.Errorf("Fields[key] = %v, want value", decoded.Fields["key"])
	}
}

func TestWithAddsContextFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Output: &buf, Format: FormatJSON})
	scoped := log.With("component", "cache")

	scoped.Debug("event")

	var decoded entry
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded.Fields["component"] != "cache" {
		t.Errorf("Fields[component] = %v, want cache", decoded.Fields["component"])
	}
}
