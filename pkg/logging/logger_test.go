package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel}, // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, DebugLevel)

	logger.Info("solve finished", Int("steps", 120), Float64("duration_s", 0.5))

	var e struct {
		Level   string         `json:"level"`
		Message string         `json:"msg"`
		Fields  map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if e.Level != "INFO" || e.Message != "solve finished" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Fields["steps"] != float64(120) {
		t.Errorf("steps field = %v, want 120", e.Fields["steps"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("messages below the level should be filtered")
	}
	if !strings.Contains(out, "visible") {
		t.Error("messages at the level should pass")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(Component("driver"), Tick(7))
	child.Info("tick done")

	out := buf.String()
	if !strings.Contains(out, `"component":"driver"`) {
		t.Errorf("pre-set component field missing: %s", out)
	}
	if !strings.Contains(out, `"tick":7`) {
		t.Errorf("pre-set tick field missing: %s", out)
	}
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("bad input"))
	if f.Key != "error" || f.Value != "bad input" {
		t.Errorf("Error field = %+v", f)
	}
	if Error(nil).Value != nil {
		t.Error("nil error should produce nil value")
	}
}

func TestNopLogger(t *testing.T) {
	// Must not panic, and With must return a usable logger
	logger := NewNopLogger()
	logger.Info("dropped")
	logger.With(String("k", "v")).Error("dropped")
}
