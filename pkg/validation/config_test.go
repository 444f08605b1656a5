package validation

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidatorCollectsErrors(t *testing.T) {
	cv := NewConfigValidator("ServerConfig").
		Required("ListenAddr", "").
		RangeInt("NodeCount", 1, 2, 2000).
		PositiveFloat("Damping", -0.5).
		OneOf("Mode", "warp", []string{"continuous", "static"})

	if !cv.HasErrors() {
		t.Fatal("expected validation errors")
	}
	if got := len(cv.Errors()); got != 4 {
		t.Fatalf("error count = %d, want 4", got)
	}
	if err := cv.Validate(); err == nil {
		t.Fatal("Validate should surface the failures")
	}
}

func TestConfigValidatorPasses(t *testing.T) {
	cv := NewConfigValidator("ServerConfig").
		Required("ListenAddr", ":8080").
		RangeInt("NodeCount", 50, 2, 2000).
		RangeDuration("TickInterval", 16*time.Millisecond, time.Millisecond, time.Second).
		PositiveFloat("Damping", 0.92).
		NonNegativeFloat("Attraction", 0).
		OneOf("Mode", "static", []string{"continuous", "static"})

	if cv.HasErrors() {
		t.Fatalf("unexpected errors: %v", cv.Errors())
	}
	if err := cv.Validate(); err != nil {
		t.Fatalf("Validate = %v", err)
	}
}

func TestConfigValidatorCustomAndWhen(t *testing.T) {
	boom := errors.New("boom")
	cv := NewConfigValidator("StreamConfig").
		When(false, func(cv *ConfigValidator) {
			cv.Custom("Skipped", func() error { return boom })
		}).
		When(true, func(cv *ConfigValidator) {
			cv.Custom("Applied", func() error { return boom })
		})

	if got := len(cv.Errors()); got != 1 {
		t.Fatalf("error count = %d, want 1", got)
	}
	if !errors.Is(cv.Errors()[0], boom) {
		t.Fatalf("custom error not wrapped: %v", cv.Errors()[0])
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr("", "fallback"); got != "fallback" {
		t.Errorf("DefaultOr empty = %q", got)
	}
	if got := DefaultOr("set", "fallback"); got != "set" {
		t.Errorf("DefaultOr set = %q", got)
	}
	if got := DefaultOrDuration(0, time.Second); got != time.Second {
		t.Errorf("DefaultOrDuration zero = %v", got)
	}
	if got := DefaultOrDuration(time.Minute, time.Second); got != time.Minute {
		t.Errorf("DefaultOrDuration set = %v", got)
	}
}
