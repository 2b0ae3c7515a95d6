package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"connection timeout", ErrConnectionTimeout, true},
		{"connection lost", ErrConnectionLost, true},
		{"channel closed", ErrChannelClosed, true},
		{"request failed", ErrRequestFailed, true},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"malformed frame", ErrMalformedFrame, false},
		{"invalid config", ErrInvalidConfig, false},
		{"timeout in message", fmt.Errorf("operation timeout occurred"), true},
		{"network error", fmt.Errorf("network connection failed"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"malformed frame", ErrMalformedFrame, true},
		{"missing identity", ErrMissingIdentity, true},
		{"unknown kind", ErrUnknownKind, true},
		{"decoding failed", ErrDecodingFailed, true},
		{"connection lost", ErrConnectionLost, false},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(ErrInvalidConfig) {
		t.Error("expected ErrInvalidConfig to be fatal")
	}
	if !IsFatal(ErrMissingConfig) {
		t.Error("expected ErrMissingConfig to be fatal")
	}
	if IsFatal(ErrConnectionLost) {
		t.Error("expected ErrConnectionLost to not be fatal")
	}
	if IsFatal(nil) {
		t.Error("expected nil to not be fatal")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil defaults to transient", nil, ErrorTransient},
		{"connection lost", ErrConnectionLost, ErrorTransient},
		{"malformed frame", ErrMalformedFrame, ErrorInvalid},
		{"invalid config", ErrInvalidConfig, ErrorFatal},
		{"unknown defaults to transient", fmt.Errorf("something odd"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Classify(test.err); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestWrapPattern(t *testing.T) {
	base := fmt.Errorf("boom")
	wrapped := Wrap(base, "stream", "connect", "dial telemetry channel")

	expected := "stream.connect: dial telemetry channel failed: boom"
	if wrapped.Error() != expected {
		t.Errorf("expected %q, got %q", expected, wrapped.Error())
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if Wrap(nil, "a", "b", "c") != nil {
		t.Error("wrapping nil should return nil")
	}
}

func TestWrapClassificationPreserved(t *testing.T) {
	wrapped := WrapInvalid(fmt.Errorf("bad payload"), "stream", "handleTelemetry", "validate payload")

	var ce *ClassifiedError
	if !errors.As(wrapped, &ce) {
		t.Fatal("expected a ClassifiedError")
	}
	if ce.Class != ErrorInvalid {
		t.Errorf("expected ErrorInvalid, got %v", ce.Class)
	}
	if ce.Component != "stream" {
		t.Errorf("expected component stream, got %s", ce.Component)
	}
	if !strings.Contains(wrapped.Error(), "validate payload failed") {
		t.Errorf("unexpected message: %s", wrapped.Error())
	}

	// Classification survives further wrapping.
	outer := fmt.Errorf("outer: %w", wrapped)
	if !IsInvalid(outer) {
		t.Error("classification should survive wrapping chains")
	}
}

func TestWrapTransientAndFatal(t *testing.T) {
	if !IsTransient(WrapTransient(fmt.Errorf("x"), "c", "m", "a")) {
		t.Error("WrapTransient should classify transient")
	}
	if !IsFatal(WrapFatal(fmt.Errorf("x"), "c", "m", "a")) {
		t.Error("WrapFatal should classify fatal")
	}
	if WrapTransient(nil, "c", "m", "a") != nil || WrapFatal(nil, "c", "m", "a") != nil || WrapInvalid(nil, "c", "m", "a") != nil {
		t.Error("wrapping nil should return nil")
	}
}
