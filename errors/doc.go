// Package errors provides standardized error handling patterns for Firewatch
// components.
//
// # Overview
//
// The package implements a three-class error classification system: Transient
// (temporary, retryable), Invalid (bad input, non-retryable), and Fatal
// (unrecoverable, stop processing).
//
// The classes map directly onto the engine's failure taxonomy:
//
//   - Transient: channel closed or errored, request/network failures. The
//     stream client recovers these automatically via reconnection; remote
//     query failures surface to the caller, who may retry.
//   - Invalid: malformed frames and payloads missing identity fields. These
//     are dropped at the transport boundary and never crash a consumer.
//   - Fatal: configuration errors. These stop startup.
//
// # Quick Start
//
// Use standard error variables for common conditions:
//
//	if frame.Type == "" {
//	    return errors.ErrMalformedFrame
//	}
//
// Wrap errors with context for debugging:
//
//	if err := json.Unmarshal(data, &frame); err != nil {
//	    return errors.WrapInvalid(err, "stream", "handleTelemetry", "unmarshal frame")
//	}
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// Three wrapper functions provide classification-aware wrapping
// (WrapTransient, WrapInvalid, WrapFatal); the generic Wrap() preserves the
// original error's classification. All types support errors.Is/As and
// wrapping chains; context.DeadlineExceeded and context.Canceled classify
// as Transient.
package errors
