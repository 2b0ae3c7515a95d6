// Package retry provides simple exponential backoff retry logic for transient failures.
//
// # Overview
//
// This package offers a minimal retry mechanism with exponential backoff for
// bounded, one-shot operations such as the startup warmup fetch against the
// remote history service. The live stream channels never use it: their
// reconnection policy is a fixed-delay unbounded loop owned by the channel
// state machine.
//
// # Core Functions
//
//   - Do: Execute function with retry and exponential backoff
//   - DoWithResult: Execute function with retry, returns both result and error
//
// # Configuration Presets
//
//   - DefaultConfig(): 3 attempts, 100ms-5s delay (normal operations)
//   - Warmup(): 10 attempts, 250ms-5s delay (startup bulk fetch)
//
// # Usage Examples
//
// Basic retry with defaults:
//
//	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
//	    return client.Ping()
//	})
//
// Retry with result:
//
//	history, err := retry.DoWithResult(ctx, retry.Warmup(), func() (record.History, error) {
//	    return queries.Recent(ctx)
//	})
//
// # Design Philosophy
//
// This package is intentionally minimal:
//
//   - No circuit breakers
//   - No metrics collection (use instrumentation at call site)
//   - No complex error classification (mark errors NonRetryable at the call site)
//   - Just exponential backoff with jitter
//
// # Context Cancellation
//
// All retry operations respect context cancellation and will immediately stop retrying
// when the context is cancelled, either during operation execution or during backoff delay.
//
// # Thread Safety
//
// All functions are safe for concurrent use. The jitter mechanism uses a thread-safe
// random source to avoid contention.
package retry
