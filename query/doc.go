// Package query is the HTTP client for the remote history service: bulk
// recent fetches used at startup, windowed range queries with pagination, and
// the fire warden chat endpoint.
//
// All responses are normalized client-side before being returned, so callers
// receive deduplicated, timestamp-ordered collections regardless of what the
// service emitted. Errors are classified: network failures and 5xx responses
// are transient, 4xx responses and decode failures are invalid. The client
// never retries on its own; bounded retry policy belongs to the caller.
package query
