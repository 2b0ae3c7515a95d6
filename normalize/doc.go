// Package normalize dedupes and orders batches of records.
//
// Telemetry is keyed by (id, timestamp) with last-write-wins on exact key
// collisions; notifications are keyed by id alone. Both emit ascending
// timestamp order. All functions are pure and idempotent: normalizing an
// already-normalized batch returns an equal batch.
package normalize
