// Package cache holds the reconciled in-memory state of the engine: the full
// fire and drone observation histories plus the current notification set.
//
// All mutation goes through merge operations that re-normalize the affected
// collection, so readers always observe a deduplicated, timestamp-ordered
// view and never a half-merged one. Telemetry merges are additive: an entity's
// history only grows. Notification merges replace by id, with one exception:
// a locally acknowledged notification stays acknowledged when the wire copy
// arrives again unacknowledged.
//
// Read accessors return copies. Callers may retain and mutate the returned
// slices freely.
package cache
