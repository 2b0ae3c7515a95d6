// Package record defines the shared entity shapes flowing through the
// reconciliation engine: timestamped fire and drone telemetry observations
// and operational notifications.
//
// Identity rules:
//   - Telemetry records are identified by the (id, timestamp) pair. The same
//     entity observed twice at the same instant collapses to one record; the
//     same entity at different instants are distinct historical points.
//   - Notifications are identified by id alone. A later arrival with the same
//     id replaces the earlier one.
//
// All timestamps are Unix milliseconds (see pkg/timestamp).
package record
