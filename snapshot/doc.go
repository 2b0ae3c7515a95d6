// Package snapshot reconstructs point-in-time views from telemetry histories.
//
// Given a full observation history and a target timestamp, At selects the
// latest observation at or before the target for each entity. Entities whose
// first observation is after the target are absent: they did not exist yet at
// that moment. Future observations never leak into a snapshot.
//
// Summarize condenses a telemetry snapshot into the dashboard quick stats.
package snapshot
