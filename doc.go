// Package firewatch reconciles historical and live fire/drone telemetry
// into a single deduplicated in-memory state and drives a windowed playback
// timeline over it.
//
// # Architecture
//
// The engine composes a small number of focused packages:
//
//	┌──────────────┐   HTTP    ┌──────────────┐
//	│ query.Client │──────────>│   backend    │
//	└──────┬───────┘  warmup   │  (or sim)    │
//	       │                   └──────┬───────┘
//	       ▼                          │ WebSocket
//	┌──────────────┐           ┌──────▼───────┐
//	│ cache.Store  │<──────────│stream.Client │
//	└──────┬───────┘   merge   └──────┬───────┘
//	       │                          │ advance / notify
//	       ▼                          ▼
//	┌──────────────┐           ┌──────────────┐
//	│  snapshot    │           │timeline/alert│
//	└──────────────┘           └──────────────┘
//
// At startup the query client fetches the recent history and notification
// backlog and seeds the cache. The stream client then holds two WebSocket
// subscriptions (telemetry and notifications) open with automatic
// reconnection, merging each frame into the cache, advancing the timeline
// window, and fanning incoming notifications out to the configured alert
// sinks.
//
// # Data Model
//
// Telemetry records (record.Fire, record.Drone) are observations keyed by
// entity ID and millisecond timestamp. The cache keeps every observation,
// deduplicated last-write-wins and sorted ascending by time, so the
// snapshot package can reconstruct the world state at any instant within
// the retention window.
//
// Notifications are identified by ID alone. Acknowledgement state is local
// to the engine and survives re-delivery of the same notification from the
// backend.
//
// # Playback
//
// The timeline maintains a sliding window (24h by default) anchored at the
// newest observation. A cursor within the window selects the instant being
// viewed; while the cursor sits at the live edge it stays pinned there as
// new data arrives. The player advances the cursor on a fixed tick at a
// configurable speed and pauses automatically when it reaches the live
// edge.
//
// # Entry Points
//
// cmd/firewatch runs the engine daemon. cmd/firewatch-sim runs a
// standalone backend simulator serving the same HTTP and WebSocket surface
// against a seeded, evolving dataset.
package firewatch
