// Package sim is an in-process stand-in for the upstream mission control
// service, used for demos and end-to-end tests.
//
// It serves the same HTTP surface the engine's query client expects (recent
// telemetry, windowed range queries with pagination, recent notifications,
// and the fire warden chat) plus the two WebSocket feeds the stream client
// subscribes to. A background generator grows the seeded fires over time and
// emits periodic notifications, so connected clients see a continuously
// evolving feed.
package sim
