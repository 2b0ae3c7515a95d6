// Package stream maintains the two live WebSocket feeds of the engine: the
// telemetry channel (fire and drone observation frames) and the notification
// channel.
//
// Each channel runs an independent state machine
// (Disconnected -> Connecting -> Connected) with its own connection, read
// loop, and reconnect timer. A lost connection schedules a reconnect attempt
// after a fixed delay and keeps retrying for as long as the client runs; one
// channel failing never disturbs the other. At most one live connection per
// channel exists at any time, including under racing connect attempts.
//
// Valid frames are merged into the cache; telemetry frames additionally
// report their timestamp to the window controller, and notification frames
// are forwarded to the configured alert sink. Malformed frames are dropped
// silently, counted, and logged at debug level only.
package stream
