// Package alert maps notification severity to presentation policy and fans
// incoming notifications out to pluggable sinks.
//
// A Policy describes how a notification of a given severity should surface:
// its visual style, how long it stays on screen, and whether it persists until
// acknowledged. PolicyFor resolves the policy table; unknown severities fall
// back to the informational default.
//
// The Notifier interface decouples the stream pipeline from delivery. Two
// implementations ship with the package: LogNotifier writes structured log
// records at a severity-appropriate level, and NATSNotifier publishes the
// notification as JSON to a NATS subject for downstream consumers. Multi
// composes several notifiers into one.
package alert
