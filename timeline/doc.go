// Package timeline owns the moving observation window and the playback
// cursor that moves through it.
//
// The Timeline maintains a fixed-duration window whose end tracks the latest
// observed telemetry timestamp and never moves backward. The cursor selects
// the instant being viewed. A cursor near the live edge is "pinned": it
// follows the window end as new data arrives, so a viewer watching live stays
// live. A cursor parked in the past stays put, only clamped when the window
// start overtakes it.
//
// The Player replays the window: while playing, a fixed-interval ticker
// advances the cursor by a speed-scaled fraction of the window per tick and
// pauses when the cursor reaches the live edge. Playing from the live edge
// restarts from the window start.
package timeline
