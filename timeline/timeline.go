package timeline

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the observation window duration.
	DefaultWindow = 24 * time.Hour

	// PinThreshold is how close to the live edge the cursor must be to
	// follow window advancement.
	PinThreshold = 1500 * time.Millisecond
)

// Timeline owns the moving window and the playback cursor. All methods are
// safe for concurrent use.
type Timeline struct {
	mu       sync.Mutex
	duration int64 // window duration in ms
	pin      int64 // pin threshold in ms
	start    int64
	end      int64
	cursor   int64
	onCursor func(cursor int64)
}

// New creates a timeline with the given window duration. A non-positive
// duration uses DefaultWindow.
func New(duration time.Duration) *Timeline {
	if duration <= 0 {
		duration = DefaultWindow
	}
	return &Timeline{
		duration: duration.Milliseconds(),
		pin:      PinThreshold.Milliseconds(),
	}
}

// OnCursor registers a callback invoked, outside playback ticks and window
// advancement alike, whenever the cursor moves. The callback runs with the
// timeline lock held; it must not call back into the timeline.
func (t *Timeline) OnCursor(fn func(cursor int64)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onCursor = fn
}

// Advance moves the window end forward to latest. Calls with latest at or
// before the current end are ignored: the window never moves backward.
// A pinned cursor follows to the new end; an unpinned cursor stays, clamped
// to the new window start. Reports whether the window moved.
func (t *Timeline) Advance(latest int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if latest <= t.end {
		return false
	}

	oldEnd := t.end
	t.end = latest
	t.start = t.end - t.duration

	// First observation establishes the window with a live cursor.
	pinned := oldEnd == 0 || t.cursor >= oldEnd-t.pin
	if pinned {
		t.setCursor(t.end)
	} else if t.cursor < t.start {
		t.setCursor(t.start)
	}
	return true
}

// seek moves the cursor to ts, clamped into the window. Returns the cursor
// position after clamping. Unexported so every manual seek goes through
// Player.Seek, which pauses playback first.
func (t *Timeline) seek(ts int64) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setCursor(t.clamp(ts))
	return t.cursor
}

// step advances the cursor by delta milliseconds. Reports whether the cursor
// reached the live edge.
func (t *Timeline) step(delta int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.setCursor(t.clamp(t.cursor + delta))
	return t.cursor >= t.end
}

// rewindIfLive resets the cursor to the window start when it sits at the live
// edge, so playback restarts from the beginning of the window.
func (t *Timeline) rewindIfLive() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.end-t.cursor <= t.pin {
		t.setCursor(t.start)
	}
}

// Cursor returns the current cursor position.
func (t *Timeline) Cursor() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor
}

// Window returns the current window bounds.
func (t *Timeline) Window() (start, end int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.start, t.end
}

// Duration returns the window duration.
func (t *Timeline) Duration() time.Duration {
	return time.Duration(t.duration) * time.Millisecond
}

// Pinned reports whether the cursor is close enough to the live edge to
// follow window advancement.
func (t *Timeline) Pinned() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor >= t.end-t.pin
}

func (t *Timeline) clamp(ts int64) int64 {
	if ts < t.start {
		return t.start
	}
	if ts > t.end {
		return t.end
	}
	return ts
}

func (t *Timeline) setCursor(ts int64) {
	if ts == t.cursor {
		return
	}
	t.cursor = ts
	if t.onCursor != nil {
		t.onCursor(ts)
	}
}
