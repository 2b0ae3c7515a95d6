package timeline

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/c360/firewatch/errors"
)

// TickInterval is the playback scheduler period.
const TickInterval = 200 * time.Millisecond

// DefaultSpeed is the playback speed multiplier applied until SetSpeed is
// called.
const DefaultSpeed = 1.0

// Speeds is the multiplier set offered by the dashboard controls. SetSpeed
// accepts any positive value; this is the conventional menu.
var Speeds = []float64{0.5, 1, 2, 5, 10}

// Player state values.
const (
	Paused int32 = iota
	Playing
)

// Player replays the timeline window. While playing, every tick advances the
// cursor by one hundredth of the window scaled by the speed multiplier. The
// player pauses itself when the cursor reaches the live edge.
type Player struct {
	tl    *Timeline
	state atomic.Int32

	mu      sync.Mutex
	speed   float64
	onState func(playing bool)

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

// NewPlayer creates a paused player driving tl.
func NewPlayer(tl *Timeline) *Player {
	p := &Player{
		tl:    tl,
		speed: DefaultSpeed,
		done:  make(chan struct{}),
	}
	p.ticker = time.NewTicker(TickInterval)

	p.wg.Add(1)
	go p.run()
	return p
}

// OnState registers a callback invoked on every play/pause transition.
func (p *Player) OnState(fn func(playing bool)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onState = fn
}

// Play starts playback. Playing from the live edge restarts from the window
// start. Returns an error after Close.
func (p *Player) Play() error {
	if p.closed.Load() {
		return errors.WrapInvalid(errors.ErrNotStarted, "Player", "Play", "player is closed")
	}
	if !p.state.CompareAndSwap(Paused, Playing) {
		return nil // already playing
	}
	p.tl.rewindIfLive()
	p.notifyState(true)
	return nil
}

// Pause stops playback. The cursor keeps its position.
func (p *Player) Pause() {
	if p.state.CompareAndSwap(Playing, Paused) {
		p.notifyState(false)
	}
}

// Toggle flips between playing and paused.
func (p *Player) Toggle() error {
	if p.State() == Playing {
		p.Pause()
		return nil
	}
	return p.Play()
}

// Seek pauses playback and moves the cursor. Returns the clamped position.
func (p *Player) Seek(ts int64) int64 {
	p.Pause()
	return p.tl.seek(ts)
}

// SetSpeed changes the playback multiplier. Non-positive values are rejected.
func (p *Player) SetSpeed(speed float64) error {
	if speed <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig,
			"Player", "SetSpeed", "speed must be positive")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = speed
	return nil
}

// Speed returns the current playback multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// State returns Playing or Paused.
func (p *Player) State() int32 {
	return p.state.Load()
}

// Close stops the scheduler goroutine. No cursor movement happens after Close
// returns. Close is idempotent.
func (p *Player) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	close(p.done)
	p.wg.Wait()
	p.ticker.Stop()
	p.state.Store(Paused)
}

func (p *Player) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case <-p.ticker.C:
			if p.state.Load() != Playing {
				continue
			}
			p.tick()
		}
	}
}

// tick advances the cursor by one hundredth of the window scaled by speed,
// pausing at the live edge.
func (p *Player) tick() {
	p.mu.Lock()
	speed := p.speed
	p.mu.Unlock()

	step := int64(float64(p.tl.Duration().Milliseconds()) / 100 * speed)
	if step <= 0 {
		step = 1
	}
	if p.tl.step(step) {
		p.Pause()
	}
}

func (p *Player) notifyState(playing bool) {
	p.mu.Lock()
	fn := p.onState
	p.mu.Unlock()
	if fn != nil {
		fn(playing)
	}
}
