package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c360/firewatch/alert"
	"github.com/c360/firewatch/cache"
	"github.com/c360/firewatch/errors"
	"github.com/c360/firewatch/metric"
	"github.com/c360/firewatch/record"
)

// DefaultReconnectDelay is the fixed delay between reconnection attempts.
const DefaultReconnectDelay = 3 * time.Second

// Channel connection states.
const (
	StateDisconnected int32 = iota
	StateConnecting
	StateConnected
)

// Channel names used in logs and metrics.
const (
	ChannelTelemetry     = "telemetry"
	ChannelNotifications = "notifications"
)

// Config configures the stream client.
type Config struct {
	TelemetryURL     string
	NotificationsURL string
	// ReconnectDelay is the fixed wait between reconnection attempts.
	// Zero uses DefaultReconnectDelay.
	ReconnectDelay time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithNotifier routes incoming notifications to the given alert sink.
func WithNotifier(n alert.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics wires the client into the metrics registry.
func WithMetrics(registry *metric.MetricsRegistry) Option {
	return func(c *Client) {
		if registry != nil {
			c.metrics = registry.CoreMetrics()
		}
	}
}

// WithAdvance registers a callback receiving the timestamp of every merged
// telemetry observation. The window controller is the intended consumer.
func WithAdvance(fn func(latest int64)) Option {
	return func(c *Client) { c.advance = fn }
}

// WithDialer overrides the WebSocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// channel is one independent feed with its own connection lifecycle.
type channel struct {
	name   string
	url    string
	handle func(data []byte)

	state atomic.Int32
	mu    sync.Mutex // guards conn
	conn  *websocket.Conn
}

// Client maintains the telemetry and notification feeds. Each channel
// reconnects independently with a fixed delay and unbounded retries.
type Client struct {
	cfg      Config
	store    *cache.Store
	notifier alert.Notifier
	logger   *slog.Logger
	metrics  *metric.Metrics
	advance  func(latest int64)
	dialer   *websocket.Dialer

	telemetry     *channel
	notifications *channel

	started     atomic.Bool
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	lifecycleMu sync.Mutex
}

// NewClient creates a stream client feeding store.
func NewClient(cfg Config, store *cache.Store, opts ...Option) (*Client, error) {
	if cfg.TelemetryURL == "" || cfg.NotificationsURL == "" {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"stream", "NewClient", "both channel URLs are required")
	}
	if store == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig,
			"stream", "NewClient", "cache store is required")
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}

	c := &Client{
		cfg:    cfg,
		store:  store,
		logger: slog.Default(),
		dialer: websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.telemetry = &channel{
		name:   ChannelTelemetry,
		url:    cfg.TelemetryURL,
		handle: c.handleTelemetry,
	}
	c.notifications = &channel{
		name:   ChannelNotifications,
		url:    cfg.NotificationsURL,
		handle: c.handleNotification,
	}
	return c, nil
}

// Start launches both channel loops. It returns immediately; connections are
// established in the background.
func (c *Client) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if c.started.Load() {
		return errors.WrapInvalid(errors.ErrAlreadyStarted,
			"stream", "Start", "check started state")
	}

	clientCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	for _, ch := range []*channel{c.telemetry, c.notifications} {
		c.wg.Add(1)
		go c.run(clientCtx, ch)
	}

	c.started.Store(true)
	return nil
}

// Stop closes both connections and waits for the channel loops to exit.
func (c *Client) Stop(timeout time.Duration) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if !c.started.Load() {
		return nil // already stopped
	}

	c.cancel()

	// Closing the connections unblocks any read in progress.
	for _, ch := range []*channel{c.telemetry, c.notifications} {
		ch.mu.Lock()
		if ch.conn != nil {
			_ = ch.conn.Close()
			ch.conn = nil
		}
		ch.mu.Unlock()
	}

	doneCh := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(doneCh)
	}()

	select {
	case <-doneCh:
	case <-time.After(timeout):
		return errors.WrapTransient(
			fmt.Errorf("shutdown timeout after %v", timeout),
			"stream", "Stop", "wait for channel loops")
	}

	c.started.Store(false)
	return nil
}

// TelemetryState returns the telemetry channel connection state.
func (c *Client) TelemetryState() int32 { return c.telemetry.state.Load() }

// NotificationState returns the notification channel connection state.
func (c *Client) NotificationState() int32 { return c.notifications.state.Load() }

// run is the per-channel connection loop: dial, read until disconnect, wait
// the fixed delay, repeat. Retries are unbounded; only context cancellation
// ends the loop.
func (c *Client) run(ctx context.Context, ch *channel) {
	defer c.wg.Done()
	defer c.setState(ch, StateDisconnected)

	for {
		if ctx.Err() != nil {
			return
		}

		// The loop is the channel's only connector, so the guard can
		// only fail if a stale loop is still winding down.
		if !ch.state.CompareAndSwap(StateDisconnected, StateConnecting) {
			return
		}
		c.recordState(ch)

		conn, resp, err := c.dialer.DialContext(ctx, ch.url, nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		if err != nil {
			c.setState(ch, StateDisconnected)
			c.trackError(ch, "connect_error")
			c.logger.Warn("stream connect failed",
				"channel", ch.name, "url", ch.url, "error", err)
			if !c.waitReconnect(ctx, ch) {
				return
			}
			continue
		}

		ch.mu.Lock()
		if ctx.Err() != nil {
			ch.mu.Unlock()
			_ = conn.Close()
			return
		}
		ch.conn = conn
		ch.mu.Unlock()

		c.setState(ch, StateConnected)
		c.logger.Info("stream connected", "channel", ch.name, "url", ch.url)

		c.readLoop(ctx, ch, conn)

		ch.mu.Lock()
		ch.conn = nil
		ch.mu.Unlock()
		c.setState(ch, StateDisconnected)

		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("stream disconnected", "channel", ch.name)
		if !c.waitReconnect(ctx, ch) {
			return
		}
	}
}

// readLoop consumes frames until the connection drops.
func (c *Client) readLoop(ctx context.Context, ch *channel, conn *websocket.Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				c.trackError(ch, "read_error")
			}
			return
		}

		if c.metrics != nil {
			c.metrics.RecordFrameReceived(ch.name)
		}
		ch.handle(message)
	}
}

// waitReconnect sleeps the fixed reconnect delay. Reports false when the
// context was cancelled during the wait.
func (c *Client) waitReconnect(ctx context.Context, ch *channel) bool {
	if c.metrics != nil {
		c.metrics.RecordStreamReconnect(ch.name)
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.cfg.ReconnectDelay):
		return true
	}
}

// telemetryFrame is the wire shape of the telemetry channel.
type telemetryFrame struct {
	Type    record.Kind     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// handleTelemetry parses and merges one telemetry frame. Malformed frames
// are dropped silently.
func (c *Client) handleTelemetry(data []byte) {
	var frame telemetryFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.drop(c.telemetry, "malformed", err)
		return
	}
	if !frame.Type.Valid() {
		c.drop(c.telemetry, "unknown_kind", errors.ErrUnknownKind)
		return
	}
	if len(frame.Payload) == 0 {
		c.drop(c.telemetry, "missing_payload", errors.ErrMalformedFrame)
		return
	}

	switch frame.Type {
	case record.KindFire:
		var fire record.Fire
		if err := json.Unmarshal(frame.Payload, &fire); err != nil {
			c.drop(c.telemetry, "malformed", err)
			return
		}
		if fire.ID == "" || fire.Timestamp <= 0 {
			c.drop(c.telemetry, "missing_identity", errors.ErrMissingIdentity)
			return
		}
		c.store.MergeFires(fire)
		c.observed(fire.Timestamp)

	case record.KindDrone:
		var drone record.Drone
		if err := json.Unmarshal(frame.Payload, &drone); err != nil {
			c.drop(c.telemetry, "malformed", err)
			return
		}
		if drone.ID == "" || drone.Timestamp <= 0 {
			c.drop(c.telemetry, "missing_identity", errors.ErrMissingIdentity)
			return
		}
		c.store.MergeDrones(drone)
		c.observed(drone.Timestamp)
	}
}

// handleNotification parses, merges, and forwards one notification frame.
func (c *Client) handleNotification(data []byte) {
	var n record.Notification
	if err := json.Unmarshal(data, &n); err != nil {
		c.drop(c.notifications, "malformed", err)
		return
	}
	if n.ID == "" || n.Timestamp <= 0 {
		c.drop(c.notifications, "missing_identity", errors.ErrMissingIdentity)
		return
	}

	c.store.MergeNotifications(n)

	if c.notifier != nil {
		policy := alert.PolicyFor(n.Severity)
		if err := c.notifier.Notify(n, policy); err != nil {
			c.trackError(c.notifications, "notify_error")
			c.logger.Warn("notification delivery failed",
				"channel", ChannelNotifications, "id", n.ID, "error", err)
		}
	}
}

// observed reports a merged telemetry timestamp to the window controller.
func (c *Client) observed(ts int64) {
	if c.advance != nil {
		c.advance(ts)
	}
}

// drop counts a discarded frame. Malformed input never interrupts the feed.
func (c *Client) drop(ch *channel, reason string, err error) {
	if c.metrics != nil {
		c.metrics.RecordFrameDropped(ch.name, reason)
	}
	c.logger.Debug("frame dropped", "channel", ch.name, "reason", reason, "error", err)
}

// trackError counts a channel error.
func (c *Client) trackError(ch *channel, errorType string) {
	if c.metrics != nil {
		c.metrics.RecordError("stream."+ch.name, errorType)
	}
}

func (c *Client) setState(ch *channel, state int32) {
	ch.state.Store(state)
	c.recordState(ch)
}

func (c *Client) recordState(ch *channel) {
	if c.metrics != nil {
		c.metrics.RecordStreamState(ch.name, int(ch.state.Load()))
	}
}
