package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all platform-level metrics (not domain-specific)
type Metrics struct {
	// Component metrics
	ComponentStatus    *prometheus.GaugeVec
	ErrorsTotal        *prometheus.CounterVec
	ProcessingDuration *prometheus.HistogramVec

	// Stream metrics
	StreamConnected  *prometheus.GaugeVec
	StreamReconnects *prometheus.CounterVec
	FramesReceived   *prometheus.CounterVec
	FramesDropped    *prometheus.CounterVec

	// Playback metrics
	PlaybackPlaying prometheus.Gauge
	PlaybackCursor  prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ComponentStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "firewatch",
				Subsystem: "component",
				Name:      "status",
				Help:      "Component status (0=stopped, 1=starting, 2=running, 3=stopping, 4=failed)",
			},
			[]string{"component"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "firewatch",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"component", "type"},
		),

		ProcessingDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "firewatch",
				Subsystem: "processing",
				Name:      "duration_seconds",
				Help:      "Record processing duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"component", "operation"},
		),

		StreamConnected: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "firewatch",
				Subsystem: "stream",
				Name:      "connected",
				Help:      "Stream channel connection status (0=disconnected, 1=connecting, 2=connected)",
			},
			[]string{"channel"},
		),

		StreamReconnects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "firewatch",
				Subsystem: "stream",
				Name:      "reconnects_total",
				Help:      "Total number of stream channel reconnections",
			},
			[]string{"channel"},
		),

		FramesReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "firewatch",
				Subsystem: "stream",
				Name:      "frames_received_total",
				Help:      "Total number of frames received per channel",
			},
			[]string{"channel"},
		),

		FramesDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "firewatch",
				Subsystem: "stream",
				Name:      "frames_dropped_total",
				Help:      "Total number of frames dropped per channel by reason",
			},
			[]string{"channel", "reason"},
		),

		PlaybackPlaying: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "firewatch",
				Subsystem: "playback",
				Name:      "playing",
				Help:      "Playback state (0=paused, 1=playing)",
			},
		),

		PlaybackCursor: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "firewatch",
				Subsystem: "playback",
				Name:      "cursor_ms",
				Help:      "Playback cursor position as Unix milliseconds",
			},
		),
	}
}

// RecordComponentStatus updates component status metric
func (c *Metrics) RecordComponentStatus(component string, status int) {
	c.ComponentStatus.WithLabelValues(component).Set(float64(status))
}

// RecordError increments error counter
func (c *Metrics) RecordError(component, errorType string) {
	c.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// RecordProcessingDuration records processing time
func (c *Metrics) RecordProcessingDuration(component, operation string, duration time.Duration) {
	c.ProcessingDuration.WithLabelValues(component, operation).Observe(duration.Seconds())
}

// RecordStreamState updates a channel's connection state gauge
func (c *Metrics) RecordStreamState(channel string, state int) {
	c.StreamConnected.WithLabelValues(channel).Set(float64(state))
}

// RecordStreamReconnect increments a channel's reconnection counter
func (c *Metrics) RecordStreamReconnect(channel string) {
	c.StreamReconnects.WithLabelValues(channel).Inc()
}

// RecordFrameReceived increments a channel's received frame counter
func (c *Metrics) RecordFrameReceived(channel string) {
	c.FramesReceived.WithLabelValues(channel).Inc()
}

// RecordFrameDropped increments a channel's dropped frame counter
func (c *Metrics) RecordFrameDropped(channel, reason string) {
	c.FramesDropped.WithLabelValues(channel, reason).Inc()
}

// RecordPlaybackState updates the playback state gauge
func (c *Metrics) RecordPlaybackState(playing bool) {
	value := 0.0
	if playing {
		value = 1.0
	}
	c.PlaybackPlaying.Set(value)
}

// RecordPlaybackCursor updates the playback cursor gauge
func (c *Metrics) RecordPlaybackCursor(cursorMs int64) {
	c.PlaybackCursor.Set(float64(cursorMs))
}
