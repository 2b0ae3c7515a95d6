package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/c360/firewatch/errors"
	"github.com/c360/firewatch/stream"
	"github.com/c360/firewatch/timeline"
)

// APIConfig locates the remote history service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"FIREWATCH_API_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" env:"FIREWATCH_API_TIMEOUT"`
}

// StreamConfig locates the live WebSocket feeds.
type StreamConfig struct {
	TelemetryURL     string        `yaml:"telemetry_url" env:"FIREWATCH_STREAM_TELEMETRY_URL"`
	NotificationsURL string        `yaml:"notifications_url" env:"FIREWATCH_STREAM_NOTIFICATIONS_URL"`
	ReconnectDelay   time.Duration `yaml:"reconnect_delay" env:"FIREWATCH_STREAM_RECONNECT_DELAY"`
}

// NATSConfig configures the optional NATS alert sink.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled" env:"FIREWATCH_NATS_ENABLED"`
	URL     string `yaml:"url" env:"FIREWATCH_NATS_URL"`
	Subject string `yaml:"subject" env:"FIREWATCH_NATS_SUBJECT"`
}

// AlertsConfig configures notification delivery.
type AlertsConfig struct {
	NATS NATSConfig `yaml:"nats"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"FIREWATCH_METRICS_ADDR"`
}

// TimelineConfig configures the window controller and playback scheduler.
type TimelineConfig struct {
	WindowDuration time.Duration `yaml:"window_duration" env:"FIREWATCH_TIMELINE_WINDOW"`
	Speed          float64       `yaml:"speed" env:"FIREWATCH_TIMELINE_SPEED"`
}

// Config is the full engine configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Stream   StreamConfig   `yaml:"stream"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Timeline TimelineConfig `yaml:"timeline"`
}

// Default returns the configuration used when no file or environment
// overrides are present: a local sim backend with the operational constants.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Stream: StreamConfig{
			TelemetryURL:     "ws://localhost:8000/ws/fire-updates/",
			NotificationsURL: "ws://localhost:8000/ws/notifications/",
			ReconnectDelay:   stream.DefaultReconnectDelay,
		},
		Alerts: AlertsConfig{
			NATS: NATSConfig{
				URL:     "nats://localhost:4222",
				Subject: "firewatch.alerts",
			},
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Timeline: TimelineConfig{
			WindowDuration: timeline.DefaultWindow,
			Speed:          timeline.DefaultSpeed,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment overrides. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.WrapInvalid(err, "config", "Load", "read config file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.WrapInvalid(err, "config", "Load", "parse config file")
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.WrapInvalid(err, "config", "Load", "apply environment overrides")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required fields and fills zero values with the operational
// constants.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "api.base_url is required")
	}
	if c.Stream.TelemetryURL == "" || c.Stream.NotificationsURL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "both stream URLs are required")
	}
	if c.Alerts.NATS.Enabled && c.Alerts.NATS.URL == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "alerts.nats.url is required when nats is enabled")
	}
	if c.Alerts.NATS.Enabled && c.Alerts.NATS.Subject == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig,
			"config", "Validate", "alerts.nats.subject is required when nats is enabled")
	}

	if c.API.Timeout <= 0 {
		c.API.Timeout = 10 * time.Second
	}
	if c.Stream.ReconnectDelay <= 0 {
		c.Stream.ReconnectDelay = stream.DefaultReconnectDelay
	}
	if c.Timeline.WindowDuration <= 0 {
		c.Timeline.WindowDuration = timeline.DefaultWindow
	}
	if c.Timeline.Speed == 0 {
		c.Timeline.Speed = timeline.DefaultSpeed
	}
	if c.Timeline.Speed < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("timeline.speed %v", c.Timeline.Speed),
			"config", "Validate", "speed must be positive")
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9090"
	}
	return nil
}
