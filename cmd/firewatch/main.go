// Package main implements the entry point for the Firewatch engine.
// Firewatch reconciles historical and live fire/drone telemetry into a
// deduplicated in-memory cache and drives a windowed playback timeline
// over it, publishing operator alerts for incoming notifications.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/firewatch/alert"
	"github.com/c360/firewatch/cache"
	"github.com/c360/firewatch/config"
	"github.com/c360/firewatch/metric"
	"github.com/c360/firewatch/pkg/retry"
	"github.com/c360/firewatch/query"
	"github.com/c360/firewatch/record"
	"github.com/c360/firewatch/stream"
	"github.com/c360/firewatch/timeline"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "firewatch"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := config.Load(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	// Metrics endpoint first so warmup and stream activity are observable.
	registry := metric.NewMetricsRegistry()
	metricsServer := startMetricsServer(cfg, registry)
	defer stopMetricsServer(metricsServer)

	store := cache.NewStore()
	if err := warmup(signalCtx, cfg, store); err != nil {
		return err
	}

	tl, player, err := setupTimeline(cfg, store, registry)
	if err != nil {
		return err
	}
	defer player.Close()

	notifier, natsConn, err := setupNotifiers(cfg)
	if err != nil {
		return err
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	streamClient, err := setupStream(cfg, store, tl, registry, notifier)
	if err != nil {
		return err
	}
	if err := streamClient.Start(signalCtx); err != nil {
		return fmt.Errorf("start stream client: %w", err)
	}

	slog.Info("Firewatch started",
		"fires", len(store.Fires()),
		"drones", len(store.Drones()),
		"notifications", len(store.Notifications()),
		"window", tl.Duration())

	<-signalCtx.Done()
	slog.Info("Received shutdown signal")

	if err := streamClient.Stop(cliCfg.ShutdownTimeout); err != nil {
		slog.Error("Error stopping stream client", "error", err)
	}

	slog.Info("Firewatch shutdown complete")
	return nil
}

// initializeCLI parses flags and sets up logging
func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting Firewatch (telemetry reconciliation and playback)",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, false, nil
}

// startMetricsServer serves Prometheus metrics in the background.
func startMetricsServer(cfg config.Config, registry *metric.MetricsRegistry) *metric.Server {
	server := metric.NewServer(cfg.Metrics.Addr, "/metrics", registry)
	go func() {
		if err := server.Start(); err != nil {
			slog.Error("Metrics server failed", "error", err, "addr", cfg.Metrics.Addr)
		}
	}()
	return server
}

func stopMetricsServer(server *metric.Server) {
	if err := server.Stop(); err != nil {
		slog.Error("Error stopping metrics server", "error", err)
	}
}

// warmup fetches the recent history and notifications from the query API and
// seeds the cache. Transient failures are retried with backoff so a backend
// that is still coming up does not kill the engine.
func warmup(ctx context.Context, cfg config.Config, store *cache.Store) error {
	client, err := query.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return fmt.Errorf("create query client: %w", err)
	}

	slog.Info("Fetching recent history", "base_url", cfg.API.BaseURL)
	history, err := retry.DoWithResult(ctx, retry.Warmup(), func() (record.History, error) {
		return client.Recent(ctx)
	})
	if err != nil {
		return fmt.Errorf("fetch recent history: %w", err)
	}
	store.MergeHistory(history)

	notifications, err := retry.DoWithResult(ctx, retry.Warmup(), func() ([]record.Notification, error) {
		return client.RecentNotifications(ctx)
	})
	if err != nil {
		return fmt.Errorf("fetch recent notifications: %w", err)
	}
	store.MergeNotifications(notifications...)

	stats := store.Stats()
	slog.Info("Warmup complete",
		"fires", stats.Fires,
		"drones", stats.Drones,
		"notifications", stats.Notifications)
	return nil
}

// setupTimeline creates the window controller and playback scheduler, anchored
// at the newest cached observation.
func setupTimeline(
	cfg config.Config,
	store *cache.Store,
	registry *metric.MetricsRegistry,
) (*timeline.Timeline, *timeline.Player, error) {
	core := registry.CoreMetrics()

	tl := timeline.New(cfg.Timeline.WindowDuration)
	tl.OnCursor(core.RecordPlaybackCursor)
	if latest := store.LatestTimestamp(); latest > 0 {
		tl.Advance(latest)
	}

	player := timeline.NewPlayer(tl)
	player.OnState(core.RecordPlaybackState)
	if err := player.SetSpeed(cfg.Timeline.Speed); err != nil {
		player.Close()
		return nil, nil, fmt.Errorf("set playback speed: %w", err)
	}

	return tl, player, nil
}

// setupNotifiers builds the alert fanout: structured log output always, NATS
// publishing when enabled.
func setupNotifiers(cfg config.Config) (alert.Notifier, *nats.Conn, error) {
	notifiers := alert.Multi{alert.NewLogNotifier(slog.Default())}

	if !cfg.Alerts.NATS.Enabled {
		return notifiers, nil, nil
	}

	slog.Info("Connecting to NATS", "url", cfg.Alerts.NATS.URL, "subject", cfg.Alerts.NATS.Subject)
	conn, err := nats.Connect(cfg.Alerts.NATS.URL,
		nats.Name(appName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to NATS: %w", err)
	}

	natsNotifier, err := alert.NewNATSNotifier(conn, cfg.Alerts.NATS.Subject)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create NATS notifier: %w", err)
	}

	return append(notifiers, natsNotifier), conn, nil
}

// setupStream creates the live WebSocket client wired to the cache, timeline,
// metrics, and alert fanout.
func setupStream(
	cfg config.Config,
	store *cache.Store,
	tl *timeline.Timeline,
	registry *metric.MetricsRegistry,
	notifier alert.Notifier,
) (*stream.Client, error) {
	client, err := stream.NewClient(stream.Config{
		TelemetryURL:     cfg.Stream.TelemetryURL,
		NotificationsURL: cfg.Stream.NotificationsURL,
		ReconnectDelay:   cfg.Stream.ReconnectDelay,
	}, store,
		stream.WithLogger(slog.Default()),
		stream.WithMetrics(registry),
		stream.WithNotifier(notifier),
		stream.WithAdvance(func(latest int64) { tl.Advance(latest) }),
	)
	if err != nil {
		return nil, fmt.Errorf("create stream client: %w", err)
	}
	return client, nil
}
