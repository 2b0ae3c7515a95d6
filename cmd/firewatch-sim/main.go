// Package main runs the standalone telemetry simulator. It serves the same
// HTTP and WebSocket surface as the upstream mission control service against
// a seeded, continuously evolving dataset, so the engine can be run and
// demoed without the real backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/firewatch/sim"
)

const (
	Version = "0.1.0"
	appName = "firewatch-sim"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Simulator failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr          string
		fireInterval  time.Duration
		notifInterval time.Duration
		logLevel      string
		showVersion   bool
	)

	flag.StringVar(&addr, "addr", ":8000", "Listen address")
	flag.DurationVar(&fireInterval, "fire-interval", sim.DefaultFireInterval,
		"Interval between generated fire updates")
	flag.DurationVar(&notifInterval, "notification-interval", sim.DefaultNotificationInterval,
		"Interval between generated notifications")
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	logger := setupLogger(logLevel)
	slog.SetDefault(logger)

	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	server := sim.NewServer(
		sim.WithLogger(logger),
		sim.WithIntervals(fireInterval, notifInterval),
	)
	if err := server.Start(signalCtx); err != nil {
		return fmt.Errorf("start generators: %w", err)
	}
	defer server.Stop()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Simulator listening",
			"addr", addr,
			"fire_interval", fireInterval,
			"notification_interval", notifInterval)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-signalCtx.Done():
	}
	slog.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	slog.Info("Simulator shutdown complete")
	return nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler).With("service", appName, "version", Version)
}
