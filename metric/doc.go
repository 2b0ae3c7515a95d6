// Package metric provides Prometheus-based metrics collection and an HTTP
// server for monitoring the reconciliation engine.
//
// The package offers a centralized metrics registry managing both core
// platform metrics (component status, stream connectivity, frame counts,
// playback state) and custom component-specific metrics. It includes an HTTP
// server exposing metrics in Prometheus format.
//
// # Architecture
//
// The package follows a three-layer design:
//
//  1. Core Metrics: Platform-level metrics automatically registered (Metrics type)
//  2. Component Registry: Extensible registration for component-specific metrics (MetricsRegistrar interface)
//  3. HTTP Server: Metrics endpoint with a health check (Server type)
//
// # Basic Usage
//
// Setting up metrics collection and HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(":9090", "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("Metrics server error: %v", err)
//	    }
//	}()
//	defer server.Stop()
//
//	// Record core platform metrics
//	core := registry.CoreMetrics()
//	core.RecordStreamState("telemetry", 2)
//	core.RecordFrameReceived("telemetry")
//	core.RecordFrameDropped("notifications", "malformed")
//
// # Component-Specific Metrics
//
// Components register custom metrics through the MetricsRegistrar interface:
//
//	counter := prometheus.NewCounter(prometheus.CounterOpts{
//	    Name: "merges_total",
//	    Help: "Total merge operations",
//	})
//	err := registry.RegisterCounter("cache", "merges_total", counter)
//
// Registration rejects duplicates at both the registry level (same
// component/metric key) and the Prometheus level (same fully-qualified
// metric name).
//
// # Core Metrics
//
// All core metrics use the namespace "firewatch":
//
//   - firewatch_component_status{component="..."}
//   - firewatch_errors_total{component="...",type="..."}
//   - firewatch_processing_duration_seconds{component="...",operation="..."}
//   - firewatch_stream_connected{channel="..."}
//   - firewatch_stream_reconnects_total{channel="..."}
//   - firewatch_stream_frames_received_total{channel="..."}
//   - firewatch_stream_frames_dropped_total{channel="...",reason="..."}
//   - firewatch_playback_playing
//   - firewatch_playback_cursor_ms
//
// # Thread Safety
//
// All registry operations are thread-safe: registration methods use mutex
// protection, and metric recording is lock-free (Prometheus guarantee).
package metric
