/*
Package monitoring provides Prometheus metrics for launch attempts and the
status HTTP surface.

# Features

- Launch outcomes by failure kind
- Per-stage latency histograms
- Native files extracted and asset objects materialized
- Status server request metrics
- Uptime

# Usage

	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	metrics.LaunchStarted()
	timer := monitoring.NewTimer(metrics, "resolving_libraries")
	// ... perform stage ...
	timer.Stop()
	metrics.LaunchFinished(monitoring.OutcomeSuccess, "")

# Metrics Endpoint

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

All methods used by the launch pipeline are safe on a nil *Metrics.
*/
package monitoring
