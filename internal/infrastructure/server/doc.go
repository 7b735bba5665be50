// Package server exposes running launch attempts over a small read-only
// HTTP surface built on gin.
//
// Routes:
//   - GET /health        liveness plus a metrics snapshot
//   - GET /status        every tracked attempt
//   - GET /status/:id    one attempt's progress
//   - GET /metrics       Prometheus exposition
package server
