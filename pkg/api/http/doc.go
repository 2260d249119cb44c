// Package http provides the HTTP endpoints of the demo service.
//
// The HTTP server exposes:
//   - GET /         greeting, counted
//   - GET /health   liveness probe
//   - GET /ready    readiness probe, 503 during the startup window
//   - GET /work     simulated load, counted
//   - GET /metrics  Prometheus text exposition
package http
