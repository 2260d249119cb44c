// Package grpc serves the standard grpc.health.v1 service so that gRPC
// liveness and readiness probes see the same startup window as /ready.
package grpc
