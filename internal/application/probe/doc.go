// Package probe tracks process start time and the startup window that
// gates the readiness probe.
//
// The monitor answers Ready() as a pure function of elapsed time. A
// background watcher notices the moment the window closes, logs it once and
// runs the registered hooks (the gRPC health server uses one to flip to
// SERVING).
package probe
