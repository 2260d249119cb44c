// Package workload simulates request load for the /work endpoint.
//
// A job optionally spins the CPU for a fixed wall-clock budget and then
// waits for the requested delay. Both steps run on the calling goroutine and
// touch no shared state, so concurrent jobs never wait on each other.
package workload
