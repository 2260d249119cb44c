// Package prometheus adapts the service counters to the Prometheus text
// exposition format.
package prometheus
