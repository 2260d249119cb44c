package prometheus

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// ContentType is the exposition content type scrapers expect from /metrics
const ContentType = "text/plain; version=0.0.4"

// UptimeFunc reports how long the process has been serving
type UptimeFunc func() time.Duration

// Collector holds the application metrics on a private registry so that
// /metrics exposes exactly the application families and nothing else.
type Collector struct {
	registry *prometheus.Registry
	requests atomic.Uint64
}

// NewCollector creates a collector; uptime is sampled on every scrape
func NewCollector(uptime UptimeFunc) (*Collector, error) {
	c := &Collector{
		registry: prometheus.NewRegistry(),
	}

	uptimeGauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime",
		},
		func() float64 { return uptime().Seconds() },
	)

	requestsCounter := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "app_requests_total",
			Help: "Total HTTP requests",
		},
		func() float64 { return float64(c.requests.Load()) },
	)

	for _, col := range []prometheus.Collector{uptimeGauge, requestsCounter} {
		if err := c.registry.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return c, nil
}

// IncRequests counts one handled request
func (c *Collector) IncRequests() {
	c.requests.Add(1)
}

// Requests returns the number of counted requests
func (c *Collector) Requests() uint64 {
	return c.requests.Load()
}

// WriteText renders all families in the text exposition format, one blank
// line between families.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	for i, mf := range families {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

// Render returns the exposition body
func (c *Collector) Render() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteText(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
