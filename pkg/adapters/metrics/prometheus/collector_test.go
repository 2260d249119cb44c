package prometheus

import (
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedUptime(d time.Duration) UptimeFunc {
	return func() time.Duration { return d }
}

func TestRenderFamilies(t *testing.T) {
	c, err := NewCollector(fixedUptime(90 * time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.IncRequests()
	c.IncRequests()
	c.IncRequests()

	body, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(body)

	for _, want := range []string{
		"# HELP app_uptime_seconds Application uptime\n",
		"# TYPE app_uptime_seconds gauge\n",
		"app_uptime_seconds 90\n",
		"# HELP app_requests_total Total HTTP requests\n",
		"# TYPE app_requests_total counter\n",
		"app_requests_total 3\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	if n := strings.Count(text, "# TYPE "); n != 2 {
		t.Fatalf("expected exactly two families, got %d:\n%s", n, text)
	}
}

func TestUptimeSampledPerScrape(t *testing.T) {
	var mu sync.Mutex
	up := time.Second
	c, err := NewCollector(func() time.Duration {
		mu.Lock()
		defer mu.Unlock()
		return up
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	up = 2500 * time.Millisecond
	mu.Unlock()

	body, err := c.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if v := sampleValue(t, string(body), "app_uptime_seconds"); v != 2.5 {
		t.Fatalf("expected 2.5, got %v", v)
	}
}

func TestConcurrentIncrements(t *testing.T) {
	c, err := NewCollector(fixedUptime(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const n = 1000
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IncRequests()
		}()
	}
	wg.Wait()

	if got := c.Requests(); got != n {
		t.Fatalf("lost increments: got %d want %d", got, n)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	a, err := NewCollector(fixedUptime(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := NewCollector(fixedUptime(0))
	if err != nil {
		t.Fatalf("second collector must not clash with the first: %v", err)
	}
	a.IncRequests()
	if b.Requests() != 0 {
		t.Fatalf("collectors share state")
	}
}

// sampleValue returns the value of an unlabelled sample line
func sampleValue(t *testing.T, text, name string) float64 {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, name+" ") {
			v, err := strconv.ParseFloat(strings.TrimPrefix(line, name+" "), 64)
			if err != nil {
				t.Fatalf("bad sample %q: %v", line, err)
			}
			return v
		}
	}
	t.Fatalf("sample %s not found in:\n%s", name, text)
	return 0
}
