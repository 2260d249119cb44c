package workload

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestParseRequest(t *testing.T) {
	cases := []struct {
		name   string
		delay  string
		cpu    string
		hasCPU bool
		want   Request
	}{
		{"defaults", "", "", false, Request{Delay: 0, CPU: "low"}},
		{"fraction", "0.5", "low", true, Request{Delay: 0.5, CPU: "low"}},
		{"integer", "2", "high", true, Request{Delay: 2, CPU: "high"}},
		{"exponent", "1e-1", "high", true, Request{Delay: 0.1, CPU: "high"}},
		{"spaces", " 1.5 ", "high", true, Request{Delay: 1.5, CPU: "high"}},
		{"garbage delay", "abc", "high", true, Request{Delay: 0, CPU: "high"}},
		{"negative delay", "-3", "low", true, Request{Delay: 0, CPU: "low"}},
		{"nan delay", "NaN", "low", true, Request{Delay: 0, CPU: "low"}},
		{"inf delay", "+Inf", "low", true, Request{Delay: 0, CPU: "low"}},
		{"unknown cpu echoed", "", "medium", true, Request{Delay: 0, CPU: "medium"}},
		{"empty cpu present", "", "", true, Request{Delay: 0, CPU: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseRequest(tc.delay, tc.cpu, tc.hasCPU)
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRunLowIsFast(t *testing.T) {
	s := NewSimulator(time.Second, zap.NewNop())
	start := time.Now()
	res := s.Run(context.Background(), Request{CPU: CPULow})
	if el := time.Since(start); el > 200*time.Millisecond {
		t.Fatalf("low cpu job took %v", el)
	}
	if res.Status != "work done" || res.CPU != "low" || res.Delay != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunUnknownCPUDoesNotBurn(t *testing.T) {
	s := NewSimulator(time.Second, zap.NewNop())
	start := time.Now()
	s.Run(context.Background(), Request{CPU: "HIGH"})
	if el := time.Since(start); el > 200*time.Millisecond {
		t.Fatalf("only exact \"high\" should burn, took %v", el)
	}
}

func TestRunHighBurns(t *testing.T) {
	s := NewSimulator(200*time.Millisecond, zap.NewNop())
	start := time.Now()
	res := s.Run(context.Background(), Request{CPU: CPUHigh})
	if el := time.Since(start); el < 200*time.Millisecond {
		t.Fatalf("high cpu job returned after %v", el)
	}
	if res.CPU != "high" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunDelay(t *testing.T) {
	s := NewSimulator(time.Second, zap.NewNop())
	start := time.Now()
	res := s.Run(context.Background(), Request{Delay: 0.2, CPU: CPULow})
	if el := time.Since(start); el < 200*time.Millisecond {
		t.Fatalf("delay not honoured, took %v", el)
	}
	if res.Delay != 0.2 {
		t.Fatalf("delay not echoed: %+v", res)
	}
}

func TestRunDelayCancelled(t *testing.T) {
	s := NewSimulator(time.Second, zap.NewNop())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	res := s.Run(ctx, Request{Delay: 10, CPU: CPULow})
	if el := time.Since(start); el > 2*time.Second {
		t.Fatalf("cancelled job kept waiting for %v", el)
	}
	if res.Status != "work done" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestConcurrentBurnsDoNotSerialize(t *testing.T) {
	s := NewSimulator(300*time.Millisecond, zap.NewNop())

	var wg sync.WaitGroup
	start := time.Now()
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Run(context.Background(), Request{CPU: CPUHigh})
		}()
	}
	wg.Wait()

	// Serialized execution would need 1.2s; the burns are wall-clock bound.
	if el := time.Since(start); el > time.Second {
		t.Fatalf("burns appear serialized: %v", el)
	}
}

func TestSecondsToDurationSaturates(t *testing.T) {
	if d := secondsToDuration(1e300); d <= 0 {
		t.Fatalf("expected saturation, got %v", d)
	}
	if d := secondsToDuration(0.5); d != 500*time.Millisecond {
		t.Fatalf("got %v", d)
	}
}
