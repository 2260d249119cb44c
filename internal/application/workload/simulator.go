package workload

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// CPU load levels accepted by the simulator. Anything other than CPUHigh is
// treated as low.
const (
	CPULow  = "low"
	CPUHigh = "high"
)

// Request describes one simulated job
type Request struct {
	// Delay is the requested wait in seconds, never negative
	Delay float64
	// CPU is the load level as supplied by the caller
	CPU string
}

// Result is returned after a job completes
type Result struct {
	Status string  `json:"status"`
	Delay  float64 `json:"delay"`
	CPU    string  `json:"cpu"`
}

// ParseRequest builds a Request from raw query values.
// Unparseable, non-finite and negative delays become 0; an empty cpu
// becomes CPULow.
func ParseRequest(delayRaw, cpuRaw string, hasCPU bool) Request {
	cpu := cpuRaw
	if !hasCPU {
		cpu = CPULow
	}
	return Request{
		Delay: parseDelay(delayRaw),
		CPU:   cpu,
	}
}

func parseDelay(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Simulator executes simulated jobs
type Simulator struct {
	cpuBurn time.Duration
	logger  *zap.Logger
}

// NewSimulator creates a simulator that spins for cpuBurn on high load
func NewSimulator(cpuBurn time.Duration, logger *zap.Logger) *Simulator {
	return &Simulator{
		cpuBurn: cpuBurn,
		logger:  logger,
	}
}

// Run executes the job: CPU burn first, then the delay.
// The delay is cut short only when ctx is cancelled; the result is still
// returned so the caller can decide whether anyone is listening.
func (s *Simulator) Run(ctx context.Context, req Request) Result {
	start := time.Now()

	if req.CPU == CPUHigh {
		spins := burn(s.cpuBurn)
		s.logger.Debug("cpu burn finished",
			zap.Duration("budget", s.cpuBurn),
			zap.Uint64("spins", spins))
	}

	if req.Delay > 0 {
		if err := sleep(ctx, secondsToDuration(req.Delay)); err != nil {
			s.logger.Debug("work delay interrupted",
				zap.Float64("delay", req.Delay),
				zap.Error(err))
		}
	}

	s.logger.Debug("work done",
		zap.String("cpu", req.CPU),
		zap.Float64("delay", req.Delay),
		zap.Duration("elapsed", time.Since(start)))

	return Result{
		Status: "work done",
		Delay:  req.Delay,
		CPU:    req.CPU,
	}
}

// burn spins until d has elapsed on the wall clock
func burn(d time.Duration) uint64 {
	var spins uint64
	end := time.Now().Add(d)
	for time.Now().Before(end) {
		spins++
	}
	return spins
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// secondsToDuration converts fractional seconds, saturating at the largest
// representable duration.
func secondsToDuration(sec float64) time.Duration {
	if sec >= math.MaxInt64/float64(time.Second) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(sec * float64(time.Second))
}
