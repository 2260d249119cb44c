package probe

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Monitor owns the process start time and the readiness threshold
type Monitor struct {
	startedAt    time.Time
	startupDelay time.Duration
	interval     time.Duration
	logger       *zap.Logger

	mu      sync.Mutex
	running bool
	fired   bool
	hooks   []func()
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Status is a snapshot of the readiness state
type Status struct {
	StartedAt    time.Time
	Uptime       time.Duration
	StartupDelay time.Duration
	Ready        bool
	ReadyAt      time.Time
}

// NewMonitor creates a monitor whose clock starts at startedAt
func NewMonitor(startedAt time.Time, startupDelay, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		startedAt:    startedAt,
		startupDelay: startupDelay,
		interval:     interval,
		logger:       logger,
	}
}

// Uptime returns the time elapsed since start
func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.startedAt)
}

// Ready reports whether the startup window has elapsed.
// Once true it stays true for the life of the process.
func (m *Monitor) Ready() bool {
	return m.Uptime() >= m.startupDelay
}

// GetStatus returns the current readiness snapshot
func (m *Monitor) GetStatus() *Status {
	uptime := m.Uptime()
	return &Status{
		StartedAt:    m.startedAt,
		Uptime:       uptime,
		StartupDelay: m.startupDelay,
		Ready:        uptime >= m.startupDelay,
		ReadyAt:      m.startedAt.Add(m.startupDelay),
	}
}

// OnReady registers fn to run once the startup window closes.
// If the monitor has already observed readiness, fn runs immediately.
func (m *Monitor) OnReady(fn func()) {
	m.mu.Lock()
	if m.fired {
		m.mu.Unlock()
		fn()
		return
	}
	m.hooks = append(m.hooks, fn)
	m.mu.Unlock()
}

// Start starts the readiness watcher
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	m.doneCh = make(chan struct{})
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	go m.run(stopCh, doneCh)
}

// Stop stops the readiness watcher and waits for it to exit
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	stopCh, doneCh := m.stopCh, m.doneCh
	m.mu.Unlock()

	close(stopCh)
	<-doneCh
}

// run is the watcher loop; it exits after the hooks fire or on Stop
func (m *Monitor) run(stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	if m.check() {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if m.check() {
				return
			}
		}
	}
}

// check fires the hooks the first time the monitor is ready
func (m *Monitor) check() bool {
	if !m.Ready() {
		return false
	}

	m.mu.Lock()
	if m.fired {
		m.mu.Unlock()
		return true
	}
	m.fired = true
	hooks := m.hooks
	m.hooks = nil
	m.mu.Unlock()

	st := m.GetStatus()
	m.logger.Info("startup window elapsed, service is ready",
		zap.Duration("startup_delay", st.StartupDelay),
		zap.Duration("uptime", st.Uptime),
		zap.Time("started_at", st.StartedAt),
		zap.Time("ready_at", st.ReadyAt))

	for _, fn := range hooks {
		fn()
	}
	return true
}
