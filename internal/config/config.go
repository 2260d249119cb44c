package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all configuration for the demo service
type Config struct {
	// Server configuration
	HTTPPort int    `env:"HTTP_PORT" envDefault:"8080"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"0"` // 0 disables the gRPC health listener
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Readiness configuration
	Probe ProbeConfig

	// Simulated workload configuration
	Work WorkConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// ProbeConfig holds readiness probe configuration
type ProbeConfig struct {
	// StartupSeconds is how long /ready answers 503 after start
	StartupSeconds int           `env:"STARTUP_TIME" envDefault:"5"`
	PollInterval   time.Duration `env:"READY_POLL_INTERVAL" envDefault:"250ms"`
}

// WorkConfig holds /work configuration
type WorkConfig struct {
	CPUBurn time.Duration `env:"WORK_CPU_BURN" envDefault:"1s"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
	}

	if c.Probe.StartupSeconds < 0 {
		return fmt.Errorf("startup time must not be negative: %d", c.Probe.StartupSeconds)
	}
	if c.Probe.PollInterval <= 0 {
		return fmt.Errorf("ready poll interval must be positive")
	}

	if c.Work.CPUBurn < 0 {
		return fmt.Errorf("cpu burn duration must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// StartupDelay returns the readiness threshold as a duration
func (c *Config) StartupDelay() time.Duration {
	return time.Duration(c.Probe.StartupSeconds) * time.Second
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

// GRPCEnabled reports whether the gRPC health listener should run
func (c *Config) GRPCEnabled() bool {
	return c.GRPCPort > 0
}
