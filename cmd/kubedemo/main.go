package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aescanero/kubedemo/internal/application/probe"
	"github.com/aescanero/kubedemo/internal/application/workload"
	"github.com/aescanero/kubedemo/internal/config"
	"github.com/aescanero/kubedemo/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/kubedemo/pkg/api/grpc"
	"github.com/aescanero/kubedemo/pkg/api/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Captured before anything else so /ready measures from process start
	startedAt := time.Now()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting kubedemo",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.Duration("startup_delay", cfg.StartupDelay()))

	if err := run(cfg, startedAt, logger); err != nil {
		logger.Error("kubedemo stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("kubedemo shut down complete")
}

func run(cfg *config.Config, startedAt time.Time, logger *zap.Logger) error {
	monitor := probe.NewMonitor(startedAt, cfg.StartupDelay(), cfg.Probe.PollInterval, logger)

	metricsCollector, err := prometheus.NewCollector(monitor.Uptime)
	if err != nil {
		return fmt.Errorf("failed to create metrics collector: %w", err)
	}

	simulator := workload.NewSimulator(cfg.Work.CPUBurn, logger)

	httpServer := http.NewServer(&http.Config{
		Addr:      cfg.GetHTTPAddr(),
		Metrics:   metricsCollector,
		Monitor:   monitor,
		Simulator: simulator,
		Logger:    logger,
	})

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:   cfg.GetGRPCAddr(),
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create gRPC server: %w", err)
		}
		monitor.OnReady(grpcServer.SetReady)
	}

	monitor.Start()
	defer monitor.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(httpServer.Start)
	if grpcServer != nil {
		g.Go(grpcServer.Start)
	}

	logger.Info("kubedemo started",
		zap.Int("http_port", cfg.HTTPPort),
		zap.Int("grpc_port", cfg.GRPCPort))

	// Shut everything down on signal or when any listener fails
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if grpcServer != nil {
			if err := grpcServer.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	err = g.Wait()
	logger.Info("requests served", zap.Uint64("requests_total", metricsCollector.Requests()))
	return err
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
