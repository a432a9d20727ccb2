// Command slabsight samples kernel memory-allocator counters and a target
// JVM's metaspace usage, correlates the two over time, and reports whether
// runtime object churn is leaking into kernel slab pressure.
//
// Usage:
//
//	slabsight <jvm-pid> [interval-seconds] [--debug] [--output file.csv]
//
// Sampling runs until interrupted; on SIGINT/SIGTERM the collected series
// is analyzed, reported, and exported to CSV.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/slabsight/slabsight/internal/collector"
	"github.com/slabsight/slabsight/internal/config"
	"github.com/slabsight/slabsight/internal/controller"
)

// version is set at build time via -ldflags.
var version = "dev"

// procRoot is the mount point of the proc pseudo-filesystem.
const procRoot = "/proc"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug      bool
		configPath string
		output     string
	)

	cmd := &cobra.Command{
		Use:     "slabsight <jvm-pid> [interval-seconds]",
		Short:   "Correlate JVM metaspace growth with kernel slab pressure",
		Args:    cobra.RangeArgs(1, 2),
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			pid, err := parsePid(args[0])
			if err != nil {
				return err
			}

			cli := config.CLIOverrides{
				Debug:   debug,
				CSVPath: output,
			}
			if len(args) == 2 {
				// Mirrors atoi semantics: a non-numeric or sub-second
				// interval silently falls back to the default.
				if secs, err := strconv.Atoi(args[1]); err == nil {
					cli.Interval = time.Duration(secs) * time.Second
				}
			}

			cfg, err := config.LoadLayered(cli, configPath)
			if err != nil {
				return err
			}

			logger := initLogger(cfg)
			defer logger.Sync()

			return run(pid, cfg, logger)
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Enable verbose diagnostic output")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to configuration file")
	cmd.Flags().StringVar(&output, "output", "", "CSV export path (default "+config.DefaultCSVPath+")")
	cmd.SilenceErrors = true
	return cmd
}

// parsePid validates the required positional target argument. An
// unparseable or non-positive pid is a usage error.
func parsePid(arg string) (int32, error) {
	pid, err := strconv.ParseInt(arg, 10, 32)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID: %s", arg)
	}
	return int32(pid), nil
}

// run validates the target process, wires the sources, and drives the
// controller until a shutdown signal arrives. Returning an error here makes
// the process exit 1; a signal-driven drain exits 0.
func run(pid int32, cfg *config.Config, logger *zap.Logger) error {
	exists, err := process.PidExists(pid)
	if err != nil {
		return fmt.Errorf("checking pid %d: %w", pid, err)
	}
	if !exists {
		return fmt.Errorf("no such process: %d", pid)
	}

	target := zap.Int32("pid", pid)
	if proc, err := process.NewProcess(pid); err == nil {
		if name, err := proc.Name(); err == nil {
			logger.Info("Target process", target, zap.String("name", name))
		}
	}

	logger.Info("Starting slabsight",
		zap.String("version", version),
		zap.Duration("interval", cfg.Collection.Interval.Duration),
		zap.String("output", cfg.Output.CSVPath))

	registry := collector.NewRegistry(logger)
	registry.Register(collector.NewSlabinfoSource(procRoot))
	registry.Register(collector.NewVmstatSource(procRoot))
	registry.Register(collector.NewBuddyinfoSource(procRoot))
	registry.Register(collector.NewMetaspaceSource(pid))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle OS signals for graceful shutdown. Repeated signals are
	// harmless: the controller drains exactly once.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("Received signal, generating report",
			zap.String("signal", sig.String()))
		cancel()
	}()

	ctrl := controller.New(registry, cfg, logger)
	if err := ctrl.Run(ctx); err != nil {
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}

// initLogger creates a zap logger from the configuration. It writes
// human-readable output to the console and, if configured, structured JSON
// to a log file.
func initLogger(cfg *config.Config) *zap.Logger {
	var level zapcore.Level
	switch cfg.Logging.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		level,
	)

	cores := []zapcore.Core{consoleCore}

	if cfg.Logging.File != "" {
		file, err := os.OpenFile(cfg.Logging.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
		if err == nil {
			fileCore := zapcore.NewCore(
				zapcore.NewJSONEncoder(encoderConfig),
				zapcore.AddSync(file),
				level,
			)
			cores = append(cores, fileCore)
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}
