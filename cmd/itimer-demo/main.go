// Command itimer-demo exercises a speed-adjustable interval timer
// against the real OS facility.
//
// The demo arms one of the three per-process interval timers, counts
// the expiration signals it delivers, optionally changes the speed
// factor halfway through the run, and prints a summary. Signal
// registration happens here, in client code - the itimer package never
// touches signal handling.
//
// Usage:
//
//	itimer-demo [flags]
//
// Flags:
//
//	-kind string      Timer kind: wall, user-cpu, total-cpu (default "wall")
//	-interval float   Timer interval in seconds (default 2.0)
//	-value float      Time until first expiration in seconds (default: interval)
//	-speed float      Initial speed factor (default 1.0)
//	-rescale float    Speed factor applied halfway through the run (0 = none)
//	-duration float   Run duration in seconds (default 10.0)
//	-busy             Burn CPU in the background (needed for the CPU kinds)
//	-config string    YAML configuration file path
//	-trace string     Trace file path (CBOR event log)
//	-log-level string Log level: debug, info, warn, error (default "info")
//	-version          Print version info and exit
//
// Examples:
//
//	# Five expirations in ten seconds
//	itimer-demo -interval 2 -value 1 -duration 10
//
//	# Double the timer speed after half the run
//	itimer-demo -interval 1 -rescale 2.0 -duration 6
//
//	# Profile-clock timer with CPU load and a trace file
//	itimer-demo -kind total-cpu -busy -trace demo.tlog
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NikolasK-source/go-itimer/pkg/itimer"
	"github.com/NikolasK-source/go-itimer/pkg/timeval"
	"github.com/NikolasK-source/go-itimer/pkg/trace"
	"github.com/NikolasK-source/go-itimer/pkg/version"
)

// Config holds the demo configuration.
type Config struct {
	Kind     string  `yaml:"kind"`
	Interval float64 `yaml:"interval"`
	Value    float64 `yaml:"value"`
	Speed    float64 `yaml:"speed"`
	Rescale  float64 `yaml:"rescale"`
	Duration float64 `yaml:"duration"`
	Busy     bool    `yaml:"busy"`
	Trace    string  `yaml:"trace"`
	LogLevel string  `yaml:"log_level"`
}

func main() {
	var (
		configFile   string
		printVersion bool
	)
	config := Config{
		Kind:     "wall",
		Interval: 2.0,
		Speed:    1.0,
		Duration: 10.0,
		LogLevel: "info",
	}

	flag.StringVar(&config.Kind, "kind", config.Kind, "Timer kind: wall, user-cpu, total-cpu")
	flag.Float64Var(&config.Interval, "interval", config.Interval, "Timer interval in seconds")
	flag.Float64Var(&config.Value, "value", 0, "Time until first expiration in seconds (default: interval)")
	flag.Float64Var(&config.Speed, "speed", config.Speed, "Initial speed factor")
	flag.Float64Var(&config.Rescale, "rescale", 0, "Speed factor applied halfway through the run (0 = none)")
	flag.Float64Var(&config.Duration, "duration", config.Duration, "Run duration in seconds")
	flag.BoolVar(&config.Busy, "busy", false, "Burn CPU in the background (needed for the CPU kinds)")
	flag.StringVar(&configFile, "config", "", "YAML configuration file path")
	flag.StringVar(&config.Trace, "trace", "", "Trace file path (CBOR event log)")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level: debug, info, warn, error")
	flag.BoolVar(&printVersion, "version", false, "Print version info and exit")
	flag.Parse()

	if printVersion {
		fmt.Println(version.Info())
		return
	}

	if configFile != "" {
		if err := loadConfigFile(configFile, &config); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config file: %v\n", err)
			os.Exit(1)
		}
		// Flags set explicitly on the command line win over the file
		applyFlagOverrides(&config)
	}

	logger := newLogger(config.LogLevel)

	if err := run(config, logger); err != nil {
		logger.Error("demo failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// loadConfigFile reads a YAML config file into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyFlagOverrides re-applies every flag that was set explicitly on
// the command line, so the file cannot shadow it.
func applyFlagOverrides(cfg *Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kind":
			cfg.Kind = f.Value.String()
		case "interval":
			fmt.Sscanf(f.Value.String(), "%g", &cfg.Interval)
		case "value":
			fmt.Sscanf(f.Value.String(), "%g", &cfg.Value)
		case "speed":
			fmt.Sscanf(f.Value.String(), "%g", &cfg.Speed)
		case "rescale":
			fmt.Sscanf(f.Value.String(), "%g", &cfg.Rescale)
		case "duration":
			fmt.Sscanf(f.Value.String(), "%g", &cfg.Duration)
		case "busy":
			cfg.Busy = f.Value.String() == "true"
		case "trace":
			cfg.Trace = f.Value.String()
		case "log-level":
			cfg.LogLevel = f.Value.String()
		}
	})
}

// newLogger builds a text slog logger at the requested level.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// kindFromName maps a config name to a timer kind and its signal.
func kindFromName(name string) (itimer.Kind, os.Signal, error) {
	switch name {
	case "wall":
		return itimer.WallClock, syscall.SIGALRM, nil
	case "user-cpu":
		return itimer.UserCPU, syscall.SIGVTALRM, nil
	case "total-cpu":
		return itimer.TotalCPU, syscall.SIGPROF, nil
	default:
		return 0, nil, fmt.Errorf("unknown timer kind %q", name)
	}
}

func run(config Config, logger *slog.Logger) error {
	kind, sig, err := kindFromName(config.Kind)
	if err != nil {
		return err
	}

	tracer := trace.Tracer(trace.NoopTracer{})
	if config.Trace != "" {
		ft, err := trace.NewFileTracer(config.Trace)
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		defer ft.Close()
		tracer = trace.NewMultiTracer(ft, trace.NewSlogTracer(logger))
	}

	value := config.Value
	if value == 0 {
		value = config.Interval
	}

	timer, err := itimer.NewWithConfig(itimer.Config{
		Kind:     kind,
		Interval: timeval.FromSeconds(config.Interval),
		Value:    timeval.FromSeconds(value),
		Logger:   logger,
		Tracer:   tracer,
	})
	if err != nil {
		return err
	}
	defer timer.Close()

	if config.Speed != 1.0 {
		if err := timer.SetSpeedFactor(config.Speed); err != nil {
			return err
		}
	}

	// Expiration delivery is the client's job
	sigCh := make(chan os.Signal, 16)
	signal.Notify(sigCh, sig)
	defer signal.Stop(sigCh)

	if config.Busy {
		stop := make(chan struct{})
		defer close(stop)
		go burnCPU(stop)
	}

	logger.Info("starting timer",
		slog.String("kind", kind.String()),
		slog.Float64("interval_s", config.Interval),
		slog.Float64("value_s", value),
		slog.Float64("speed", config.Speed),
	)

	if err := timer.Start(); err != nil {
		return err
	}

	runFor := time.Duration(config.Duration * float64(time.Second))
	end := time.After(runFor)

	var rescaleAt <-chan time.Time
	if config.Rescale != 0 {
		rescaleAt = time.After(runFor / 2)
	}

	expirations := 0
	for {
		select {
		case <-sigCh:
			expirations++
			logger.Debug("timer expired", slog.Int("count", expirations))

		case <-rescaleAt:
			rescaleAt = nil
			logger.Info("changing speed factor", slog.Float64("factor", config.Rescale))
			if err := timer.SetSpeedFactor(config.Rescale); err != nil {
				return err
			}

		case <-end:
			if err := timer.Stop(); err != nil {
				return err
			}
			remaining, err := timer.Value()
			if err != nil {
				return err
			}
			logger.Info("run finished",
				slog.Int("expirations", expirations),
				slog.String("remaining", remaining.String()),
			)
			fmt.Printf("%d expirations in %.1fs, %s remaining until the next one\n",
				expirations, config.Duration, remaining)
			return nil
		}
	}
}

// burnCPU keeps one core busy so the CPU-time clocks advance.
func burnCPU(stop <-chan struct{}) {
	x := 0
	for {
		select {
		case <-stop:
			return
		default:
			x++
		}
	}
}
