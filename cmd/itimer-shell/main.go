// Command itimer-shell is an interactive console for driving an
// interval timer by hand.
//
// It wires up one timer of the requested kind, registers the matching
// expiration signal, and offers commands to start, stop, rescale,
// persist and restore the timer while watching expirations arrive on
// the prompt.
//
// Usage:
//
//	itimer-shell [flags]
//
// Flags:
//
//	-kind string      Timer kind: wall, user-cpu, total-cpu (default "wall")
//	-interval float   Initial timer interval in seconds (default 2.0)
//	-trace string     Trace file path (CBOR event log)
//	-version          Print version info and exit
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"

	"github.com/NikolasK-source/go-itimer/pkg/itimer"
	"github.com/NikolasK-source/go-itimer/pkg/persist"
	"github.com/NikolasK-source/go-itimer/pkg/timeval"
	"github.com/NikolasK-source/go-itimer/pkg/trace"
	"github.com/NikolasK-source/go-itimer/pkg/version"
)

// Shell holds the interactive console state.
type Shell struct {
	timer *itimer.Timer
	rl    *readline.Instance

	expirations int
	sigCh       chan os.Signal
	done        chan struct{}
}

func main() {
	var (
		kindName     string
		interval     float64
		traceFile    string
		printVersion bool
	)
	flag.StringVar(&kindName, "kind", "wall", "Timer kind: wall, user-cpu, total-cpu")
	flag.Float64Var(&interval, "interval", 2.0, "Initial timer interval in seconds")
	flag.StringVar(&traceFile, "trace", "", "Trace file path (CBOR event log)")
	flag.BoolVar(&printVersion, "version", false, "Print version info and exit")
	flag.Parse()

	if printVersion {
		fmt.Println(version.Info())
		return
	}

	if err := run(kindName, interval, traceFile); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(kindName string, interval float64, traceFile string) error {
	var kind itimer.Kind
	var sig os.Signal
	switch kindName {
	case "wall":
		kind, sig = itimer.WallClock, syscall.SIGALRM
	case "user-cpu":
		kind, sig = itimer.UserCPU, syscall.SIGVTALRM
	case "total-cpu":
		kind, sig = itimer.TotalCPU, syscall.SIGPROF
	default:
		return fmt.Errorf("unknown timer kind %q", kindName)
	}

	tracer := trace.Tracer(trace.NoopTracer{})
	if traceFile != "" {
		ft, err := trace.NewFileTracer(traceFile)
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		defer ft.Close()
		tracer = ft
	}

	timer, err := itimer.NewWithConfig(itimer.Config{
		Kind:     kind,
		Interval: timeval.FromSeconds(interval),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Tracer:   tracer,
	})
	if err != nil {
		return err
	}
	defer timer.Close()

	sh, err := newShell(timer)
	if err != nil {
		return err
	}

	signal.Notify(sh.sigCh, sig)
	defer signal.Stop(sh.sigCh)
	go sh.watchExpirations()

	sh.Run()
	return nil
}

// newShell creates the interactive console around an existing timer.
func newShell(timer *itimer.Timer) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "itimer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		timer: timer,
		rl:    rl,
		sigCh: make(chan os.Signal, 16),
		done:  make(chan struct{}),
	}, nil
}

// watchExpirations counts expiration signals and announces them on the
// prompt without clobbering pending input.
func (s *Shell) watchExpirations() {
	for {
		select {
		case <-s.sigCh:
			s.expirations++
			fmt.Fprintf(s.rl.Stdout(), "[expiration #%d]\n", s.expirations)
		case <-s.done:
			return
		}
	}
}

// Run starts the interactive command loop.
func (s *Shell) Run() {
	defer s.rl.Close()
	defer close(s.done)

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "start":
			s.report(s.timer.Start())

		case "stop":
			s.report(s.timer.Stop())

		case "speed":
			s.cmdSpeed(args)

		case "normal":
			s.report(s.timer.SetSpeedToNormal())

		case "set":
			s.cmdSet(args)

		case "value", "v":
			s.cmdValue()

		case "status":
			s.cmdStatus()

		case "save":
			s.cmdSave(args)

		case "load":
			s.cmdLoad(args)

		case "snapshot":
			s.cmdSnapshot(args)

		case "restore":
			s.cmdRestore(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

// report prints either an error or "ok" for commands without output.
func (s *Shell) report(err error) {
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "ok")
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
Timer Commands:
  Control:
    start                  - Arm the timer
    stop                   - Disarm the timer, keep the remaining value
    speed <factor>         - Set the speed factor (> 0, rescales live)
    normal                 - Reset the speed factor to 1.0
    set <interval> [value] - Set interval and value in seconds (stopped only)

  Inspection:
    value                  - Show time remaining until the next expiration
    status                 - Show kind, state, interval, value and speed

  Persistence:
    save <file>            - Write the raw timer record
    load <file>            - Read a raw timer record (stopped only)
    snapshot <file>        - Write a JSON snapshot
    restore <file>         - Read a JSON snapshot (stopped only)

  General:
    help                   - Show this help
    quit                   - Exit`)
}

func (s *Shell) cmdSpeed(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: speed <factor>")
		return
	}
	factor, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "invalid factor: %v\n", err)
		return
	}
	s.report(s.timer.SetSpeedFactor(factor))
}

func (s *Shell) cmdSet(args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(s.rl.Stdout(), "usage: set <interval> [value]")
		return
	}
	interval, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "invalid interval: %v\n", err)
		return
	}
	if len(args) == 1 {
		s.report(s.timer.SetInterval(timeval.FromSeconds(interval)))
		return
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "invalid value: %v\n", err)
		return
	}
	s.report(s.timer.SetIntervalValue(timeval.FromSeconds(interval), timeval.FromSeconds(value)))
}

func (s *Shell) cmdValue() {
	v, err := s.timer.Value()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "value: %s\n", v)
}

func (s *Shell) cmdStatus() {
	state := "stopped"
	if s.timer.IsRunning() {
		state = "running"
	}
	v, err := s.timer.Value()
	value := "-"
	if err == nil {
		value = v.String()
	}
	fmt.Fprintf(s.rl.Stdout(), "kind:        %s\n", s.timer.Kind())
	fmt.Fprintf(s.rl.Stdout(), "state:       %s\n", state)
	fmt.Fprintf(s.rl.Stdout(), "interval:    %s\n", s.timer.Interval())
	fmt.Fprintf(s.rl.Stdout(), "value:       %s\n", value)
	fmt.Fprintf(s.rl.Stdout(), "speed:       %g\n", s.timer.SpeedFactor())
	fmt.Fprintf(s.rl.Stdout(), "expirations: %d\n", s.expirations)
}

func (s *Shell) cmdSave(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: save <file>")
		return
	}
	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	defer f.Close()
	s.report(s.timer.Save(f))
}

func (s *Shell) cmdLoad(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: load <file>")
		return
	}
	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	defer f.Close()
	s.report(s.timer.Load(f))
}

func (s *Shell) cmdSnapshot(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: snapshot <file>")
		return
	}
	snap, err := s.timer.Snapshot()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	s.report(persist.NewStore(args[0]).Save(snap))
}

func (s *Shell) cmdRestore(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.rl.Stdout(), "usage: restore <file>")
		return
	}
	snap, err := persist.NewStore(args[0]).Load()
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "error: %v\n", err)
		return
	}
	if snap == nil {
		fmt.Fprintf(s.rl.Stdout(), "no snapshot at %s\n", args[0])
		return
	}
	s.report(s.timer.Restore(snap))
}
