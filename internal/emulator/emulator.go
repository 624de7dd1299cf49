// Package emulator handles loading a ROM and running it with the selected
// front end.
package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrochip8/internal/tone"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// WindowFunc runs the machine in a desktop window until the window is
// closed.
type WindowFunc func(ctx context.Context, logger *log.Logger, m *machine.Machine,
	opts options.Program, sinks ...runner.SoundSink) error

// Run handles the complete emulation workflow: loading the ROM, running it
// with the selected front end and writing the requested output files.
// A quit request of the user is not an error.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, window WindowFunc) (rerr error) {
	program, err := loader.New().Load(opts)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	m := machine.New(config.MachineOptions(logger, opts.Flags)...)
	if err := m.Load(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}
	printInfo(logger, opts, len(program))

	var sinks []runner.SoundSink
	if opts.Wav != "" {
		recorder := tone.NewRecorder(logger, opts.Wav, opts.Rate)
		sinks = append(sinks, recorder)
		defer func() {
			if err := recorder.Close(); err != nil {
				rerr = errors.Join(rerr, fmt.Errorf("writing sound recording: %w", err))
			}
		}()
	}

	switch {
	case opts.Headless:
		err = runHeadless(os.Stdout, logger, m, opts, sinks)
	case opts.Terminal:
		err = runTerminal(ctx, logger, m, opts, sinks)
	default:
		err = window(ctx, logger, m, opts, sinks...)
	}

	if errors.Is(err, runner.ErrQuit) {
		logger.Info("Stopped by user")
		return nil
	}
	return err
}

// runHeadless runs the configured number of cycles without pacing and
// prints the final frame buffer and machine state.
func runHeadless(w io.Writer, logger *log.Logger, m *machine.Machine, opts options.Program, sinks []runner.SoundSink) error {
	r := runner.New(m, logger, soundSinks(sinks)...)
	runErr := r.RunCycles(opts.Cycles)

	if _, err := fmt.Fprintf(w, "%s\n%s", m.FrameBuffer(), m); err != nil {
		return fmt.Errorf("writing machine state: %w", err)
	}
	if opts.Memviz != "" {
		if err := writeMemviz(opts.Memviz, m); err != nil {
			return err
		}
		logger.Info("Machine state graph written", log.String("file", opts.Memviz))
	}

	if runErr != nil {
		return fmt.Errorf("running headless: %w", runErr)
	}
	logger.Info("Headless run finished", log.Int("cycles", r.Cycles()))
	return nil
}

func runTerminal(ctx context.Context, logger *log.Logger, m *machine.Machine, opts options.Program, sinks []runner.SoundSink) (rerr error) {
	term, err := terminal.Open(opts.KeyHold)
	if err != nil {
		return fmt.Errorf("opening terminal front end: %w", err)
	}
	defer func() {
		if err := term.Close(); err != nil {
			rerr = errors.Join(rerr, err)
		}
	}()

	runOpts := append(soundSinks(sinks),
		runner.WithFrontend(term),
		runner.WithRate(opts.Rate),
		runner.WithCycleLimit(opts.Cycles),
	)
	return runner.New(m, logger, runOpts...).Run(ctx)
}

func writeMemviz(path string, m *machine.Machine) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating memviz file %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing memviz file %s: %w", path, err)
		}
	}()

	memviz.Map(f, newMachineState(m))
	return nil
}

// machineState is the part of the machine state rendered by memviz.
type machineState struct {
	PC          uint16
	I           uint16
	V           [machine.RegisterCount]byte
	Stack       []uint16
	DelayTimer  byte
	SoundTimer  byte
	FrameBuffer *machine.FrameBuffer
}

func newMachineState(m *machine.Machine) *machineState {
	state := &machineState{
		PC:          m.PC(),
		I:           m.I(),
		DelayTimer:  m.DelayTimer(),
		SoundTimer:  m.SoundTimer(),
		FrameBuffer: m.FrameBuffer(),
	}
	for x := range machine.RegisterCount {
		state.V[x] = m.V(x)
	}
	for slot := 0; slot <= m.SP(); slot++ {
		state.Stack = append(state.Stack, m.StackEntry(slot))
	}
	return state
}

func soundSinks(sinks []runner.SoundSink) []runner.Option {
	opts := make([]runner.Option, 0, len(sinks))
	for _, sink := range sinks {
		opts = append(opts, runner.WithSoundSink(sink))
	}
	return opts
}

func printInfo(logger *log.Logger, opts options.Program, size int) {
	if opts.Quiet {
		return
	}

	mode := "desktop"
	switch {
	case opts.Headless:
		mode = "headless"
	case opts.Terminal:
		mode = "terminal"
	}
	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.String("mode", mode),
		log.Int("rate", opts.Rate),
	)
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
