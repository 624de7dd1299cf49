// Package runner drives a CHIP-8 machine at a fixed cycle rate and connects
// it to a front end that supplies key state and presents frames and sound.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// ErrQuit is returned by a front end when the user asked to quit.
var ErrQuit = errors.New("quit requested")

// Frontend connects the machine to the user.
type Frontend interface {
	// Poll updates the key state of the machine before a cycle is executed.
	Poll(m *machine.Machine) error
	// Present shows the frame buffer after a cycle requested a redraw.
	Present(fb *machine.FrameBuffer) error
	// Sound reports after every cycle whether the sound timer is active.
	Sound(active bool)
}

// SoundSink receives the sound state after every cycle.
type SoundSink interface {
	Sound(active bool)
}

// Runner executes machine cycles.
type Runner struct {
	machine  *machine.Machine
	frontend Frontend
	sinks    []SoundSink
	logger   *log.Logger

	rate   int
	limit  int
	cycles int
}

// Option configures a runner.
type Option func(*Runner)

// WithFrontend sets the front end. Without one the runner is headless.
func WithFrontend(frontend Frontend) Option {
	return func(r *Runner) {
		r.frontend = frontend
	}
}

// WithSoundSink adds a receiver of the per cycle sound state.
func WithSoundSink(sink SoundSink) Option {
	return func(r *Runner) {
		r.sinks = append(r.sinks, sink)
	}
}

// WithRate sets the number of cycles per second executed by Run.
func WithRate(rate int) Option {
	return func(r *Runner) {
		if rate > 0 {
			r.rate = rate
		}
	}
}

// WithCycleLimit stops Run after the given number of cycles, 0 disables
// the limit.
func WithCycleLimit(limit int) Option {
	return func(r *Runner) {
		r.limit = limit
	}
}

// New returns a runner for the given machine.
func New(m *machine.Machine, logger *log.Logger, opts ...Option) *Runner {
	r := &Runner{
		machine:  m,
		frontend: headless{},
		logger:   logger,
		rate:     60,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cycles paced by a ticker at the configured rate until the
// context is cancelled, the cycle limit is reached or a cycle fails.
// A cancelled context returns the context error, a front end quit request
// returns ErrQuit.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval())
	defer ticker.Stop()

	r.logger.Debug("Starting machine", log.Int("rate", r.rate), log.Int("limit", r.limit))

	for r.limit == 0 || r.cycles < r.limit {
		select {
		case <-ctx.Done():
			return fmt.Errorf("stopped after %d cycles: %w", r.cycles, ctx.Err())
		case <-ticker.C:
		}

		if err := r.Cycle(); err != nil {
			return err
		}
	}

	r.logger.Debug("Cycle limit reached", log.Int("cycles", r.cycles))
	return nil
}

// interval returns the ticker period for the rate, at least 1ns.
func (r *Runner) interval() time.Duration {
	return max(time.Second/time.Duration(r.rate), time.Nanosecond)
}

// RunCycles executes n cycles without pacing.
func (r *Runner) RunCycles(n int) error {
	for range n {
		if err := r.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Cycle executes a single machine cycle and notifies the front end and
// sound sinks.
func (r *Runner) Cycle() error {
	if err := r.frontend.Poll(r.machine); err != nil {
		return fmt.Errorf("polling input: %w", err)
	}

	if err := r.machine.Step(); err != nil {
		return fmt.Errorf("cycle %d: %w", r.cycles, err)
	}
	r.cycles++

	if r.machine.RedrawPending() {
		if err := r.frontend.Present(r.machine.FrameBuffer()); err != nil {
			return fmt.Errorf("presenting frame: %w", err)
		}
	}

	active := r.machine.SoundTimer() > 0
	r.frontend.Sound(active)
	for _, sink := range r.sinks {
		sink.Sound(active)
	}
	return nil
}

// Cycles returns the number of successfully executed cycles.
func (r *Runner) Cycles() int {
	return r.cycles
}

// headless is the front end used when none is configured.
type headless struct{}

func (headless) Poll(*machine.Machine) error        { return nil }
func (headless) Present(*machine.FrameBuffer) error { return nil }
func (headless) Sound(bool)                         {}
