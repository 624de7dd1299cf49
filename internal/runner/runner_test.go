package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type recordingFrontend struct {
	polls    int
	presents int
	sounds   []bool
	pressed  int
	quit     bool
}

func (f *recordingFrontend) Poll(m *machine.Machine) error {
	f.polls++
	if f.quit {
		return ErrQuit
	}
	if f.pressed >= 0 {
		m.SetKey(f.pressed, true)
	}
	return nil
}

func (f *recordingFrontend) Present(*machine.FrameBuffer) error {
	f.presents++
	return nil
}

func (f *recordingFrontend) Sound(active bool) {
	f.sounds = append(f.sounds, active)
}

type countingSink struct {
	active int
}

func (s *countingSink) Sound(active bool) {
	if active {
		s.active++
	}
}

func newMachine(t *testing.T, program ...byte) *machine.Machine {
	t.Helper()
	m := machine.New(machine.WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, m.Load(program))
	return m
}

func TestRunCycles(t *testing.T) {
	m := newMachine(t,
		0x60, 0x02, // V0 = 2
		0xF0, 0x18, // ST = V0
		0xD0, 0x01, // draw 1 row
		0x12, 0x06, // jump to self
	)
	frontend := &recordingFrontend{pressed: -1}
	sink := &countingSink{}
	r := New(m, log.NewTestLogger(t), WithFrontend(frontend), WithSoundSink(sink))

	assert.NoError(t, r.RunCycles(5))

	assert.Equal(t, 5, r.Cycles())
	assert.Equal(t, 5, frontend.polls)
	assert.Equal(t, 1, frontend.presents)
	assert.Equal(t, []bool{false, true, true, false, false}, frontend.sounds)
	assert.Equal(t, 2, sink.active)
}

func TestRunCycles_PollFeedsKeys(t *testing.T) {
	m := newMachine(t,
		0xF3, 0x0A, // V3 = wait for key
		0x12, 0x02, // jump to self
	)
	frontend := &recordingFrontend{pressed: 0xB}
	r := New(m, log.NewTestLogger(t), WithFrontend(frontend))

	assert.NoError(t, r.RunCycles(2))
	assert.Equal(t, byte(0xB), m.V(3))
	assert.Equal(t, uint16(0x202), m.PC())
}

func TestRunCycles_Error(t *testing.T) {
	m := newMachine(t,
		0x60, 0x01, // V0 = 1
		0xFF, 0xFF, // unsupported
	)
	r := New(m, log.NewTestLogger(t))

	err := r.RunCycles(10)
	assert.True(t, errors.Is(err, machine.ErrUnsupportedOpcode))
	assert.ErrorContains(t, err, "cycle 1")
	assert.Equal(t, 1, r.Cycles())
}

func TestRun_CycleLimit(t *testing.T) {
	m := newMachine(t, 0x12, 0x00) // jump to self
	r := New(m, log.NewTestLogger(t), WithRate(1000), WithCycleLimit(5))

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 5, r.Cycles())
}

func TestRun_Cancelled(t *testing.T) {
	m := newMachine(t, 0x12, 0x00)
	r := New(m, log.NewTestLogger(t), WithRate(1000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_StopsOnError(t *testing.T) {
	m := newMachine(t, 0x00, 0xEE) // return without call
	r := New(m, log.NewTestLogger(t), WithRate(1000))

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, machine.ErrStackPointerOutOfRange))
	assert.Equal(t, 0, r.Cycles())
}

func TestRun_RateAboveTickerResolution(t *testing.T) {
	m := newMachine(t, 0x12, 0x00)
	r := New(m, log.NewTestLogger(t), WithRate(2_000_000_000), WithCycleLimit(3))

	assert.Equal(t, time.Nanosecond, r.interval())
	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 3, r.Cycles())
}

func TestWithRate_IgnoresInvalid(t *testing.T) {
	r := New(machine.New(), log.NewTestLogger(t), WithRate(0))
	assert.Equal(t, 60, r.rate)
}

func TestRun_Quit(t *testing.T) {
	m := newMachine(t, 0x12, 0x00)
	frontend := &recordingFrontend{pressed: -1, quit: true}
	r := New(m, log.NewTestLogger(t), WithFrontend(frontend), WithRate(1000))

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, ErrQuit))
	assert.Equal(t, 0, r.Cycles())
	assert.Equal(t, uint16(0x200), m.PC())
}
