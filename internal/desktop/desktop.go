// Package desktop implements a windowed front end with sound output.
package desktop

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/keypad"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/tone"
	"github.com/retroenv/retrogolib/log"
)

var (
	pixelOn  = [4]byte{0xE0, 0xE0, 0xE0, 0xFF}
	pixelOff = [4]byte{0x10, 0x10, 0x18, 0xFF}
)

var ebitenKeys = map[rune]ebiten.Key{
	'1': ebiten.Key1, '2': ebiten.Key2, '3': ebiten.Key3, '4': ebiten.Key4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

type keyBinding struct {
	key     ebiten.Key
	machine int
}

// Game is an ebiten.Game that runs the machine one cycle per tick.
// It is the runner.Frontend of the runner it drives.
type Game struct {
	ctx    context.Context
	logger *log.Logger
	runner *runner.Runner
	limit  int

	keys   []keyBinding
	image  *ebiten.Image
	pixels []byte
	dirty  bool

	square *tone.Square
	err    error
}

// Run opens the window and runs the machine until the window is closed, the
// escape key is pressed, the context is cancelled, the cycle limit is reached
// or a cycle fails.
func Run(ctx context.Context, logger *log.Logger, m *machine.Machine, opts options.Program, sinks ...runner.SoundSink) error {
	g := &Game{
		ctx:    ctx,
		logger: logger,
		limit:  opts.Cycles,
		keys:   keyTable(),
		pixels: make([]byte, machine.Width*machine.Height*4),
		dirty:  true,
		square: tone.NewSquare(tone.SampleRate, tone.Frequency),
	}
	g.present(m.FrameBuffer())

	runOpts := []runner.Option{runner.WithFrontend(g)}
	for _, sink := range sinks {
		runOpts = append(runOpts, runner.WithSoundSink(sink))
	}
	g.runner = runner.New(m, logger, runOpts...)

	if !opts.Mute {
		player, err := audio.NewContext(tone.SampleRate).NewPlayer(g.square)
		if err != nil {
			return fmt.Errorf("creating audio player: %w", err)
		}
		defer func() { _ = player.Close() }()
		player.Play()
	}

	ebiten.SetWindowSize(machine.Width*opts.Scale, machine.Height*opts.Scale)
	ebiten.SetWindowTitle("retrochip8 - " + filepath.Base(opts.Input))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.Rate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return g.err
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.limit > 0 && g.runner.Cycles() >= g.limit {
		g.logger.Debug("Cycle limit reached", log.Int("cycles", g.runner.Cycles()))
		return ebiten.Termination
	}
	if err := g.ctx.Err(); err != nil {
		g.err = err
		return ebiten.Termination
	}

	if err := g.runner.Cycle(); err != nil {
		g.err = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(machine.Width, machine.Height)
	}
	if g.dirty {
		g.image.WritePixels(g.pixels)
		g.dirty = false
	}
	screen.DrawImage(g.image, &ebiten.DrawImageOptions{})
}

// Layout implements ebiten.Game. The logical screen is the frame buffer,
// ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return machine.Width, machine.Height
}

// Poll implements runner.Frontend.
func (g *Game) Poll(m *machine.Machine) error {
	for _, binding := range g.keys {
		m.SetKey(binding.machine, ebiten.IsKeyPressed(binding.key))
	}
	return nil
}

// Present implements runner.Frontend.
func (g *Game) Present(fb *machine.FrameBuffer) error {
	g.present(fb)
	return nil
}

// Sound implements runner.Frontend.
func (g *Game) Sound(active bool) {
	g.square.Sound(active)
}

func (g *Game) present(fb *machine.FrameBuffer) {
	for row := range machine.Height {
		for col := range machine.Width {
			color := pixelOff
			if fb.Pixel(row, col) != 0 {
				color = pixelOn
			}
			copy(g.pixels[(row*machine.Width+col)*4:], color[:])
		}
	}
	g.dirty = true
}

func keyTable() []keyBinding {
	bindings := keypad.Bindings()
	keys := make([]keyBinding, 0, len(bindings))
	for _, b := range bindings {
		keys = append(keys, keyBinding{key: ebitenKeys[b.Char], machine: b.Key})
	}
	return keys
}
