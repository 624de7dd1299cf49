package tone

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/log"
)

const (
	bitDepth       = 16
	pcmAudioFormat = 1
)

// Recorder renders the buzzer state of every cycle into a mono WAV file.
// The samples are buffered in memory and written to disk on Close.
type Recorder struct {
	path            string
	logger          *log.Logger
	samplesPerCycle int

	osc    oscillator
	buffer []int
}

// NewRecorder returns a recorder for a machine that executes cycleRate
// cycles per second.
func NewRecorder(logger *log.Logger, path string, cycleRate int) *Recorder {
	return &Recorder{
		path:            path,
		logger:          logger,
		samplesPerCycle: max(SampleRate/cycleRate, 1),
		osc:             newOscillator(SampleRate, Frequency),
	}
}

// Sound appends the samples of one cycle.
func (r *Recorder) Sound(active bool) {
	for range r.samplesPerCycle {
		var v int16
		if active {
			v = r.osc.next()
		}
		r.buffer = append(r.buffer, int(v))
	}
}

// Samples returns the number of recorded samples.
func (r *Recorder) Samples() int {
	return len(r.buffer)
}

// Close writes the recorded samples to the WAV file.
func (r *Recorder) Close() (rerr error) {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("closing wav file: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, SampleRate, bitDepth, 1, pcmAudioFormat)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           r.buffer,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("encoding wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finishing wav file: %w", err)
	}

	r.logger.Info("Sound recorded", log.String("file", r.path), log.Int("samples", len(r.buffer)))
	return nil
}
