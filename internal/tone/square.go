// Package tone generates the single tone of the CHIP-8 buzzer and records it
// to WAV files.
package tone

import (
	"encoding/binary"
	"sync/atomic"
)

// Default tone parameters.
const (
	SampleRate = 44100
	Frequency  = 440
	Volume     = 0x1000
)

// oscillator produces a square wave as signed 16 bit samples.
type oscillator struct {
	period int
	pos    int
}

func newOscillator(sampleRate, frequency int) oscillator {
	period := sampleRate / frequency
	if period < 2 {
		period = 2
	}
	return oscillator{period: period}
}

func (o *oscillator) next() int16 {
	v := int16(Volume)
	if o.pos >= o.period/2 {
		v = -Volume
	}
	o.pos = (o.pos + 1) % o.period
	return v
}

// Square is an endless stream of 16 bit little endian stereo PCM data that
// contains a square wave while it is active and silence otherwise.
// Sound may be called from a different goroutine than Read.
type Square struct {
	osc    oscillator
	active atomic.Bool
}

// NewSquare returns an inactive square wave stream.
func NewSquare(sampleRate, frequency int) *Square {
	return &Square{
		osc: newOscillator(sampleRate, frequency),
	}
}

// Sound switches the tone on or off.
func (s *Square) Sound(active bool) {
	s.active.Store(active)
}

// Read fills p with whole stereo frames.
func (s *Square) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	active := s.active.Load()
	for i := 0; i < n; i += 4 {
		var v int16
		if active {
			v = s.osc.next()
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
	}
	return n, nil
}
