package tui

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tones played when a ring is shown and hidden
const (
	ShownTone  = 880.0
	HiddenTone = 587.3
)

// Chime plays short tones. A nil Chime is silent.
type Chime struct {
	volume float64
}

// NewChime opens the speaker
func NewChime() (*Chime, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &Chime{volume: -2}, nil
}

// Play plays a 60ms tone at freq Hz
func (c *Chime) Play(freq float64) {
	if c == nil {
		return
	}
	tone := beep.Take(sampleRate.N(60*time.Millisecond), newToneGenerator(sampleRate, freq))
	speaker.Play(&effects.Volume{Streamer: tone, Base: 2, Volume: c.volume})
}

// Close releases the speaker
func (c *Chime) Close() {
	if c == nil {
		return
	}
	speaker.Close()
}

// toneGenerator is a sine that fades out over its first 60ms
type toneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func newToneGenerator(sr beep.SampleRate, freq float64) *toneGenerator {
	return &toneGenerator{sr: sr, freq: freq}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	fade := float64(g.sr.N(60 * time.Millisecond))
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		amplitude := 0.3 * math.Max(0, 1-float64(g.pos)/fade)
		sample := amplitude * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
