package ui

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone frequencies for aquarium events.
const (
	ToneFeed  = 880.0
	ToneDeath = 220.0
	ToneClash = 440.0
)

// Sound plays short sine chimes. A zero Sound is silent until Init succeeds.
type Sound struct {
	mu          sync.Mutex
	initialized bool
}

// Init opens the speaker. The viewer runs without sound when it fails.
func (s *Sound) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.initialized = true
	return nil
}

// Enabled reports whether chimes will be audible.
func (s *Sound) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Chime plays a sine tone of the given frequency without blocking.
func (s *Sound) Chime(freq float64, d time.Duration) {
	if !s.Enabled() {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Close stops playback.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	s.initialized = false
}
