package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// sounds plays short cues for cleared words and game over. Without an audio
// device every method is a no-op.
type sounds struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	ready bool
}

func newSounds() *sounds { return &sounds{mixer: &beep.Mixer{}} }

// init opens the speaker. A failure leaves the client silent.
func (s *sounds) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.ready = true
	return nil
}

func (s *sounds) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	s.mixer.Clear()
	speaker.Close()
	s.ready = false
}

// wordCleared plays a rising chirp, one step higher per extra word.
func (s *sounds) wordCleared(n int) {
	s.play(120*time.Millisecond, &tone{freq: 660 + 110*float64(min(n, 4)-1), sweep: 1.5})
}

// gameOver plays a low falling tone.
func (s *sounds) gameOver() {
	s.play(400*time.Millisecond, &tone{freq: 220, sweep: -0.5})
}

func (s *sounds) play(d time.Duration, t *tone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	t.sr = sampleRate
	t.total = sampleRate.N(d)
	speaker.Lock()
	s.mixer.Add(beep.Take(t.total, t))
	speaker.Unlock()
}

// tone is a sine wave whose frequency moves by sweep×freq over its length,
// with a short linear fade at both ends.
type tone struct {
	sr    beep.SampleRate
	freq  float64
	sweep float64
	total int
	pos   int
	phase float64
}

func (t *tone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		progress := 0.0
		if t.total > 0 {
			progress = float64(t.pos) / float64(t.total)
		}
		f := t.freq * (1 + t.sweep*progress)
		t.phase += 2 * math.Pi * f / float64(t.sr)

		fade := math.Min(1, math.Min(progress, 1-progress)*20)
		v := 0.15 * fade * math.Sin(t.phase)
		samples[i][0], samples[i][1] = v, v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
