// Package feedback provides the audible "pop" fired on every confetti
// dispense, built on beep.
package feedback

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// SampleRate is the rate pops are generated and played at.
	SampleRate = beep.SampleRate(48000)

	popDuration = 120 * time.Millisecond
	popDecay    = 30.0 // per second
	popVolume   = 0.6
)

// pop is white noise under an exponential decay, tuned to sound like a
// party popper.
type pop struct {
	rng      *rand.Rand
	position int
	total    int
	rate     beep.SampleRate
}

// Pop returns a fresh pop sound at rate.
func Pop(rate beep.SampleRate) beep.Streamer {
	return &pop{
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		total: rate.N(popDuration),
		rate:  rate,
	}
}

func (p *pop) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if p.position >= p.total {
			return i, i > 0
		}
		t := float64(p.position) / float64(p.rate)
		v := (p.rng.Float64()*2 - 1) * math.Exp(-popDecay*t)
		samples[i][0] = v
		samples[i][1] = v
		p.position++
	}
	return len(samples), true
}

func (p *pop) Err() error { return nil }

// withVolume scales s by a linear volume in (0, 1]; 0 or less is silent.
// math.Log2(0) is -Inf, so zero is handled by Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Speaker plays a pop on every Impact. It implements confetti.Feedback.
type Speaker struct {
	play   func(...beep.Streamer)
	volume float64
	log    zerolog.Logger
}

// NewSpeaker initializes the audio device and returns a Speaker.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}
	return newSpeaker(speaker.Play), nil
}

func newSpeaker(play func(...beep.Streamer)) *Speaker {
	return &Speaker{
		play:   play,
		volume: popVolume,
		log:    log.With().Str("component", "feedback").Logger(),
	}
}

// SetVolume sets the linear pop volume; 0 mutes.
func (s *Speaker) SetVolume(v float64) {
	s.volume = v
}

// Impact plays one pop. Overlapping pops mix.
func (s *Speaker) Impact() {
	if s.volume <= 0 {
		return
	}
	s.play(withVolume(Pop(SampleRate), s.volume))
	s.log.Debug().Msg("impact")
}

// Close stops all playing sounds and releases the device.
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
