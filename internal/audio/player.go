// Package audio synthesizes and plays the game's sound effects.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// ErrUnknownSound is returned for a sound name with no clip.
var ErrUnknownSound = errors.New("unknown sound")

// Player plays one sound at a time, like a single audio source: starting a
// sound stops the previous one. Without a speaker it validates and logs
// but stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	log         zerolog.Logger
	initialized bool
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer(log zerolog.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, log: log}
}

// Init opens the speaker. Failure is not fatal; the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.log.Warn().Err(err).Msg("Audio unavailable, playing silently")
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// Duration resolves how long s plays: the turn time when the sound follows
// the turn, the configured duration, or else the clip's own length.
func Duration(s config.Sound, turnTime time.Duration) (time.Duration, error) {
	c, ok := clips[s.Name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSound, s.Name)
	}
	switch {
	case s.UseTurnDuration:
		return turnTime, nil
	case s.Duration > 0:
		return s.Duration, nil
	default:
		return c.length, nil
	}
}

// Stream builds the faded, volume-scaled stream for s.
func Stream(s config.Sound, turnTime time.Duration) (beep.Streamer, error) {
	d, err := Duration(s, turnTime)
	if err != nil {
		return nil, err
	}
	total := sampleRate.N(d)
	return newVolume(newFade(clips[s.Name].make(sampleRate, d), total), s.Volume), nil
}

// Play starts s, replacing whatever is playing.
func (p *Player) Play(s config.Sound, turnTime time.Duration) error {
	streamer, err := Stream(s, turnTime)
	if err != nil {
		p.log.Error().Err(err).Msg("Sound not played")
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return nil
	}

	speaker.Lock()
	p.mixer.Clear()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}
