package game

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/gamedata"
)

// SoundPlayer plays a configured sound. turnTime is the full consequence
// window, used by sounds that follow the turn.
type SoundPlayer interface {
	Play(s config.Sound, turnTime time.Duration) error
}

// Config holds what a session is built from.
type Config struct {
	Options config.Options
	Catalog *gamedata.Catalog

	// Sounds may be nil for a silent session.
	Sounds SoundPlayer
	Log    zerolog.Logger
}
