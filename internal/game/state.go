// Package game wires a playable session together and runs the terminal loop.
package game

// State represents the current game state.
type State int

const (
	// StatePlaying waits for the player to pick a district or an action.
	StatePlaying State = iota
	// StateResolving plays the consequences of the chosen action.
	StateResolving
	// StateLost is reached when popularity falls to the lose threshold.
	StateLost
	// StateWon is reached when popularity climbs to the win threshold.
	StateWon
	// StateTimeUp is reached when the year runs out.
	StateTimeUp
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateResolving:
		return "resolving"
	case StateLost:
		return "lost"
	case StateWon:
		return "won"
	case StateTimeUp:
		return "time_up"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session is over.
func (s State) Terminal() bool {
	return s == StateLost || s == StateWon || s == StateTimeUp
}

// Title returns the end-of-game announcement, empty while playing.
func (s State) Title() string {
	switch s {
	case StateLost, StateTimeUp:
		return "Game Over"
	case StateWon:
		return "You Won"
	default:
		return ""
	}
}

// Subtitle explains the end of the game.
func (s State) Subtitle() string {
	switch s {
	case StateLost:
		return "The city has lost faith in its mayor."
	case StateWon:
		return "The city cheers for its mayor."
	case StateTimeUp:
		return "The year is over."
	default:
		return ""
	}
}
