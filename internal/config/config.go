// Package config holds the tunable game options and loads them from YAML
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Options is the full set of game options, loaded once at session start.
type Options struct {
	Seed     int64           `yaml:"seed"` // 0 picks a time-based seed
	Game     GameOptions     `yaml:"game"`
	District DistrictOptions `yaml:"district"`
	Action   ActionOptions   `yaml:"action"`
}

// GameOptions controls the calendar, popularity thresholds and sounds.
type GameOptions struct {
	DaysPerYear        int     `yaml:"days_per_year"`
	LastDaysCount      int     `yaml:"last_days_count"`
	LastDaysMultiplier float64 `yaml:"last_days_multiplier"`

	PopularityToLose float64 `yaml:"popularity_to_lose"`
	PopularityToWin  float64 `yaml:"popularity_to_win"`

	ClickSound Sound `yaml:"click_sound"`
	CheerSound Sound `yaml:"cheer_sound"`
	BooSound   Sound `yaml:"boo_sound"`
}

// Sound describes how a named sound is played.
// A zero Duration plays the whole clip.
type Sound struct {
	Name            string        `yaml:"name"`
	Volume          float64       `yaml:"volume"`
	UseTurnDuration bool          `yaml:"use_turn_duration"`
	Duration        time.Duration `yaml:"duration"`
}

// ShakeMode selects how long a district shakes after a value change.
type ShakeMode string

const (
	ShakeTurn  ShakeMode = "turn"
	ShakeSlide ShakeMode = "slide"
	ShakeFixed ShakeMode = "fixed"
)

// DistrictOptions controls district selection and value behavior.
type DistrictOptions struct {
	AllUnique   bool     `yaml:"all_unique"`
	RandomOrder bool     `yaml:"random_order"`
	Districts   []string `yaml:"districts"` // district ids; empty means the whole catalog
	MapSize     int      `yaml:"map_size"`  // slots filled when AllUnique is off

	MaxValue        float64       `yaml:"max_value"`
	LowValueWarning float64       `yaml:"low_value_warning"`
	TotalSlideTime  time.Duration `yaml:"total_slide_time"`
	DisableAtZero   bool          `yaml:"disable_at_zero"`

	ShakeEnabled       bool          `yaml:"shake_enabled"`
	ShakeDuration      ShakeMode     `yaml:"shake_duration"`
	FixedShakeDuration time.Duration `yaml:"fixed_shake_duration"`
	ShakeMagnitude     float64       `yaml:"shake_magnitude"`
}

// ActionOptions controls how consequences are shown and the after-turn effect.
type ActionOptions struct {
	ShowDistrictsAffected bool          `yaml:"show_districts_affected"`
	TimeToShowConsequence time.Duration `yaml:"time_to_show_consequence"`
	TimeBetweenTurns      time.Duration `yaml:"time_between_turns"`

	ConsequenceAllAfterTurn         bool    `yaml:"consequence_all_after_turn"`
	ValueConsequenceAfterTurn       float64 `yaml:"value_consequence_after_turn"`
	DescriptionConsequenceAfterTurn string  `yaml:"description_consequence_after_turn"`
}

// Default returns the stock options.
func Default() Options {
	return Options{
		Game: GameOptions{
			DaysPerYear:        25,
			LastDaysCount:      10,
			LastDaysMultiplier: 2,
			PopularityToLose:   150,
			PopularityToWin:    750,
			ClickSound:         Sound{Name: "click", Volume: 0.6},
			CheerSound:         Sound{Name: "cheer", Volume: 0.8, UseTurnDuration: true},
			BooSound:           Sound{Name: "boo", Volume: 0.8, UseTurnDuration: true},
		},
		District: DistrictOptions{
			AllUnique:          true,
			RandomOrder:        false,
			MapSize:            9,
			MaxValue:           100,
			LowValueWarning:    25,
			TotalSlideTime:     500 * time.Millisecond,
			DisableAtZero:      true,
			ShakeEnabled:       true,
			ShakeDuration:      ShakeSlide,
			FixedShakeDuration: 0,
			ShakeMagnitude:     1,
		},
		Action: ActionOptions{
			ShowDistrictsAffected: true,
			TimeToShowConsequence: 3 * time.Second,
			TimeBetweenTurns:      250 * time.Millisecond,
		},
	}
}

// TotalTurnTime is how long one consequence stays on screen, gap included.
func (a ActionOptions) TotalTurnTime() time.Duration {
	return a.TimeToShowConsequence + a.TimeBetweenTurns
}

// ShakeTime returns the shake duration for the configured mode.
func (o Options) ShakeTime() time.Duration {
	switch o.District.ShakeDuration {
	case ShakeTurn:
		return o.Action.TotalTurnTime()
	case ShakeFixed:
		return o.District.FixedShakeDuration
	default:
		return o.District.TotalSlideTime
	}
}

// Load returns the defaults overlaid with the YAML file at path (if any)
// and then with environment overrides.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return opts, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(content, &opts); err != nil {
			return opts, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
		}
	}

	ApplyEnv(&opts)

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks option values that would make the game unplayable.
func (o Options) Validate() error {
	var errs []error
	if o.Game.DaysPerYear <= 0 {
		errs = append(errs, fmt.Errorf("days_per_year must be positive, got %d", o.Game.DaysPerYear))
	}
	if o.Game.LastDaysCount < 0 || o.Game.LastDaysCount > o.Game.DaysPerYear {
		errs = append(errs, fmt.Errorf("last_days_count must be within [0, %d], got %d", o.Game.DaysPerYear, o.Game.LastDaysCount))
	}
	if !o.District.AllUnique && o.District.MapSize <= 0 {
		errs = append(errs, fmt.Errorf("map_size must be positive, got %d", o.District.MapSize))
	}
	if o.District.MaxValue <= 0 {
		errs = append(errs, fmt.Errorf("max_value must be positive, got %v", o.District.MaxValue))
	}
	if o.Game.PopularityToLose >= o.Game.PopularityToWin {
		errs = append(errs, fmt.Errorf("popularity_to_lose (%v) must be below popularity_to_win (%v)",
			o.Game.PopularityToLose, o.Game.PopularityToWin))
	}
	switch o.District.ShakeDuration {
	case ShakeTurn, ShakeSlide, ShakeFixed:
	default:
		errs = append(errs, fmt.Errorf("unknown shake_duration %q", o.District.ShakeDuration))
	}
	if o.District.TotalSlideTime < 0 || o.Action.TimeToShowConsequence < 0 || o.Action.TimeBetweenTurns < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if o.District.TotalSlideTime > o.Action.TotalTurnTime() {
		errs = append(errs, fmt.Errorf("total_slide_time (%v) must not exceed time_to_show_consequence + time_between_turns (%v)",
			o.District.TotalSlideTime, o.Action.TotalTurnTime()))
	}
	return errors.Join(errs...)
}
