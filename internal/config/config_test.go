package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesStockTuning(t *testing.T) {
	opts := Default()

	assert.Equal(t, 25, opts.Game.DaysPerYear)
	assert.Equal(t, 10, opts.Game.LastDaysCount)
	assert.Equal(t, 2.0, opts.Game.LastDaysMultiplier)
	assert.Equal(t, 150.0, opts.Game.PopularityToLose)
	assert.Equal(t, 750.0, opts.Game.PopularityToWin)
	assert.Equal(t, 100.0, opts.District.MaxValue)
	assert.Equal(t, 9, opts.District.MapSize)
	assert.True(t, opts.District.AllUnique)
	assert.True(t, opts.District.DisableAtZero)
	assert.Equal(t, 3250*time.Millisecond, opts.Action.TotalTurnTime())
	require.NoError(t, opts.Validate())
}

func TestShakeTime(t *testing.T) {
	opts := Default()

	opts.District.ShakeDuration = ShakeSlide
	assert.Equal(t, opts.District.TotalSlideTime, opts.ShakeTime())

	opts.District.ShakeDuration = ShakeTurn
	assert.Equal(t, opts.Action.TotalTurnTime(), opts.ShakeTime())

	opts.District.ShakeDuration = ShakeFixed
	opts.District.FixedShakeDuration = 2 * time.Second
	assert.Equal(t, 2*time.Second, opts.ShakeTime())
}

func TestLoadOverlaysYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cityhall.yaml")
	content := `
seed: 42
game:
  days_per_year: 10
  last_days_count: 3
district:
  all_unique: false
  districts: [harbor, market]
  total_slide_time: 250ms
action:
  consequence_all_after_turn: true
  value_consequence_after_turn: -2
  description_consequence_after_turn: "Taxes are due"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 10, opts.Game.DaysPerYear)
	assert.Equal(t, 3, opts.Game.LastDaysCount)
	assert.False(t, opts.District.AllUnique)
	assert.Equal(t, []string{"harbor", "market"}, opts.District.Districts)
	assert.Equal(t, 250*time.Millisecond, opts.District.TotalSlideTime)
	assert.True(t, opts.Action.ConsequenceAllAfterTurn)
	assert.Equal(t, -2.0, opts.Action.ValueConsequenceAfterTurn)

	// Untouched keys keep their defaults
	assert.Equal(t, 750.0, opts.Game.PopularityToWin)
	assert.Equal(t, 3*time.Second, opts.Action.TimeToShowConsequence)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CITYHALL_SEED", "7")
	t.Setenv("CITYHALL_DAYS_PER_YEAR", "12")
	t.Setenv("CITYHALL_DISTRICTS", "harbor, market ,")
	t.Setenv("CITYHALL_RANDOM_ORDER", "true")
	t.Setenv("CITYHALL_MAP_SIZE", "12")
	t.Setenv("CITYHALL_LAST_DAYS_MULTIPLIER", "not-a-number")

	opts, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, 12, opts.Game.DaysPerYear)
	assert.Equal(t, []string{"harbor", "market"}, opts.District.Districts)
	assert.True(t, opts.District.RandomOrder)
	assert.Equal(t, 12, opts.District.MapSize)
	assert.Equal(t, 2.0, opts.Game.LastDaysMultiplier)
}

func TestValidateRejectsBrokenOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero days", func(o *Options) { o.Game.DaysPerYear = 0 }},
		{"last days beyond year", func(o *Options) { o.Game.LastDaysCount = 30 }},
		{"zero max value", func(o *Options) { o.District.MaxValue = 0 }},
		{"empty map", func(o *Options) { o.District.AllUnique = false; o.District.MapSize = 0 }},
		{"lose above win", func(o *Options) { o.Game.PopularityToLose = 800 }},
		{"unknown shake mode", func(o *Options) { o.District.ShakeDuration = "wobble" }},
		{"negative slide", func(o *Options) { o.District.TotalSlideTime = -time.Second }},
		{"slide longer than turn", func(o *Options) {
			o.Action.TimeToShowConsequence = 100 * time.Millisecond
			o.Action.TimeBetweenTurns = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Default()
			tt.mutate(&opts)
			assert.Error(t, opts.Validate())
		})
	}
}
