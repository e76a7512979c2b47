package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cityhall/internal/calendar"
	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/district"
	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/popularity"
	"github.com/samdwyer/cityhall/internal/sched"
	"github.com/samdwyer/cityhall/internal/telemetry"
	"github.com/samdwyer/cityhall/internal/turn"
)

// ErrNotAllowed is returned for input that the current state does not accept.
var ErrNotAllowed = errors.New("not allowed now")

const dayEmphasis = time.Second

// Session is one run of the game: the map, its popularity, the calendar and
// the turn in progress. It is driven from a single goroutine.
type Session struct {
	id      string
	ctx     context.Context
	tracer  trace.Tracer
	opts    config.Options
	catalog *gamedata.Catalog
	sounds  SoundPlayer
	log     zerolog.Logger

	sched     *sched.Scheduler
	registry  *district.Registry
	sequencer *turn.Sequencer
	calendar  *calendar.Counter
	pop       *popularity.Aggregator

	state    State
	selected int // map slot, -1 when none
	actions  []*gamedata.ActionDef
	enabled  bool
	focused  int
	tints    []turn.Tint

	consequence      string
	consequenceUntil time.Duration
	dayEmphasisUntil time.Duration
	turns            int
}

// NewSession validates the catalog, selects the map and sets up every
// component. The session keeps ctx as parent for its spans.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	s := &Session{
		id:       uuid.NewString(),
		ctx:      ctx,
		tracer:   tracer,
		opts:     cfg.Options,
		catalog:  cfg.Catalog,
		sounds:   cfg.Sounds,
		sched:    sched.New(),
		selected: -1,
	}
	s.log = cfg.Log.With().Str("session", s.id).Logger()

	pool, err := cfg.Catalog.Pool(cfg.Options.District.Districts)
	if err != nil {
		err = fmt.Errorf("%w: %v", district.ErrConfiguration, err)
		s.log.Error().Err(err).Msg("District pool invalid")
		span.RecordError(err)
		return nil, err
	}
	issues := gamedata.Validate(cfg.Catalog, pool)
	for _, issue := range issues {
		ev := s.log.Warn()
		if issue.Severity == gamedata.SeverityError {
			ev = s.log.Error()
		}
		ev.Str("severity", issue.Severity.String()).Msg(issue.Message)
	}
	if gamedata.HasErrors(issues) {
		err := fmt.Errorf("%w: game data has errors", district.ErrConfiguration)
		span.RecordError(err)
		return nil, err
	}

	seed := cfg.Options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	defs, err := district.Select(pool, cfg.Options.District.MapSize, district.SelectOptions{
		AllUnique:   cfg.Options.District.AllUnique,
		RandomOrder: cfg.Options.District.RandomOrder,
	}, rng, s.log)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.registry = district.NewRegistry(defs, cfg.Options, s.sched, s, s.log)
	s.registry.SetPool(pool)
	s.sequencer = turn.New(s.registry, cfg.Options.Action, s.sched, s, s, s.log)
	s.calendar = calendar.New(cfg.Options.Game)
	s.applyMultiplier()
	s.pop = popularity.New(cfg.Options, s.sched, s, s.log)
	s.pop.Setup(s.registry.TotalValue())

	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.Int64("seed", seed),
		attribute.Int("districts", s.registry.Len()),
		attribute.Float64("popularity", s.pop.Value()),
	)
	s.log.Info().Int64("seed", seed).Int("districts", s.registry.Len()).Msg("Session started")
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// State returns the current game state.
func (s *Session) State() State { return s.state }

// Now returns the session's game time.
func (s *Session) Now() time.Duration { return s.sched.Now() }

// Districts returns the runtime districts in map order.
func (s *Session) Districts() []*district.District { return s.registry.Districts() }

// Popularity returns the popularity aggregator.
func (s *Session) Popularity() *popularity.Aggregator { return s.pop }

// Calendar returns the day counter.
func (s *Session) Calendar() *calendar.Counter { return s.calendar }

// Selected returns the selected map slot, or -1.
func (s *Session) Selected() int { return s.selected }

// Actions returns the actions of the selected district.
func (s *Session) Actions() []*gamedata.ActionDef { return s.actions }

// ActionsEnabled reports whether an action can be chosen.
func (s *Session) ActionsEnabled() bool {
	return s.state == StatePlaying && s.enabled && len(s.actions) > 0
}

// DistrictsSelectable reports whether a district can be picked.
func (s *Session) DistrictsSelectable() bool { return s.state == StatePlaying }

// Focused returns the focused action index.
func (s *Session) Focused() int { return s.focused }

// Tints returns the preview tints of the focused action.
func (s *Session) Tints() []turn.Tint { return s.tints }

// Consequence returns the consequence text on screen, empty once its time is up.
func (s *Session) Consequence() string {
	if s.sched.Now() >= s.consequenceUntil {
		return ""
	}
	return s.consequence
}

// DayEmphasis reports whether the day label is highlighted after a new day.
func (s *Session) DayEmphasis() bool { return s.sched.Now() < s.dayEmphasisUntil }

// Tick advances game time.
func (s *Session) Tick(dt time.Duration) { s.sched.Tick(dt) }

// SelectDistrict picks the district in map slot index and shows its actions.
func (s *Session) SelectDistrict(index int) error {
	if !s.DistrictsSelectable() {
		return fmt.Errorf("%w: districts are not selectable while %s", ErrNotAllowed, s.state)
	}
	d := s.registry.At(index)
	if d == nil {
		err := fmt.Errorf("%w: district slot %d out of range", district.ErrConfiguration, index)
		s.log.Error().Err(err).Msg("District selection failed")
		return err
	}
	if d.IsDisabled() {
		return fmt.Errorf("%w: district %s is closed", ErrNotAllowed, d.ID())
	}

	s.play(s.opts.Game.ClickSound)
	s.selected = index
	s.actions = s.catalog.ActionsFor(d.Def())
	s.enabled = true
	s.FocusAction(0)
	s.log.Debug().Str("district", d.ID()).Int("actions", len(s.actions)).Msg("District selected")
	return nil
}

// FocusAction previews the action at index on the map.
func (s *Session) FocusAction(index int) {
	if index < 0 || index >= len(s.actions) {
		s.tints = nil
		return
	}
	s.focused = index
	s.tints = s.sequencer.Preview(s.actions[index])
}

// SelectAction resolves the selected district's action at index.
func (s *Session) SelectAction(index int) error {
	if !s.ActionsEnabled() {
		return fmt.Errorf("%w: no action can be chosen while %s", ErrNotAllowed, s.state)
	}

	s.play(s.opts.Game.ClickSound)
	s.state = StateResolving
	s.enabled = false
	s.tints = nil
	if err := s.sequencer.SelectAction(s.ctx, s.actions, index); err != nil {
		s.state = StatePlaying
		s.enabled = true
		return err
	}
	return nil
}

func (s *Session) play(sound config.Sound) {
	if s.sounds == nil {
		return
	}
	if err := s.sounds.Play(sound, s.opts.Action.TotalTurnTime()); err != nil {
		s.log.Warn().Err(err).Str("sound", sound.Name).Msg("Sound failed")
	}
}

func (s *Session) applyMultiplier() {
	m := s.calendar.Multiplier()
	s.registry.SetMultiplier(m)
	s.sequencer.SetMultiplier(m)
}

// ValueChanging mirrors every district change into the popularity.
func (s *Session) ValueChanging(d *district.District, delta, amount float64, slide time.Duration) {
	if amount > 0 {
		s.play(s.opts.Game.CheerSound)
	} else if amount < 0 {
		s.play(s.opts.Game.BooSound)
	}
	s.pop.Add(delta, slide)
}

// DistrictDisabled logs the closing of a district.
func (s *Session) DistrictDisabled(d *district.District) {
	s.log.Info().Str("district", d.ID()).Int("slot", d.Index()).Msg("District closed")
}

// ShowConsequence puts the consequence text on screen for its show time.
func (s *Session) ShowConsequence(text string, window time.Duration) {
	s.consequence = text
	s.consequenceUntil = s.sched.Now() + s.opts.Action.TimeToShowConsequence
}

// TurnCompleted advances the day and unlocks the map.
func (s *Session) TurnCompleted(action *gamedata.ActionDef) {
	if s.state.Terminal() {
		return
	}
	s.turns++

	_, span := s.tracer.Start(s.ctx, "day.advance")
	result := s.calendar.Advance()
	span.SetAttributes(
		attribute.String("action", action.ID),
		attribute.Int("day", s.calendar.Day()),
		attribute.String("result", result.String()),
		attribute.Float64("multiplier", s.calendar.Multiplier()),
	)
	span.End()

	s.dayEmphasisUntil = s.sched.Now() + dayEmphasis
	s.log.Info().Str("action", action.ID).Str("day", s.calendar.Label()).Stringer("result", result).Msg("Day passed")

	if result == calendar.TimeUp {
		s.end(StateTimeUp)
		return
	}
	s.applyMultiplier()

	s.state = StatePlaying
	if d := s.registry.At(s.selected); d != nil && !d.IsDisabled() {
		s.enabled = true
		s.FocusAction(s.focused)
	} else {
		s.selected = -1
		s.actions = nil
		s.tints = nil
	}
}

// PopularityDecided ends the game as won or lost.
func (s *Session) PopularityDecided(o popularity.Outcome) {
	switch o {
	case popularity.Lost:
		s.end(StateLost)
	case popularity.Won:
		s.end(StateWon)
	}
}

func (s *Session) end(state State) {
	if s.state.Terminal() {
		return
	}
	s.state = state
	s.sequencer.Cancel()
	s.actions = nil
	s.tints = nil
	s.selected = -1

	_, span := s.tracer.Start(s.ctx, "game.end")
	span.SetAttributes(
		attribute.String("session.id", s.id),
		attribute.String("outcome", state.String()),
		attribute.Int("day", s.calendar.Day()),
		attribute.Int("turns", s.turns),
		attribute.Float64("popularity", s.pop.Value()),
	)
	span.End()

	s.log.Info().Stringer("outcome", state).Int("turns", s.turns).Float64("popularity", s.pop.Value()).Msg("Game ended")
}
