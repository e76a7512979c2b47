// Package turn resolves a chosen action: its consequences play one after
// another, each applied to the district registry and announced for a fixed
// window, followed by the optional after-turn consequence.
package turn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/district"
	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/sched"
	"github.com/samdwyer/cityhall/internal/telemetry"
)

// ErrTurnInProgress is returned when an action is resolved while another
// one is still playing.
var ErrTurnInProgress = errors.New("turn in progress")

// State is the sequencer state.
type State int

const (
	Idle State = iota
	Resolving
	AfterTurn
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Resolving:
		return "resolving"
	case AfterTurn:
		return "after_turn"
	default:
		return "unknown"
	}
}

// Presenter shows consequence text for the given window.
type Presenter interface {
	ShowConsequence(text string, window time.Duration)
}

// Listener is told when a turn has fully played out.
type Listener interface {
	TurnCompleted(action *gamedata.ActionDef)
}

// Sequencer plays the consequences of one action at a time.
type Sequencer struct {
	registry  *district.Registry
	opts      config.ActionOptions
	sched     *sched.Scheduler
	presenter Presenter
	listener  Listener
	log       zerolog.Logger
	tracer    trace.Tracer

	multiplier float64
	state      State
	action     *gamedata.ActionDef
	next       int
	pending    *sched.Task
	span       trace.Span
}

// New creates an idle sequencer.
func New(registry *district.Registry, opts config.ActionOptions, s *sched.Scheduler, presenter Presenter, listener Listener, log zerolog.Logger) *Sequencer {
	return &Sequencer{
		registry:   registry,
		opts:       opts,
		sched:      s,
		presenter:  presenter,
		listener:   listener,
		log:        log,
		tracer:     telemetry.Tracer("turn"),
		multiplier: 1,
	}
}

// SetMultiplier sets the factor applied to every consequence value.
func (q *Sequencer) SetMultiplier(m float64) {
	q.multiplier = m
}

// State returns the current sequencer state.
func (q *Sequencer) State() State {
	return q.state
}

// Action returns the action being resolved, nil when idle.
func (q *Sequencer) Action() *gamedata.ActionDef {
	return q.action
}

// SelectAction resolves actions[index].
func (q *Sequencer) SelectAction(ctx context.Context, actions []*gamedata.ActionDef, index int) error {
	if index < 0 || index >= len(actions) {
		err := fmt.Errorf("%w: action index %d out of range (%d actions)", district.ErrConfiguration, index, len(actions))
		q.log.Error().Err(err).Int("index", index).Msg("Action selection failed")
		return err
	}
	return q.Resolve(ctx, actions[index])
}

// Resolve starts playing the action's consequences. The first consequence
// is applied immediately; each following one waits for the previous
// window to elapse. Every target must be a known district, otherwise
// nothing is applied. Targets that were not drawn onto the map are skipped
// like disabled ones.
func (q *Sequencer) Resolve(ctx context.Context, action *gamedata.ActionDef) error {
	if q.state != Idle {
		q.log.Warn().Str("action", action.ID).Stringer("state", q.state).Msg("Turn already in progress")
		return ErrTurnInProgress
	}
	for _, target := range action.Targets() {
		if _, err := q.registry.Lookup(target); err != nil {
			q.log.Error().Err(err).Str("action", action.ID).Msg("Action aborted")
			return fmt.Errorf("action %s: %w", action.ID, err)
		}
	}

	_, q.span = q.tracer.Start(ctx, "turn.resolve")
	q.span.SetAttributes(
		attribute.String("action", action.ID),
		attribute.Int("consequences", len(action.Consequences)),
		attribute.Float64("multiplier", q.multiplier),
	)

	q.log.Info().Str("action", action.ID).Float64("multiplier", q.multiplier).Msg("Resolving action")
	q.state = Resolving
	q.action = action
	q.next = 0
	q.step()
	return nil
}

// step applies consequences until one is shown, then waits for its window.
func (q *Sequencer) step() {
	window := q.opts.TotalTurnTime()

	for q.next < len(q.action.Consequences) {
		c := q.action.Consequences[q.next]
		q.next++

		disabled, err := q.registry.IsDisabled(c.District)
		if err != nil || disabled {
			q.log.Debug().Str("district", c.District).Msg("Consequence skipped")
			continue
		}
		if err := q.registry.AddValue(c.District, c.Value*q.multiplier); err != nil {
			q.span.RecordError(err)
			q.log.Warn().Err(err).Str("district", c.District).Msg("Consequence not shown")
			continue
		}
		if q.state == Idle {
			return // cancelled by a listener
		}
		q.presenter.ShowConsequence(c.Description, window)
		q.pending = q.sched.After(window, q.step)
		return
	}

	q.afterTurn()
}

func (q *Sequencer) afterTurn() {
	if !q.opts.ConsequenceAllAfterTurn {
		q.finish()
		return
	}

	q.state = AfterTurn
	if err := q.registry.AddValueToAll(q.opts.ValueConsequenceAfterTurn * q.multiplier); err != nil {
		q.span.RecordError(err)
	}
	if q.state == Idle {
		return
	}
	q.presenter.ShowConsequence(q.opts.DescriptionConsequenceAfterTurn, q.opts.TotalTurnTime())
	q.pending = q.sched.After(q.opts.TotalTurnTime(), q.finish)
}

// Cancel drops the rest of the turn without reporting completion.
// Changes already applied stay applied.
func (q *Sequencer) Cancel() {
	if q.state == Idle {
		return
	}
	q.pending.Cancel()
	q.log.Debug().Str("action", q.action.ID).Msg("Turn cancelled")
	q.reset()
}

func (q *Sequencer) reset() {
	q.state = Idle
	q.action = nil
	q.pending = nil
	q.span.End()
}

func (q *Sequencer) finish() {
	action := q.action
	q.reset()

	q.log.Debug().Str("action", action.ID).Msg("Turn completed")
	if q.listener != nil {
		q.listener.TurnCompleted(action)
	}
}
