// Package popularity tracks the city's running popularity and decides when
// it crosses the lose or win threshold.
package popularity

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/sched"
)

// scaleFactor is the number of full districts the bar is drawn against.
const scaleFactor = 9

// Outcome is the terminal decision made by the aggregator.
type Outcome int

const (
	Undecided Outcome = iota
	Lost
	Won
)

// String returns the outcome name for logging.
func (o Outcome) String() string {
	switch o {
	case Undecided:
		return "undecided"
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// Listener receives the terminal decision. It is called at most once.
type Listener interface {
	PopularityDecided(outcome Outcome)
}

// Aggregator keeps the popularity target and the value currently shown on
// the bar, which eases toward the target.
type Aggregator struct {
	opts     config.Options
	sched    *sched.Scheduler
	listener Listener
	log      zerolog.Logger

	target    float64
	displayed float64
	bar       *sched.Task
	outcome   Outcome
}

// New creates an aggregator. Call Setup before feeding changes.
func New(opts config.Options, s *sched.Scheduler, listener Listener, log zerolog.Logger) *Aggregator {
	return &Aggregator{
		opts:     opts,
		sched:    s,
		listener: listener,
		log:      log,
	}
}

// Setup sets the initial popularity and checks the thresholds once.
func (a *Aggregator) Setup(total float64) {
	a.target = total
	a.displayed = total
	a.log.Debug().Float64("popularity", total).Msg("Popularity set up")
	a.evaluate()
}

// Add moves the target by delta. The bar eases from its displayed value to
// the new target over d; a transition already in flight is redirected.
// Once an outcome is decided every call is ignored.
func (a *Aggregator) Add(delta float64, d time.Duration) {
	if a.outcome != Undecided {
		a.log.Debug().Float64("delta", delta).Stringer("outcome", a.outcome).Msg("Popularity update ignored")
		return
	}
	a.target += delta

	if a.bar != nil {
		a.bar.Cancel()
	}
	from, to := a.displayed, a.target
	a.bar = a.sched.Tween(d,
		func(p float64) { a.displayed = from + (to-from)*p },
		func() { a.bar = nil },
	)

	a.evaluate()
}

// evaluate checks the thresholds against the target as soon as a change
// starts, not against the displayed bar as it fills.
func (a *Aggregator) evaluate() {
	if a.outcome != Undecided {
		return
	}
	switch {
	case a.target <= a.opts.Game.PopularityToLose:
		a.decide(Lost)
	case a.target >= a.opts.Game.PopularityToWin:
		a.decide(Won)
	}
}

func (a *Aggregator) decide(o Outcome) {
	a.outcome = o
	a.log.Info().Stringer("outcome", o).Float64("popularity", a.target).Msg("Popularity decided")
	if a.listener != nil {
		a.listener.PopularityDecided(o)
	}
}

// Value returns the popularity target.
func (a *Aggregator) Value() float64 { return a.target }

// Displayed returns the value currently drawn on the bar.
func (a *Aggregator) Displayed() float64 { return a.displayed }

// Outcome returns the decision, Undecided while the game goes on.
func (a *Aggregator) Outcome() Outcome { return a.outcome }

// Scale is the popularity that fills the whole bar.
func (a *Aggregator) Scale() float64 {
	return a.opts.District.MaxValue * scaleFactor
}

// Fraction returns the displayed value normalized to [0, 1].
func (a *Aggregator) Fraction() float64 { return a.normalize(a.displayed) }

// LoseMarker returns the lose threshold position on the bar.
func (a *Aggregator) LoseMarker() float64 { return a.normalize(a.opts.Game.PopularityToLose) }

// WinMarker returns the win threshold position on the bar.
func (a *Aggregator) WinMarker() float64 { return a.normalize(a.opts.Game.PopularityToWin) }

func (a *Aggregator) normalize(v float64) float64 {
	scale := a.Scale()
	if scale <= 0 {
		return 0
	}
	return math.Max(0, math.Min(v/scale, 1))
}
