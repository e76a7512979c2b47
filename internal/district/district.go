// Package district holds the runtime districts of a session: their values,
// disabled flags and the visual state that follows value changes.
package district

import (
	"errors"
	"math"
	"time"

	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/sched"
)

var (
	// ErrConfiguration marks data/runtime mismatches such as an unknown
	// district or more than one center district.
	ErrConfiguration = errors.New("configuration error")
	// ErrConcurrentMutation is returned when a value change is requested
	// while another one is still settling on the same district.
	ErrConcurrentMutation = errors.New("concurrent mutation")
)

const (
	warningPulse = 500 * time.Millisecond

	// Emphasis reaches its maximum for a base delta of this size.
	emphasisFullDelta = 40
	// Disabling shakes harder than a regular value change.
	disableShakeFactor = 5
)

// District is the runtime state of one district on the map.
type District struct {
	def   *gamedata.DistrictDef
	index int

	value    float64
	target   float64
	disabled bool

	ramp    *sched.Task // in-flight value change
	warning *sched.Task // low-value pulse
	flash   bool

	shakeUntil     time.Duration
	shakeMagnitude float64
	emphasis       float64
	emphasisUntil  time.Duration
}

func newDistrict(def *gamedata.DistrictDef, index int) *District {
	return &District{
		def:    def,
		index:  index,
		value:  def.StartValue,
		target: def.StartValue,
	}
}

// Def returns the definition this district was created from.
func (d *District) Def() *gamedata.DistrictDef { return d.def }

// ID returns the definition ID.
func (d *District) ID() string { return d.def.ID }

// Name returns the display name.
func (d *District) Name() string { return d.def.Name }

// Index returns the slot of the district on the map.
func (d *District) Index() int { return d.index }

// Value returns the current, possibly still animating, value.
func (d *District) Value() float64 { return d.value }

// Target returns the value the district settles on.
func (d *District) Target() float64 { return d.target }

// IsDisabled reports whether the district has been switched off.
func (d *District) IsDisabled() bool { return d.disabled }

// Changing reports whether a value change is still settling.
func (d *District) Changing() bool { return d.ramp != nil }

// Warning reports whether the low-value pulse is running.
func (d *District) Warning() bool { return d.warning != nil }

// Flash reports whether the low-value pulse is in its gray phase.
func (d *District) Flash() bool { return d.flash }

// Shake returns the shake magnitude at game time now, 0 when still.
func (d *District) Shake(now time.Duration) float64 {
	if now >= d.shakeUntil {
		return 0
	}
	return d.shakeMagnitude
}

// Emphasis returns how strongly the district is highlighted at now, in [0, 1].
func (d *District) Emphasis(now time.Duration) float64 {
	if now >= d.emphasisUntil {
		return 0
	}
	return d.emphasis
}

func (d *District) shake(now, duration time.Duration, magnitude float64) {
	d.shakeUntil = now + duration
	d.shakeMagnitude = magnitude
}

func (d *District) emphasize(now, duration time.Duration, amount, multiplier float64) {
	if multiplier == 0 {
		multiplier = 1
	}
	d.emphasis = math.Min(math.Abs(amount)/(emphasisFullDelta*math.Abs(multiplier)), 1)
	d.emphasisUntil = now + duration
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
