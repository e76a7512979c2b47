package district

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/sched"
)

// Listener is told about district value changes as they start and about
// districts that get disabled.
type Listener interface {
	// ValueChanging is called when a change starts. delta is the clamped
	// change the district will settle on; amount is the requested change.
	ValueChanging(d *District, delta, amount float64, slide time.Duration)
	// DistrictDisabled is called once when a district is switched off.
	DistrictDisabled(d *District)
}

// Registry maps district definitions to their runtime districts and routes
// every value change.
type Registry struct {
	districts  []*District
	pool       map[string]bool
	opts       config.Options
	sched      *sched.Scheduler
	listener   Listener
	log        zerolog.Logger
	multiplier float64
}

// NewRegistry creates one runtime district per definition, in order.
func NewRegistry(defs []*gamedata.DistrictDef, opts config.Options, s *sched.Scheduler, listener Listener, log zerolog.Logger) *Registry {
	r := &Registry{
		districts:  make([]*District, len(defs)),
		opts:       opts,
		sched:      s,
		listener:   listener,
		log:        log,
		multiplier: 1,
	}
	for i, def := range defs {
		r.districts[i] = newDistrict(def, i)
	}
	for _, d := range r.districts {
		r.refresh(d)
	}
	return r
}

// SetMultiplier records the day multiplier used to scale emphasis.
func (r *Registry) SetMultiplier(m float64) {
	r.multiplier = m
}

// SetPool records the ids that may appear on the map. A pool id without a
// runtime instance was left out by the draw and behaves like a disabled
// district instead of a configuration error.
func (r *Registry) SetPool(defs []*gamedata.DistrictDef) {
	r.pool = make(map[string]bool, len(defs))
	for _, def := range defs {
		r.pool[def.ID] = true
	}
}

// Districts returns the runtime districts in map order.
func (r *Registry) Districts() []*District {
	return r.districts
}

// Len returns the number of districts on the map.
func (r *Registry) Len() int {
	return len(r.districts)
}

// At returns the district in slot i, or nil if out of range.
func (r *Registry) At(i int) *District {
	if i < 0 || i >= len(r.districts) {
		return nil
	}
	return r.districts[i]
}

// Lookup returns every runtime district created from the definition id.
// A pool id that was not drawn returns no districts and no error.
func (r *Registry) Lookup(id string) ([]*District, error) {
	var matches []*District
	for _, d := range r.districts {
		if d.def.ID == id {
			matches = append(matches, d)
		}
	}
	if len(matches) == 0 {
		if r.pool[id] {
			r.log.Debug().Str("district", id).Msg("District not on the map")
			return nil, nil
		}
		err := fmt.Errorf("%w: district %q has no runtime instance", ErrConfiguration, id)
		r.log.Error().Err(err).Str("district", id).Msg("District lookup failed")
		return nil, err
	}
	return matches, nil
}

// IsDisabled reports whether the district with the given id is disabled.
// With duplicates on the map the first instance decides. A pool id that is
// not on the map counts as disabled.
func (r *Registry) IsDisabled(id string) (bool, error) {
	matches, err := r.Lookup(id)
	if err != nil {
		return false, err
	}
	if len(matches) == 0 {
		return true, nil
	}
	return matches[0].disabled, nil
}

// TotalValue sums the current values of all districts.
func (r *Registry) TotalValue() float64 {
	total := 0.0
	for _, d := range r.districts {
		if d != nil {
			total += d.value
		}
	}
	return total
}

// Busy reports whether any district value is still settling.
func (r *Registry) Busy() bool {
	for _, d := range r.districts {
		if d.ramp != nil {
			return true
		}
	}
	return false
}

// AddValue changes every instance of the district id by amount.
func (r *Registry) AddValue(id string, amount float64) error {
	matches, err := r.Lookup(id)
	if err != nil {
		return err
	}
	var errs []error
	for _, d := range matches {
		if err := r.add(d, amount); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AddValueToAll changes every enabled district by amount.
func (r *Registry) AddValueToAll(amount float64) error {
	var errs []error
	for _, d := range r.districts {
		if d.disabled {
			continue
		}
		if err := r.add(d, amount); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) add(d *District, amount float64) error {
	if d.disabled {
		return nil
	}
	if d.ramp != nil {
		err := fmt.Errorf("%w: cannot add value to district %s while another value is still being added",
			ErrConcurrentMutation, d.def.ID)
		r.log.Error().Err(err).Str("district", d.def.ID).Float64("amount", amount).Msg("Value change rejected")
		return err
	}

	now := r.sched.Now()
	slide := r.opts.District.TotalSlideTime
	start := d.value
	end := clamp(start+amount, 0, r.opts.District.MaxValue)
	d.target = end

	r.log.Debug().
		Str("district", d.def.ID).
		Float64("from", start).
		Float64("to", end).
		Float64("amount", amount).
		Msg("District value changing")

	if r.listener != nil {
		r.listener.ValueChanging(d, end-start, amount, slide)
	}
	if r.opts.District.ShakeEnabled {
		d.shake(now, r.opts.ShakeTime(), r.opts.District.ShakeMagnitude)
	}
	d.emphasize(now, r.opts.Action.TotalTurnTime(), amount, r.multiplier)

	d.ramp = r.sched.Tween(slide,
		func(p float64) {
			d.value = lerp(start, end, p)
			r.refresh(d)
		},
		func() {
			d.value = end
			d.ramp = nil
			r.refresh(d)
		},
	)
	return nil
}

// refresh applies the threshold rules for the district's current value.
func (r *Registry) refresh(d *District) {
	if d.disabled {
		return
	}
	if d.value <= r.opts.District.LowValueWarning && d.warning == nil {
		d.flash = true
		d.warning = r.sched.Every(warningPulse, func() { d.flash = !d.flash })
	}
	if d.value == 0 && r.opts.District.DisableAtZero {
		r.disable(d)
	}
}

func (r *Registry) disable(d *District) {
	d.disabled = true
	if d.warning != nil {
		d.warning.Cancel()
		d.warning = nil
	}
	d.flash = false
	d.shake(r.sched.Now(), r.opts.ShakeTime(), r.opts.District.ShakeMagnitude*disableShakeFactor)

	r.log.Info().Str("district", d.def.ID).Int("slot", d.index).Msg("District disabled")
	if r.listener != nil {
		r.listener.DistrictDisabled(d)
	}
}
