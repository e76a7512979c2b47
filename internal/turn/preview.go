package turn

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/cityhall/internal/gamedata"
)

const (
	// A consequence of this size or more is tinted at full strength.
	tintFullValue = 60
	tintMinAmount = 0.5
)

// Tint colors one map slot while an action is focused.
type Tint struct {
	Slot  int
	Color colorful.Color
}

// Preview returns the tints for every district the action affects: green
// for gains and red for losses, stronger for bigger values. Later
// consequences on the same district override earlier ones. Disabled
// districts are left alone.
func (q *Sequencer) Preview(action *gamedata.ActionDef) []Tint {
	if action == nil || !q.opts.ShowDistrictsAffected {
		return nil
	}

	bySlot := make(map[int]int)
	var tints []Tint
	for _, c := range action.Consequences {
		districts, err := q.registry.Lookup(c.District)
		if err != nil {
			continue
		}
		amount := math.Max(math.Abs(c.Value)/tintFullValue, tintMinAmount)
		color := gamedata.Tint(c.Value > 0, math.Min(amount, 1))
		for _, d := range districts {
			if d.IsDisabled() {
				continue
			}
			if i, ok := bySlot[d.Index()]; ok {
				tints[i].Color = color
				continue
			}
			bySlot[d.Index()] = len(tints)
			tints = append(tints, Tint{Slot: d.Index(), Color: color})
		}
	}
	return tints
}
