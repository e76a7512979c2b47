package district

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/gamedata"
)

// SelectOptions controls how the map is filled from the district pool.
type SelectOptions struct {
	AllUnique   bool // use the pool as-is
	RandomOrder bool // shuffle instead of sorting by initial letter
}

// Select picks count districts from pool and lays them out with the
// center district in the middle slot.
//
// With AllUnique the pool is the selection. Otherwise every IsUnique
// district is included and the remaining slots are drawn, with
// replacement, from the other districts.
func Select(pool []*gamedata.DistrictDef, count int, opts SelectOptions, rng *rand.Rand, log zerolog.Logger) ([]*gamedata.DistrictDef, error) {
	if len(pool) == 0 {
		log.Warn().Msg("No districts in the configured pool")
		return nil, nil
	}

	if opts.AllUnique {
		return Center(pool, opts.RandomOrder, rng, log)
	}

	var selected, fillable []*gamedata.DistrictDef
	for _, d := range pool {
		if d.IsUnique {
			selected = append(selected, d)
		} else {
			fillable = append(fillable, d)
		}
	}
	if len(selected) == 0 {
		log.Warn().Msg("No district with isUnique enabled")
	}

	for len(selected) < count {
		if len(fillable) == 0 {
			err := fmt.Errorf("%w: %d slots left to fill but no district without isUnique", ErrConfiguration, count-len(selected))
			log.Error().Err(err).Msg("District selection failed")
			return nil, err
		}
		selected = append(selected, fillable[rng.Intn(len(fillable))])
	}

	if !opts.RandomOrder {
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].InitialLetter() < selected[j].InitialLetter()
		})
	}

	return Center(selected, opts.RandomOrder, rng, log)
}

// Center places the single IsCenter district at index len/2 and fills the
// other slots with the rest, in order or drawn at random.
func Center(districts []*gamedata.DistrictDef, randomOrder bool, rng *rand.Rand, log zerolog.Logger) ([]*gamedata.DistrictDef, error) {
	n := len(districts)
	centered := make([]*gamedata.DistrictDef, n)
	rest := make([]*gamedata.DistrictDef, 0, n)
	centerIndex := n / 2
	hasCenter := false

	for _, d := range districts {
		if !d.IsCenter {
			rest = append(rest, d)
			continue
		}
		if hasCenter {
			err := fmt.Errorf("%w: more than one district with isCenter enabled (%s)", ErrConfiguration, d.ID)
			log.Error().Err(err).Msg("District centering failed")
			return nil, err
		}
		centered[centerIndex] = d
		hasCenter = true
	}
	if !hasCenter {
		log.Warn().Msg("No district with isCenter enabled")
	}

	slot := 0
	for len(rest) > 0 {
		if hasCenter && slot == centerIndex {
			slot++
		}
		i := 0
		if randomOrder {
			i = rng.Intn(len(rest))
		}
		centered[slot] = rest[i]
		rest = append(rest[:i], rest[i+1:]...)
		slot++
	}

	return centered, nil
}
