package gamedata

import (
	"errors"
	"fmt"
	"io/fs"
)

// Catalog holds the loaded districts and actions and resolves the IDs that
// tie them together.
type Catalog struct {
	districts  []DistrictDef
	actions    []ActionDef
	districtBy map[string]*DistrictDef
	actionBy   map[string]*ActionDef
}

// NewCatalog creates a catalog from loaded definitions.
func NewCatalog(districts []DistrictDef, actions []ActionDef) *Catalog {
	c := &Catalog{
		districts:  districts,
		actions:    actions,
		districtBy: make(map[string]*DistrictDef, len(districts)),
		actionBy:   make(map[string]*ActionDef, len(actions)),
	}
	for i := range districts {
		c.districtBy[districts[i].ID] = &districts[i]
	}
	for i := range actions {
		c.actionBy[actions[i].ID] = &actions[i]
	}
	return c
}

// LoadCatalog loads the embedded districts.json and actions.json.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(dataFS)
}

// LoadCatalogFS loads districts.json and actions.json from fsys.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	districts, err := LoadFrom[DistrictsFile](fsys, "districts.json")
	if err != nil {
		return nil, err
	}
	actions, err := LoadFrom[ActionsFile](fsys, "actions.json")
	if err != nil {
		return nil, err
	}
	if len(districts.Districts) == 0 {
		return nil, errors.New("no districts loaded from districts.json")
	}
	return NewCatalog(districts.Districts, actions.Actions), nil
}

// MustLoadCatalog loads the embedded catalog, panicking on error.
func MustLoadCatalog() *Catalog {
	catalog, err := LoadCatalog()
	if err != nil {
		panic(err)
	}
	return catalog
}

// District returns the district with the given ID, or nil if not found.
func (c *Catalog) District(id string) *DistrictDef {
	return c.districtBy[id]
}

// Action returns the action with the given ID, or nil if not found.
func (c *Catalog) Action(id string) *ActionDef {
	return c.actionBy[id]
}

// ActionsFor returns the actions offered by a district, in declared order.
// Unknown IDs are skipped; Validate reports them.
func (c *Catalog) ActionsFor(d *DistrictDef) []*ActionDef {
	result := make([]*ActionDef, 0, len(d.Actions))
	for _, id := range d.Actions {
		if action := c.actionBy[id]; action != nil {
			result = append(result, action)
		}
	}
	return result
}

// Pool resolves the configured district IDs. An empty list means every
// district in the catalog, in file order.
func (c *Catalog) Pool(ids []string) ([]*DistrictDef, error) {
	if len(ids) == 0 {
		pool := make([]*DistrictDef, len(c.districts))
		for i := range c.districts {
			pool[i] = &c.districts[i]
		}
		return pool, nil
	}

	pool := make([]*DistrictDef, 0, len(ids))
	for _, id := range ids {
		d := c.districtBy[id]
		if d == nil {
			return nil, fmt.Errorf("configured district %q not found in catalog", id)
		}
		pool = append(pool, d)
	}
	return pool, nil
}

// Districts returns all district definitions.
func (c *Catalog) Districts() []DistrictDef {
	return c.districts
}

// Actions returns all action definitions.
func (c *Catalog) Actions() []ActionDef {
	return c.actions
}
