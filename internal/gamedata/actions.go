package gamedata

// ConsequenceDef is a single effect of an action on one district.
type ConsequenceDef struct {
	District    string  `json:"district"`    // Target district ID
	Value       float64 `json:"value"`       // Delta before the day multiplier
	Description string  `json:"description"` // Text shown while the consequence plays
}

// ActionDef is a player choice offered by a district.
type ActionDef struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Consequences []ConsequenceDef `json:"consequences"`
}

// Targets returns the distinct district IDs this action touches, in order.
func (a *ActionDef) Targets() []string {
	seen := make(map[string]bool, len(a.Consequences))
	targets := make([]string, 0, len(a.Consequences))
	for _, c := range a.Consequences {
		if seen[c.District] {
			continue
		}
		seen[c.District] = true
		targets = append(targets, c.District)
	}
	return targets
}

// ActionsFile represents the structure of actions.json.
type ActionsFile struct {
	Actions []ActionDef `json:"actions"`
}

// LoadActions loads action definitions from the embedded actions.json file.
func LoadActions() ([]ActionDef, error) {
	file, err := Load[ActionsFile]("actions.json")
	if err != nil {
		return nil, err
	}
	return file.Actions, nil
}
