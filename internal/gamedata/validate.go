package gamedata

import "fmt"

// Severity classifies a data problem.
type Severity int

const (
	// SeverityWarning is logged and the game continues.
	SeverityWarning Severity = iota
	// SeverityError means the data cannot be played.
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Issue is one problem found while validating the catalog.
type Issue struct {
	Severity Severity
	Message  string
}

// Validate checks referential integrity between the configured district
// pool and the catalog, and flags catalog entries nothing uses.
func Validate(c *Catalog, pool []*DistrictDef) []Issue {
	var issues []Issue
	warn := func(format string, args ...any) {
		issues = append(issues, Issue{SeverityWarning, fmt.Sprintf(format, args...)})
	}
	fail := func(format string, args ...any) {
		issues = append(issues, Issue{SeverityError, fmt.Sprintf(format, args...)})
	}

	if len(pool) == 0 {
		warn("no districts configured")
	}

	inPool := make(map[string]bool, len(pool))
	for _, d := range pool {
		inPool[d.ID] = true
	}

	usedActions := make(map[string]bool)
	for _, d := range pool {
		if len(d.Actions) == 0 {
			warn("no actions in district %s", d.ID)
		}
		for _, id := range d.Actions {
			action := c.Action(id)
			if action == nil {
				fail("district %s references unknown action %q", d.ID, id)
				continue
			}
			usedActions[id] = true
			if len(action.Consequences) == 0 {
				warn("no consequences in action %s of district %s", id, d.ID)
			}
			for i, cons := range action.Consequences {
				switch {
				case cons.District == "":
					fail("empty district in consequence %d of action %s", i, id)
				case c.District(cons.District) == nil:
					fail("consequence %d of action %s targets unknown district %q", i, id, cons.District)
				case !inPool[cons.District]:
					fail("consequence %d of action %s targets district %q which is not on the map", i, id, cons.District)
				}
			}
		}
	}

	for _, d := range c.Districts() {
		if !inPool[d.ID] {
			warn("district %s is not used; it probably belongs in the configured districts", d.ID)
		}
	}
	for _, a := range c.Actions() {
		if !usedActions[a.ID] {
			warn("action %s is not used by any configured district", a.ID)
		}
	}

	return issues
}

// HasErrors reports whether any issue is fatal.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
