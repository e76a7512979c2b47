package turn

import (
	"testing"

	"github.com/samdwyer/cityhall/internal/config"
	"github.com/samdwyer/cityhall/internal/gamedata"
)

func TestPreviewTintsAffectedDistricts(t *testing.T) {
	f := newFixture(t, nil)
	a := action("docks.dredge",
		gamedata.ConsequenceDef{District: "docks", Value: 60},
		gamedata.ConsequenceDef{District: "market", Value: -6},
		gamedata.ConsequenceDef{District: "temple", Value: 10},
	)

	tints := f.seq.Preview(a)
	if len(tints) != 2 {
		t.Fatalf("tints = %v, want docks and market only", tints)
	}

	if tints[0].Slot != 0 || tints[0].Color != gamedata.Tint(true, 1) {
		t.Errorf("docks tint = %+v, want full green", tints[0])
	}
	if tints[1].Slot != 1 || tints[1].Color != gamedata.Tint(false, 0.5) {
		t.Errorf("market tint = %+v, want half red", tints[1])
	}
}

func TestPreviewLaterConsequenceWins(t *testing.T) {
	f := newFixture(t, nil)
	a := action("docks.mixed",
		gamedata.ConsequenceDef{District: "docks", Value: 60},
		gamedata.ConsequenceDef{District: "docks", Value: -60},
	)

	tints := f.seq.Preview(a)
	if len(tints) != 1 || tints[0].Color != gamedata.Tint(false, 1) {
		t.Errorf("tints = %+v, want one red tint", tints)
	}
}

func TestPreviewDisabledByOption(t *testing.T) {
	f := newFixture(t, func(o *config.Options) { o.Action.ShowDistrictsAffected = false })
	a := action("docks.dredge", gamedata.ConsequenceDef{District: "docks", Value: 10})

	if tints := f.seq.Preview(a); tints != nil {
		t.Errorf("tints = %v, want none", tints)
	}
}
