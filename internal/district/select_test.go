package district

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/samdwyer/cityhall/internal/gamedata"
)

func def(id, name string, unique, center bool) *gamedata.DistrictDef {
	return &gamedata.DistrictDef{ID: id, Name: name, IsUnique: unique, IsCenter: center, StartValue: 50}
}

func ids(defs []*gamedata.DistrictDef) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.ID
	}
	return out
}

func TestCenterKeepsRelativeOrder(t *testing.T) {
	in := []*gamedata.DistrictDef{
		def("a", "Alpha", true, false),
		def("b", "Beta", true, true),
		def("c", "Gamma", true, false),
		def("d", "Delta", true, false),
		def("e", "Epsilon", true, false),
	}

	got, err := Center(in, false, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("Center failed: %v", err)
	}

	want := []string{"a", "c", "b", "d", "e"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("Center() = %v, want %v", ids(got), want)
		}
	}
}

func TestCenterRandomOrderStillCenters(t *testing.T) {
	in := []*gamedata.DistrictDef{
		def("a", "Alpha", true, false),
		def("b", "Beta", true, false),
		def("c", "Gamma", true, false),
		def("h", "Hall", true, true),
		def("d", "Delta", true, false),
		def("e", "Epsilon", true, false),
	}
	rng := rand.New(rand.NewSource(3))

	got, err := Center(in, true, rng, zerolog.Nop())
	if err != nil {
		t.Fatalf("Center failed: %v", err)
	}
	if got[3].ID != "h" {
		t.Errorf("center landed at wrong slot: %v", ids(got))
	}
	seen := map[string]bool{}
	for _, d := range got {
		if d == nil {
			t.Fatalf("empty slot in %v", got)
		}
		seen[d.ID] = true
	}
	if len(seen) != len(in) {
		t.Errorf("districts lost or duplicated: %v", ids(got))
	}
}

func TestCenterRejectsTwoCenters(t *testing.T) {
	in := []*gamedata.DistrictDef{
		def("a", "Alpha", true, true),
		def("b", "Beta", true, true),
	}
	if _, err := Center(in, false, nil, zerolog.Nop()); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Center error = %v, want ErrConfiguration", err)
	}
}

func TestCenterWithoutCenterFillsSequentially(t *testing.T) {
	in := []*gamedata.DistrictDef{
		def("a", "Alpha", true, false),
		def("b", "Beta", true, false),
		def("c", "Gamma", true, false),
	}
	got, err := Center(in, false, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("Center failed: %v", err)
	}
	want := []string{"a", "b", "c"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("Center() = %v, want %v", ids(got), want)
		}
	}
}

func TestSelectAllUniqueUsesPool(t *testing.T) {
	pool := []*gamedata.DistrictDef{
		def("m", "Market", false, false),
		def("c", "City Hall", false, true),
		def("d", "Docks", false, false),
	}

	got, err := Select(pool, 3, SelectOptions{AllUnique: true}, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	want := []string{"m", "c", "d"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("Select() = %v, want %v", ids(got), want)
		}
	}
}

func TestSelectFillsAndSorts(t *testing.T) {
	pool := []*gamedata.DistrictDef{
		def("u", "University", true, false),
		def("h", "Hall", true, true),
		def("g", "Gardens", false, false),
		def("b", "Barracks", false, false),
	}
	rng := rand.New(rand.NewSource(11))

	got, err := Select(pool, 7, SelectOptions{}, rng, zerolog.Nop())
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[3].ID != "h" {
		t.Errorf("center not in the middle: %v", ids(got))
	}

	counts := map[string]int{}
	for _, d := range got {
		counts[d.ID]++
	}
	if counts["u"] != 1 || counts["h"] != 1 {
		t.Errorf("unique districts must appear exactly once: %v", counts)
	}
	if counts["g"]+counts["b"] != 5 {
		t.Errorf("fillable districts should fill 5 slots: %v", counts)
	}

	// Outside the center slot, the layout is sorted by initial letter.
	var letters []string
	for i, d := range got {
		if i != 3 {
			letters = append(letters, d.InitialLetter())
		}
	}
	for i := 1; i < len(letters); i++ {
		if letters[i-1] > letters[i] {
			t.Errorf("layout not sorted: %v", letters)
		}
	}
}

func TestSelectIsReproducibleWithSeed(t *testing.T) {
	pool := []*gamedata.DistrictDef{
		def("h", "Hall", true, true),
		def("g", "Gardens", false, false),
		def("b", "Barracks", false, false),
		def("f", "Factory", false, false),
	}
	opts := SelectOptions{RandomOrder: true}

	a, _ := Select(pool, 9, opts, rand.New(rand.NewSource(5)), zerolog.Nop())
	b, _ := Select(pool, 9, opts, rand.New(rand.NewSource(5)), zerolog.Nop())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different maps: %v vs %v", ids(a), ids(b))
		}
	}
}

func TestSelectWithoutFillableFails(t *testing.T) {
	pool := []*gamedata.DistrictDef{def("h", "Hall", true, true)}
	_, err := Select(pool, 3, SelectOptions{}, rand.New(rand.NewSource(1)), zerolog.Nop())
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Select error = %v, want ErrConfiguration", err)
	}
}

func TestSelectEmptyPool(t *testing.T) {
	got, err := Select(nil, 0, SelectOptions{}, nil, zerolog.Nop())
	if err != nil || len(got) != 0 {
		t.Errorf("Select(nil) = %v, %v", got, err)
	}
}
