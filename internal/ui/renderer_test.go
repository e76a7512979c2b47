package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestRenderer(t *testing.T) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom failed: %v", err)
	}
	t.Cleanup(screen.Close)
	sim.SetSize(100, 30)
	return NewRenderer(screen), sim
}

func testFrame() Frame {
	cells := make([]DistrictCell, 5)
	for i := range cells {
		cells[i] = DistrictCell{Letter: "D", Name: "District", Fill: 0.5, Value: 50, Tint: tcell.ColorDefault}
	}
	return Frame{
		DayLabel:       "DAY 1 / 25",
		Popularity:     0.5,
		LoseMarker:     1.0 / 6,
		WinMarker:      5.0 / 6,
		Columns:        3,
		Districts:      cells,
		Actions:        []string{"Dredge", "Tax"},
		ActionsEnabled: true,
	}
}

func TestHitTestFindsDistrictsAndActions(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.Render(testFrame())

	tests := []struct {
		name string
		x, y int
		want Hit
	}{
		{"first district", 2, mapTop, Hit{Kind: HitDistrict, Index: 0}},
		{"third district", 1 + 2*cellWidth, mapTop + 1, Hit{Kind: HitDistrict, Index: 2}},
		{"second row", 1 + cellWidth, mapTop + cellHeight, Hit{Kind: HitDistrict, Index: 4}},
		{"first action", 2, mapTop + 2*cellHeight + 1, Hit{Kind: HitAction, Index: 0}},
		{"empty space", 90, 0, Hit{Kind: HitNone}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestTitleHidesMap(t *testing.T) {
	r, _ := newTestRenderer(t)
	f := testFrame()
	f.Title = "Game Over"
	r.Render(f)

	if got := r.HitTest(2, mapTop); got.Kind != HitNone {
		t.Errorf("map still clickable under the title: %+v", got)
	}
}

func TestGridHelpers(t *testing.T) {
	if rows := gridRows(9, 3); rows != 3 {
		t.Errorf("gridRows(9, 3) = %d, want 3", rows)
	}
	if rows := gridRows(7, 3); rows != 3 {
		t.Errorf("gridRows(7, 3) = %d, want 3", rows)
	}
	if x, y := cellOrigin(4, 3); x != 1+cellWidth || y != mapTop+cellHeight {
		t.Errorf("cellOrigin(4, 3) = %d, %d", x, y)
	}
	if got := truncate("University", 4); got != "Univ" {
		t.Errorf("truncate = %q", got)
	}
	if got := markerColumn(1); got != barWidth-1 {
		t.Errorf("markerColumn(1) = %d, want %d", got, barWidth-1)
	}
}
