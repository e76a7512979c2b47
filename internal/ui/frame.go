package ui

import "github.com/gdamore/tcell/v2"

// Frame is everything the renderer draws for one tick.
type Frame struct {
	DayLabel    string
	DayEmphasis bool

	Popularity  float64 // bar fill in [0, 1]
	LoseMarker  float64
	WinMarker   float64
	Consequence string

	Columns   int
	Cursor    int
	Districts []DistrictCell

	Actions        []string
	ActionsEnabled bool
	Focused        int

	// Title replaces the map with an end-of-game announcement.
	Title    string
	Subtitle string
}

// DistrictCell is the drawable state of one district slot.
type DistrictCell struct {
	Letter   string
	Name     string
	Color    tcell.Color
	Fill     float64 // value normalized to [0, 1]
	Value    int
	Selected bool
	Disabled bool
	Warning  bool // low-value pulse is running
	Flash    bool // pulse is in its gray phase
	Shake    int  // horizontal offset in cells
	Emphasis float64
	Tint     tcell.Color // tcell.ColorDefault when the slot is not previewed
}

// HitKind identifies what a mouse click landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitDistrict
	HitAction
)

// Hit is the result of a hit test.
type Hit struct {
	Kind  HitKind
	Index int
}

type box struct {
	x, y, w, h int
	hit        Hit
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}
