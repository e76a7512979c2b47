package game

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cityhall/internal/gamedata"
	"github.com/samdwyer/cityhall/internal/ui"
)

// shakeRate is how fast a shaking district swings, in radians per millisecond.
const shakeRate = 0.05

// Frame builds the view of the session for the renderer. cursor is the
// keyboard cursor on the map.
func (s *Session) Frame(cursor int) ui.Frame {
	f := ui.Frame{
		DayLabel:    s.calendar.Label(),
		DayEmphasis: s.DayEmphasis(),
		Popularity:  s.pop.Fraction(),
		LoseMarker:  s.pop.LoseMarker(),
		WinMarker:   s.pop.WinMarker(),
		Consequence: s.Consequence(),
		Columns:     columns(s.registry.Len()),
		Cursor:      cursor,
		Focused:     s.focused,
		Title:       s.state.Title(),
		Subtitle:    s.state.Subtitle(),

		ActionsEnabled: s.ActionsEnabled(),
	}
	if f.Title != "" {
		return f
	}

	tints := make(map[int]tcell.Color, len(s.tints))
	for _, t := range s.tints {
		tints[t.Slot] = gamedata.ToTCell(t.Color)
	}

	now := s.sched.Now()
	maxValue := s.opts.District.MaxValue
	for i, d := range s.registry.Districts() {
		tint, ok := tints[i]
		if !ok {
			tint = tcell.ColorDefault
		}
		swing := math.Sin(float64(now.Milliseconds()) * shakeRate)
		f.Districts = append(f.Districts, ui.DistrictCell{
			Letter:   d.Def().InitialLetter(),
			Name:     d.Name(),
			Color:    d.Def().TCellColor(),
			Fill:     d.Value() / maxValue,
			Value:    int(math.Round(d.Value())),
			Selected: i == s.selected,
			Disabled: d.IsDisabled(),
			Warning:  d.Warning(),
			Flash:    d.Flash(),
			Shake:    int(math.Round(d.Shake(now) * swing)),
			Emphasis: d.Emphasis(now),
			Tint:     tint,
		})
	}
	for _, a := range s.actions {
		f.Actions = append(f.Actions, a.Name)
	}
	return f
}

// columns lays the map out as a near-square grid.
func columns(n int) int {
	if n <= 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
