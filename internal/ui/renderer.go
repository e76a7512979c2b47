package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/cityhall/internal/gamedata"
)

const (
	cellWidth  = 16
	cellHeight = 4
	barWidth   = 40

	mapTop = 4
)

var (
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	titleStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	selectedStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	boxes  []box
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the frame and records the clickable areas.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	r.boxes = r.boxes[:0]

	dayStyle := textStyle
	if f.DayEmphasis {
		dayStyle = titleStyle
	}
	r.screen.Text(1, 0, f.DayLabel, dayStyle)
	r.renderPopularity(f, 1)

	if f.Title != "" {
		r.screen.Text(1, mapTop, f.Title, titleStyle)
		r.screen.Text(1, mapTop+1, f.Subtitle, textStyle)
		r.screen.Text(1, mapTop+3, "Press q to quit", dimStyle)
		r.screen.Show()
		return
	}

	for i, cell := range f.Districts {
		r.renderDistrict(f, i, cell)
	}

	rows := gridRows(len(f.Districts), f.Columns)
	y := mapTop + rows*cellHeight + 1
	r.renderActions(f, y)
	r.screen.Text(1, y+2, f.Consequence, textStyle)

	r.screen.Show()
}

func (r *Renderer) renderPopularity(f Frame, y int) {
	x := r.screen.Text(1, y, "POPULARITY ", textStyle)
	fill := int(f.Popularity * barWidth)
	color := gamedata.ToTCell(gamedata.ValueColor(f.Popularity))
	lose := markerColumn(f.LoseMarker)
	win := markerColumn(f.WinMarker)

	for i := 0; i < barWidth; i++ {
		ch, style := '░', dimStyle
		if i < fill {
			ch, style = '█', tcell.StyleDefault.Foreground(color)
		}
		switch i {
		case lose:
			ch, style = '|', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		case win:
			ch, style = '|', tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
		}
		r.screen.SetContent(x+i, y, ch, style)
	}
}

func markerColumn(marker float64) int {
	col := int(marker * barWidth)
	if col >= barWidth {
		col = barWidth - 1
	}
	return col
}

func (r *Renderer) renderDistrict(f Frame, i int, cell DistrictCell) {
	cx, cy := cellOrigin(i, f.Columns)
	x := cx + cell.Shake
	r.boxes = append(r.boxes, box{x: cx, y: cy, w: cellWidth, h: cellHeight, hit: Hit{Kind: HitDistrict, Index: i}})

	frame := dimStyle
	if f.Cursor == i {
		frame = textStyle
	}
	if cell.Selected {
		frame = selectedStyle
	}
	r.screen.SetContent(x, cy, '[', frame)
	r.screen.SetContent(x+cellWidth-2, cy, ']', frame)

	iconStyle := tcell.StyleDefault.Foreground(cell.Color).Bold(true)
	nameStyle := textStyle
	switch {
	case cell.Disabled:
		iconStyle, nameStyle = dimStyle, dimStyle.StrikeThrough(true)
	case cell.Warning && cell.Flash:
		nameStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
	if cell.Tint != tcell.ColorDefault && !cell.Disabled {
		iconStyle = iconStyle.Background(cell.Tint).Foreground(tcell.ColorBlack)
	}
	if cell.Emphasis > 0 {
		nameStyle = nameStyle.Bold(true)
	}

	r.screen.Text(x+1, cy, cell.Letter, iconStyle)
	name := cell.Name
	if cell.Emphasis >= 0.5 {
		name = strings.ToUpper(name)
	}
	r.screen.Text(x+3, cy, truncate(name, cellWidth-6), nameStyle)

	if cell.Disabled {
		r.screen.Text(x+1, cy+1, "closed", dimStyle)
		return
	}
	barColor := gamedata.ToTCell(gamedata.ValueColor(cell.Fill))
	width := cellWidth - 6
	filled := int(cell.Fill * float64(width))
	for j := 0; j < width; j++ {
		ch, style := '·', dimStyle
		if j < filled {
			ch, style = '▮', tcell.StyleDefault.Foreground(barColor)
		}
		r.screen.SetContent(x+1+j, cy+1, ch, style)
	}
	r.screen.Text(x+2+width, cy+1, fmt.Sprintf("%3d", cell.Value), textStyle)
}

func (r *Renderer) renderActions(f Frame, y int) {
	x := 1
	for i, name := range f.Actions {
		style := textStyle
		switch {
		case !f.ActionsEnabled:
			style = dimStyle
		case i == f.Focused:
			style = selectedStyle.Reverse(true)
		}
		label := fmt.Sprintf(" %d %s ", i+1, name)
		r.boxes = append(r.boxes, box{x: x, y: y, w: len([]rune(label)), h: 1, hit: Hit{Kind: HitAction, Index: i}})
		x = r.screen.Text(x, y, label, style) + 1
	}
}

// HitTest returns what was drawn at x, y in the last rendered frame.
func (r *Renderer) HitTest(x, y int) Hit {
	for _, b := range r.boxes {
		if b.contains(x, y) {
			return b.hit
		}
	}
	return Hit{Kind: HitNone}
}

// cellOrigin returns the top-left corner of map slot i.
func cellOrigin(i, columns int) (int, int) {
	if columns <= 0 {
		columns = 1
	}
	return 1 + (i%columns)*cellWidth, mapTop + (i/columns)*cellHeight
}

func gridRows(n, columns int) int {
	if columns <= 0 {
		columns = 1
	}
	return (n + columns - 1) / columns
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
