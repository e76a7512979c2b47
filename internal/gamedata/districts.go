package gamedata

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// DistrictDef defines a district loaded from JSON.
type DistrictDef struct {
	ID         string   `json:"id"`         // Unique identifier (e.g., "docks")
	Name       string   `json:"name"`       // Display name (e.g., "Docks")
	Color      string   `json:"color"`      // Hex color of the district icon
	IsUnique   bool     `json:"isUnique"`   // Always included when filling the map
	IsCenter   bool     `json:"isCenter"`   // Placed in the middle slot of the map
	StartValue float64  `json:"startValue"` // Value at the start of the session
	Actions    []string `json:"actions"`    // Ordered action IDs offered by this district
}

// InitialLetter returns the first character of the district name, used as
// its map icon and as the sort key for non-random layouts.
func (d *DistrictDef) InitialLetter() string {
	if d.Name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(d.Name)
	return string(r)
}

// TCellColor returns the icon color as a tcell.Color.
func (d *DistrictDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// DistrictsFile represents the structure of districts.json.
type DistrictsFile struct {
	Districts []DistrictDef `json:"districts"`
}

// LoadDistricts loads district definitions from the embedded districts.json file.
func LoadDistricts() ([]DistrictDef, error) {
	file, err := Load[DistrictsFile]("districts.json")
	if err != nil {
		return nil, err
	}
	return file.Districts, nil
}
