package core

// Color is a semantic colour slot for a screen cell.
// The platform layer decides how each slot looks on a real terminal.
type Color uint8

// Palette slots used by the playfield and its overlays.
const (
	ColorDefault   Color = iota
	ColorField           // empty background square
	ColorGrid            // grid lines between squares
	ColorPlatform        // platform segment
	ColorCharacter       // the jumping character
	ColorText            // HUD text
	ColorOverlay         // title / pause / game-over text
	ColorDanger          // death flash accent
)

// String returns the palette slot name.
func (c Color) String() string {
	switch c {
	case ColorField:
		return "field"
	case ColorGrid:
		return "grid"
	case ColorPlatform:
		return "platform"
	case ColorCharacter:
		return "character"
	case ColorText:
		return "text"
	case ColorOverlay:
		return "overlay"
	case ColorDanger:
		return "danger"
	default:
		return "default"
	}
}
