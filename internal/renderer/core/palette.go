package core

import "github.com/gdamore/tcell/v2"

// PaletteRGB maps a 256-color palette index to its RGB value using the
// xterm defaults (the same table terminals use for SGR 38;5).
func PaletteRGB(index uint8) (r, g, b uint8) {
	rr, gg, bb := tcell.PaletteColor(int(index)).RGB()
	if rr < 0 {
		return 0, 0, 0
	}
	return uint8(rr), uint8(gg), uint8(bb)
}

// ToTcell converts a color to its tcell equivalent.
func (c Color) ToTcell() tcell.Color {
	switch {
	case c.Default:
		return tcell.ColorDefault
	case c.Indexed:
		return tcell.PaletteColor(int(c.R))
	default:
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
}

// ColorFromTcell converts a tcell color back to a Color.
func ColorFromTcell(tc tcell.Color) Color {
	if tc == tcell.ColorDefault {
		return ColorDefault
	}
	if tc >= tcell.ColorValid && tc < tcell.ColorIsRGB {
		return ColorFromIndex(uint8(tc - tcell.ColorValid))
	}
	r, g, b := tc.RGB()
	return ColorFromRGB(uint8(r), uint8(g), uint8(b))
}
