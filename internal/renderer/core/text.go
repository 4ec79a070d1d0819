package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme is one user-perceived character and its column width.
type Grapheme struct {
	Symbol string
	Width  int
}

// Graphemes splits s into grapheme clusters. Control characters are
// dropped; zero-width clusters that survive are given width 1 so they still
// own a cell.
func Graphemes(s string) []Grapheme {
	var out []Grapheme
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		r := g.Runes()
		if len(r) == 1 && (r[0] < 32 || r[0] == 0x7F) {
			continue
		}
		w := SymbolWidth(cluster)
		if w == 0 {
			w = 1
		}
		out = append(out, Grapheme{Symbol: cluster, Width: w})
	}
	return out
}

// SymbolWidth returns the display width of a symbol in columns, capped at 2.
func SymbolWidth(symbol string) int {
	return min(runewidth.StringWidth(symbol), 2)
}

// StringWidth returns the display width of s in columns.
func StringWidth(s string) int {
	w := 0
	for _, g := range Graphemes(s) {
		w += g.Width
	}
	return w
}
