// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between backend, surface and frame.
package core

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (accepted, never animated)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
	AttrHidden                  // Hidden/invisible text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// Color represents a color value.
// Supports true color (RGB), terminal palette colors and the reset sentinel.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates the reset color; the backend decides what it means.
	Default bool
}

// ColorDefault represents the reset/default color.
var ColorDefault = Color{Default: true}

// Named colors. These are palette indices 0-15 so they follow the
// conventional terminal palette rather than pure RGB primaries.
var (
	ColorBlack        = ColorFromIndex(0)
	ColorRed          = ColorFromIndex(1)
	ColorGreen        = ColorFromIndex(2)
	ColorYellow       = ColorFromIndex(3)
	ColorBlue         = ColorFromIndex(4)
	ColorMagenta      = ColorFromIndex(5)
	ColorCyan         = ColorFromIndex(6)
	ColorGray         = ColorFromIndex(7)
	ColorDarkGray     = ColorFromIndex(8)
	ColorLightRed     = ColorFromIndex(9)
	ColorLightGreen   = ColorFromIndex(10)
	ColorLightYellow  = ColorFromIndex(11)
	ColorLightBlue    = ColorFromIndex(12)
	ColorLightMagenta = ColorFromIndex(13)
	ColorLightCyan    = ColorFromIndex(14)
	ColorWhite        = ColorFromIndex(15)
)

var colorNames = [16]string{
	"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "Gray",
	"DarkGray", "LightRed", "LightGreen", "LightYellow", "LightBlue",
	"LightMagenta", "LightCyan", "White",
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string ("#RGB" or "#RRGGBB",
// the leading '#' is optional).
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b), nil
}

// ColorByName resolves one of the sixteen named colors, "reset", or a hex
// string.
func ColorByName(name string) (Color, error) {
	if strings.EqualFold(name, "reset") || strings.EqualFold(name, "default") {
		return ColorDefault, nil
	}
	for i, n := range colorNames {
		if strings.EqualFold(n, name) {
			return ColorFromIndex(uint8(i)), nil
		}
	}
	return ColorFromHex(name)
}

// IsDefault returns true if this is the reset color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default != other.Default {
		return false
	}
	if c.Default {
		return true
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// RGB resolves the color to concrete components. ok is false for the reset
// color, which has no value of its own.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	switch {
	case c.Default:
		return 0, 0, 0, false
	case c.Indexed:
		r, g, b = PaletteRGB(c.R)
		return r, g, b, true
	default:
		return c.R, c.G, c.B, true
	}
}

// CSS serializes the color the way a 2D canvas fill style expects it:
// "#rrggbb". The reset color serializes to the empty string.
func (c Color) CSS() string {
	r, g, b, ok := c.RGB()
	if !ok {
		return ""
	}
	return toColorful(r, g, b).Hex()
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "Reset"
	}
	if c.Indexed {
		if int(c.R) < len(colorNames) {
			return colorNames[c.R]
		}
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes c toward other by amount (0..1) in RGB space. The reset color
// is returned unchanged.
func (c Color) Blend(other Color, amount float64) Color {
	r1, g1, b1, ok1 := c.RGB()
	r2, g2, b2, ok2 := other.RGB()
	if !ok1 || !ok2 {
		return c
	}
	r, g, b := toColorful(r1, g1, b1).BlendRgb(toColorful(r2, g2, b2), amount).Clamped().RGB255()
	return ColorFromRGB(r, g, b)
}

func toColorful(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Cell represents one grid position for one frame.
type Cell struct {
	// Symbol is the text to display; usually one grapheme cluster.
	Symbol string

	Fg             Color
	Bg             Color
	UnderlineColor Color
	Attrs          Attribute
}

// EmptyCell returns a blank cell with reset colors.
func EmptyCell() Cell {
	return Cell{
		Symbol:         " ",
		Fg:             ColorDefault,
		Bg:             ColorDefault,
		UnderlineColor: ColorDefault,
	}
}

// NewCell creates a cell with the given symbol and reset colors.
func NewCell(symbol string) Cell {
	c := EmptyCell()
	c.Symbol = symbol
	return c
}

// WithFg returns a copy of the cell with the given foreground.
func (c Cell) WithFg(fg Color) Cell {
	c.Fg = fg
	return c
}

// WithBg returns a copy of the cell with the given background.
func (c Cell) WithBg(bg Color) Cell {
	c.Bg = bg
	return c
}

// WithAttrs returns a copy of the cell with attrs added.
func (c Cell) WithAttrs(attrs Attribute) Cell {
	c.Attrs |= attrs
	return c
}

// IsContinuation returns true for the trailing half of a wide symbol.
func (c Cell) IsContinuation() bool {
	return c.Symbol == ""
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Symbol == other.Symbol &&
		c.Fg.Equals(other.Fg) &&
		c.Bg.Equals(other.Bg) &&
		c.UnderlineColor.Equals(other.UnderlineColor) &&
		c.Attrs == other.Attrs
}

// Placement is one element of a draw stream: a cell at a grid column/row.
type Placement struct {
	X, Y int
	Cell Cell
}

// Size is a width/height pair in cells or pixels.
type Size struct {
	Width  int
	Height int
}

// ScreenRect represents a rectangular region on the grid.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// NewScreenRect creates a screen rectangle.
func NewScreenRect(top, left, bottom, right int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: bottom, Right: right}
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains returns true if (col,row) is within the rectangle.
func (r ScreenRect) Contains(col, row int) bool {
	return row >= r.Top && row < r.Bottom &&
		col >= r.Left && col < r.Right
}

// Intersection returns the overlapping area of two rectangles.
func (r ScreenRect) Intersection(other ScreenRect) ScreenRect {
	result := ScreenRect{
		Top:    max(r.Top, other.Top),
		Left:   max(r.Left, other.Left),
		Bottom: min(r.Bottom, other.Bottom),
		Right:  min(r.Right, other.Right),
	}
	if result.IsEmpty() {
		return ScreenRect{}
	}
	return result
}

// Inset returns a rectangle shrunk by the given amounts.
func (r ScreenRect) Inset(top, right, bottom, left int) ScreenRect {
	return ScreenRect{
		Top:    r.Top + top,
		Left:   r.Left + left,
		Bottom: r.Bottom - bottom,
		Right:  r.Right - right,
	}
}
