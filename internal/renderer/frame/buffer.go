// Package frame holds the full-frame cell grid that views render into and
// the draw stream handed to a backend.
package frame

import (
	"iter"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

// Style is the visual part of a cell.
type Style struct {
	Fg    core.Color
	Bg    core.Color
	Attrs core.Attribute
}

// DefaultStyle uses reset colors and no attributes.
var DefaultStyle = Style{Fg: core.ColorDefault, Bg: core.ColorDefault}

// Cell returns a cell showing symbol in this style.
func (s Style) Cell(symbol string) core.Cell {
	c := core.NewCell(symbol)
	c.Fg = s.Fg
	c.Bg = s.Bg
	c.Attrs = s.Attrs
	return c
}

// Reversed returns the style with the reverse attribute added.
func (s Style) Reversed() Style {
	s.Attrs = s.Attrs.With(core.AttrReverse)
	return s
}

// Buffer is a width x height grid of cells for one frame.
// Buffer is not safe for concurrent use.
type Buffer struct {
	width, height int
	cells         [][]core.Cell
}

// NewBuffer creates a buffer filled with empty cells.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:  max(width, 0),
		height: max(height, 0),
	}
	b.allocate()
	return b
}

func (b *Buffer) allocate() {
	b.cells = make([][]core.Cell, b.height)
	empty := core.EmptyCell()
	for y := range b.cells {
		b.cells[y] = make([]core.Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = empty
		}
	}
}

// Resize resizes the buffer, preserving content where possible.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == b.width && height == b.height {
		return
	}

	old := b.cells
	oldWidth, oldHeight := b.width, b.height

	b.width = width
	b.height = height
	b.allocate()

	copyHeight := min(oldHeight, height)
	copyWidth := min(oldWidth, width)
	for y := 0; y < copyHeight; y++ {
		copy(b.cells[y][:copyWidth], old[y][:copyWidth])
	}

	// a wide symbol cut in half by the new right edge becomes a space
	if copyWidth > 0 && copyWidth < oldWidth {
		for y := 0; y < copyHeight; y++ {
			last := b.cells[y][copyWidth-1]
			if core.SymbolWidth(last.Symbol) == 2 {
				last.Symbol = " "
				b.cells[y][copyWidth-1] = last
			}
		}
	}
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Area returns the whole buffer as a rectangle.
func (b *Buffer) Area() core.ScreenRect {
	return core.RectFromSize(0, 0, b.height, b.width)
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetCell sets one cell. Out of bounds positions are ignored.
func (b *Buffer) SetCell(x, y int, cell core.Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y][x] = cell
}

// GetCell returns a cell, or an empty cell outside the grid.
func (b *Buffer) GetCell(x, y int) core.Cell {
	if !b.inBounds(x, y) {
		return core.EmptyCell()
	}
	return b.cells[y][x]
}

// Fill fills a rectangle with the given cell, clipped to the grid.
func (b *Buffer) Fill(rect core.ScreenRect, cell core.Cell) {
	rect = rect.Intersection(b.Area())
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			b.cells[y][x] = cell
		}
	}
}

// Clear resets every cell to empty.
func (b *Buffer) Clear() {
	b.Fill(b.Area(), core.EmptyCell())
}

// SetString writes s starting at (x, y), one grapheme cluster per cell.
// Wide clusters take two columns; the second holds an empty continuation
// cell. Writing stops at maxX (exclusive) or the right edge, whichever is
// first, and a wide cluster that would straddle it is dropped. It returns
// the column after the last cell written.
func (b *Buffer) SetString(x, y int, s string, style Style, maxX int) int {
	if y < 0 || y >= b.height {
		return x
	}
	limit := min(maxX, b.width)
	col := x
	for _, g := range core.Graphemes(s) {
		if col+g.Width > limit {
			break
		}
		if col >= 0 {
			b.cells[y][col] = style.Cell(g.Symbol)
		}
		if g.Width == 2 && col+1 >= 0 {
			tail := ""
			if col < 0 {
				tail = " "
			}
			b.cells[y][col+1] = style.Cell(tail)
		}
		col += g.Width
	}
	return col
}

// SetStyle restyles a rectangle without touching symbols.
func (b *Buffer) SetStyle(rect core.ScreenRect, style Style) {
	rect = rect.Intersection(b.Area())
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			c := &b.cells[y][x]
			c.Fg = style.Fg
			c.Bg = style.Bg
			c.Attrs = style.Attrs
		}
	}
}

// Cells yields every cell in row-major order, skipping continuation cells.
func (b *Buffer) Cells() iter.Seq[core.Placement] {
	return func(yield func(core.Placement) bool) {
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				c := b.cells[y][x]
				if c.IsContinuation() {
					continue
				}
				if !yield(core.Placement{X: x, Y: y, Cell: c}) {
					return
				}
			}
		}
	}
}

// Row returns the symbols of row y joined together.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	n := 0
	for _, c := range b.cells[y] {
		n += len(c.Symbol)
	}
	out := make([]byte, 0, n)
	for _, c := range b.cells[y] {
		out = append(out, c.Symbol...)
	}
	return string(out)
}
