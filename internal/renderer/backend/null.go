package backend

import (
	"iter"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

// NullBackend is an in-memory backend for testing.
// It keeps the last drawn frame and counts calls.
type NullBackend struct {
	width, height int
	cells         [][]core.Cell
	cursorX       int
	cursorY       int
	cursorVisible bool

	// Call counters for assertions.
	Draws   int
	Clears  int
	Flushes int

	// DrawErr, when set, is returned by Draw.
	DrawErr error
}

// NewNullBackend creates a null backend with the given grid dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:         width,
		height:        height,
		cursorVisible: true,
	}
	b.allocate()
	return b
}

func (b *NullBackend) allocate() {
	b.cells = make([][]core.Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]core.Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = core.EmptyCell()
		}
	}
}

func (b *NullBackend) Draw(cells iter.Seq[core.Placement]) error {
	if b.DrawErr != nil {
		return b.DrawErr
	}
	b.Draws++
	b.allocate()
	for pl := range cells {
		if pl.X >= 0 && pl.X < b.width && pl.Y >= 0 && pl.Y < b.height {
			b.cells[pl.Y][pl.X] = pl.Cell
		}
	}
	return nil
}

func (b *NullBackend) HideCursor() error {
	b.cursorVisible = false
	return nil
}

func (b *NullBackend) ShowCursor() error {
	b.cursorVisible = true
	return nil
}

func (b *NullBackend) GetCursor() (int, int, error) {
	return b.cursorX, b.cursorY, nil
}

func (b *NullBackend) SetCursor(x, y int) error {
	b.cursorX = x
	b.cursorY = y
	return nil
}

func (b *NullBackend) Clear() error {
	return b.ClearRegion(ClearAll)
}

func (b *NullBackend) ClearRegion(ClearType) error {
	b.Clears++
	b.allocate()
	return nil
}

func (b *NullBackend) AppendLines(int) error { return nil }

func (b *NullBackend) Size() (core.Size, error) {
	return core.Size{Width: b.width, Height: b.height}, nil
}

func (b *NullBackend) WindowSize() (WindowSize, error) {
	return WindowSize{
		ColumnsRows: core.Size{Width: b.width, Height: b.height},
		Pixels:      core.Size{Width: int(float64(b.width) * CellWidth), Height: int(float64(b.height) * LineHeight)},
	}, nil
}

func (b *NullBackend) Flush() error {
	b.Flushes++
	return nil
}

// GetCell returns the cell drawn at the given position in the last frame.
// Returns an empty cell for positions outside the grid.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return core.EmptyCell()
}

// Row returns the symbols of one row of the last frame joined together.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var s string
	for _, c := range b.cells[y] {
		s += c.Symbol
	}
	return s
}

// CursorVisible returns the cursor visibility flag.
func (b *NullBackend) CursorVisible() bool {
	return b.cursorVisible
}

// Resize simulates a display resize for testing.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.allocate()
}
