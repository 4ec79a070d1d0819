// Package backend provides display backends for a grid of styled cells.
//
// Canvas paints onto a 2D drawing surface (see package surface), Terminal
// writes to a tty through tcell, and NullBackend records frames for tests.
// All three implement Backend, the contract the event loop draws through.
package backend

import (
	"iter"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

// ClearType selects which part of the display to clear.
// Backends that cannot clear partially treat every mode as ClearAll.
type ClearType int

const (
	ClearAll ClearType = iota
	ClearAfterCursor
	ClearBeforeCursor
	ClearCurrentLine
	ClearUntilNewLine
)

// String returns the clear mode name.
func (c ClearType) String() string {
	switch c {
	case ClearAll:
		return "all"
	case ClearAfterCursor:
		return "after-cursor"
	case ClearBeforeCursor:
		return "before-cursor"
	case ClearCurrentLine:
		return "current-line"
	case ClearUntilNewLine:
		return "until-newline"
	default:
		return "unknown"
	}
}

// WindowSize reports the grid size together with the physical pixel size.
type WindowSize struct {
	ColumnsRows core.Size
	Pixels      core.Size
}

// Backend defines the interface for display backends.
// Implementations are driven from a single goroutine.
type Backend interface {
	// Draw renders one frame. Cells arrive row-major, left to right.
	Draw(cells iter.Seq[core.Placement]) error

	// HideCursor hides the cursor.
	HideCursor() error

	// ShowCursor shows the cursor.
	ShowCursor() error

	// GetCursor returns the last cursor position set, (0,0) by default.
	GetCursor() (x, y int, err error)

	// SetCursor moves the cursor.
	SetCursor(x, y int) error

	// Clear clears the whole display.
	Clear() error

	// ClearRegion clears part of the display.
	ClearRegion(clearType ClearType) error

	// AppendLines inserts n lines after the cursor.
	AppendLines(n int) error

	// Size returns the addressable grid size in columns and rows.
	Size() (core.Size, error)

	// WindowSize returns the grid size and the pixel size.
	WindowSize() (WindowSize, error)

	// Flush pushes pending output to the display.
	Flush() error
}

// EventType identifies the type of input event a backend reports.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventFocus
)

// Event represents an input event.
//
// Key uses the DOM KeyboardEvent.key naming ("ArrowDown", "Escape", "a")
// so browser and terminal hosts report identical names.
type Event struct {
	Type EventType

	// Key event fields
	Key string
	Mod ModMask

	// Resize event fields, in cells
	Width, Height int

	// Focus event fields
	Focused bool
}

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}
