package demo

import (
	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/frame"
)

// View lays out the table above an optional status line.
type View struct {
	Table  *Table
	Status *StatusLine

	// ShowStatus reserves the bottom row for the status line.
	ShowStatus bool
}

// NewView creates a view over table with a status line labelled label.
func NewView(table *Table, label string) *View {
	return &View{
		Table:      table,
		Status:     NewStatusLine(label),
		ShowStatus: true,
	}
}

// Render clears buf and draws the whole view.
func (v *View) Render(buf *frame.Buffer) {
	buf.Clear()
	width, height := buf.Size()
	if width == 0 || height == 0 {
		return
	}

	tableHeight := height
	if v.ShowStatus && height > 1 {
		tableHeight--
		selected, _ := v.Table.Selected()
		v.Status.SetGrid(width, height)
		v.Status.SetPosition(selected, len(v.Table.Rows))
		v.Status.Render(buf, height-1)
	}
	v.Table.Render(buf, core.RectFromSize(0, 0, tableHeight, width))
}
