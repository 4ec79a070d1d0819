// Package demo contains the sample views drawn by the hosts: a bordered,
// scrollable table with a selectable row and a status line.
package demo

import (
	"fmt"
	"strings"

	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/frame"
)

// HighlightSymbol prefixes the selected row.
const HighlightSymbol = ">> "

// Table is a bordered table with a header and selectable rows. Cells may
// hold several lines separated by '\n'; a row is as tall as its tallest
// cell. Every row, the header included, is followed by one blank line.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string

	// Widths are column widths in percent of the space left after the
	// highlight symbol and column gaps. Missing entries share the rest.
	Widths []int

	HeaderStyle   frame.Style
	HeaderFg      core.Color
	SelectedStyle frame.Style

	selected int
	offset   int
}

// NewTable creates a table with the default styles and no selection.
func NewTable(title string, header []string, rows [][]string) *Table {
	return &Table{
		Title:         title,
		Header:        header,
		Rows:          rows,
		HeaderStyle:   frame.Style{Fg: core.ColorDefault, Bg: core.ColorBlue},
		HeaderFg:      core.ColorRed,
		SelectedStyle: frame.DefaultStyle.Reversed(),
		selected:      -1,
	}
}

// SampleRows generates n rows of three cells named "Row<i><j>".
func SampleRows(n int) [][]string {
	rows := make([][]string, n)
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("Row%d1", i+1),
			fmt.Sprintf("Row%d2", i+1),
			fmt.Sprintf("Row%d3", i+1),
		}
	}
	return rows
}

// Selected returns the selected row index.
func (t *Table) Selected() (int, bool) {
	return t.selected, t.selected >= 0
}

// Select selects row i; an index outside the rows clears the selection.
func (t *Table) Select(i int) {
	if i < 0 || i >= len(t.Rows) {
		t.selected = -1
		return
	}
	t.selected = i
}

// Next selects the following row, wrapping to the first.
func (t *Table) Next() {
	if len(t.Rows) == 0 {
		return
	}
	switch {
	case t.selected < 0, t.selected >= len(t.Rows)-1:
		t.selected = 0
	default:
		t.selected++
	}
}

// Previous selects the preceding row, wrapping to the last.
func (t *Table) Previous() {
	if len(t.Rows) == 0 {
		return
	}
	switch {
	case t.selected < 0:
		t.selected = 0
	case t.selected == 0:
		t.selected = len(t.Rows) - 1
	default:
		t.selected--
	}
}

// SetRows replaces the rows, keeping the selection when still valid.
func (t *Table) SetRows(rows [][]string) {
	t.Rows = rows
	if t.selected >= len(rows) {
		t.selected = len(rows) - 1
	}
	t.offset = 0
}

// Offset returns the index of the first visible row.
func (t *Table) Offset() int {
	return t.offset
}

func rowHeight(row []string) int {
	h := 1
	for _, c := range row {
		h = max(h, strings.Count(c, "\n")+1)
	}
	return h
}

// Render draws the table into area, clipped to the buffer.
func (t *Table) Render(buf *frame.Buffer, area core.ScreenRect) {
	area = area.Intersection(buf.Area())
	if area.IsEmpty() {
		return
	}
	renderBlock(buf, area, t.Title)

	inner := area.Inset(1, 1, 1, 1)
	if inner.IsEmpty() {
		return
	}

	symbolWidth := 0
	if t.selected >= 0 {
		symbolWidth = core.StringWidth(HighlightSymbol)
	}
	columns := t.columns(inner.Left+symbolWidth, inner.Width()-symbolWidth)

	y := inner.Top
	if len(t.Header) > 0 {
		buf.SetStyle(core.RectFromSize(y, inner.Left, 1, inner.Width()), t.HeaderStyle)
		headerStyle := t.HeaderStyle
		headerStyle.Fg = t.HeaderFg
		for i, col := range columns {
			if i < len(t.Header) {
				buf.SetString(col.left, y, t.Header[i], headerStyle, col.left+col.width)
			}
		}
		y += 2
	}
	if y >= inner.Bottom {
		return
	}

	t.scrollTo(inner.Bottom - y)
	for i := t.offset; i < len(t.Rows) && y < inner.Bottom; i++ {
		row := t.Rows[i]
		h := rowHeight(row)
		visible := min(h, inner.Bottom-y)

		style := frame.DefaultStyle
		if i == t.selected {
			style = t.SelectedStyle
			buf.SetStyle(core.RectFromSize(y, inner.Left, visible, inner.Width()), style)
			buf.SetString(inner.Left, y, HighlightSymbol, style, inner.Left+symbolWidth)
		}
		for c, col := range columns {
			if c >= len(row) {
				break
			}
			for l, line := range strings.Split(row[c], "\n") {
				if l >= visible {
					break
				}
				buf.SetString(col.left, y+l, line, style, col.left+col.width)
			}
		}
		y += h + 1
	}
}

// scrollTo moves the offset so the selected row fits in height lines.
func (t *Table) scrollTo(height int) {
	if t.selected < 0 {
		t.offset = min(t.offset, max(len(t.Rows)-1, 0))
		return
	}
	if t.selected < t.offset {
		t.offset = t.selected
	}
	for t.offset < t.selected && t.span(t.offset, t.selected) > height {
		t.offset++
	}
}

// span is the number of lines rows first..last take, without the margin
// after last.
func (t *Table) span(first, last int) int {
	n := 0
	for i := first; i <= last; i++ {
		n += rowHeight(t.Rows[i]) + 1
	}
	return n - 1
}

type column struct {
	left, width int
}

// columns splits width among the columns, one cell apart.
func (t *Table) columns(left, width int) []column {
	n := len(t.Header)
	for _, r := range t.Rows {
		n = max(n, len(r))
	}
	if n == 0 || width <= 0 {
		return nil
	}

	avail := max(width-(n-1), 0)
	widths := make([]int, n)
	used, free := 0, 0
	for i := range widths {
		if i < len(t.Widths) {
			widths[i] = avail * t.Widths[i] / 100
			used += widths[i]
		} else {
			free++
		}
	}
	if free > 0 {
		share := max(avail-used, 0) / free
		for i := len(t.Widths); i < n; i++ {
			widths[i] = share
		}
	}

	cols := make([]column, n)
	x := left
	for i, w := range widths {
		cols[i] = column{left: x, width: w}
		x += w + 1
	}
	return cols
}

// renderBlock draws a single-line border around area with title on the top
// edge.
func renderBlock(buf *frame.Buffer, area core.ScreenRect, title string) {
	style := frame.DefaultStyle
	top, bottom := area.Top, area.Bottom-1
	left, right := area.Left, area.Right-1

	for x := left; x <= right; x++ {
		buf.SetCell(x, top, style.Cell("─"))
		buf.SetCell(x, bottom, style.Cell("─"))
	}
	for y := top; y <= bottom; y++ {
		buf.SetCell(left, y, style.Cell("│"))
		buf.SetCell(right, y, style.Cell("│"))
	}
	buf.SetCell(left, top, style.Cell("┌"))
	buf.SetCell(right, top, style.Cell("┐"))
	buf.SetCell(left, bottom, style.Cell("└"))
	buf.SetCell(right, bottom, style.Cell("┘"))

	if title != "" {
		buf.SetString(left+1, top, title, style, right)
	}
}
