package demo

import (
	"strconv"

	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/frame"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders a one-row bar with a label, the grid size and the
// table position, or a message in its place.
type StatusLine struct {
	label       string
	cols, rows  int
	row, total  int
	message     string
	messageType MessageType

	LabelStyle frame.Style
	BarStyle   frame.Style
}

// NewStatusLine creates a status line showing label on the left.
func NewStatusLine(label string) *StatusLine {
	return &StatusLine{
		label:      label,
		LabelStyle: frame.Style{Fg: core.ColorBlack, Bg: core.ColorCyan, Attrs: core.AttrBold},
		BarStyle:   frame.Style{Fg: core.ColorWhite, Bg: core.ColorDarkGray},
	}
}

// SetGrid updates the displayed grid size.
func (s *StatusLine) SetGrid(cols, rows int) {
	s.cols, s.rows = cols, rows
}

// SetPosition updates the selected row (0-based, negative for none) and
// the row count.
func (s *StatusLine) SetPosition(row, total int) {
	s.row, s.total = row, total
}

// SetMessage displays a message instead of the bar until cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string {
	return s.message
}

// Render draws the status line on row y of buf.
func (s *StatusLine) Render(buf *frame.Buffer, y int) {
	width, _ := buf.Size()
	if s.message != "" {
		s.renderMessage(buf, y, width)
		return
	}

	buf.Fill(core.RectFromSize(y, 0, 1, width), s.BarStyle.Cell(" "))
	col := buf.SetString(0, y, " "+s.label+" ", s.LabelStyle, width)

	info := s.formatPosition()
	start := width - core.StringWidth(info) - 1
	if start > col {
		buf.SetString(start, y, info, s.BarStyle, width)
	}
}

func (s *StatusLine) renderMessage(buf *frame.Buffer, y, width int) {
	var style frame.Style
	switch s.messageType {
	case MessageError:
		style = frame.Style{Fg: core.ColorLightRed, Bg: core.ColorDefault, Attrs: core.AttrBold}
	case MessageWarning:
		style = frame.Style{Fg: core.ColorYellow, Bg: core.ColorDefault}
	default:
		style = frame.DefaultStyle
	}
	buf.Fill(core.RectFromSize(y, 0, 1, width), style.Cell(" "))
	buf.SetString(0, y, s.message, style, width)
}

// formatPosition formats the right side, e.g. "80x24 | Row 3/19 | 10%".
func (s *StatusLine) formatPosition() string {
	result := strconv.Itoa(s.cols) + "x" + strconv.Itoa(s.rows)
	if s.total == 0 {
		return result
	}
	if s.row < 0 {
		return result + " | " + strconv.Itoa(s.total) + " rows"
	}

	result += " | Row " + strconv.Itoa(s.row+1) + "/" + strconv.Itoa(s.total)
	switch {
	case s.row == 0:
		result += " | Top"
	case s.row >= s.total-1:
		result += " | Bot"
	default:
		result += " | " + strconv.Itoa(s.row*100/(s.total-1)) + "%"
	}
	return result
}
