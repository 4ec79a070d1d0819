package backend

import (
	"iter"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

// Terminal implements Backend using tcell for terminal output.
// It renders the same frames as Canvas on a real tty.
type Terminal struct {
	screen        tcell.Screen
	cursorX       int
	cursorY       int
	cursorVisible bool
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, e.g. a simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, cursorVisible: true}
}

// Init initializes the screen. Must be called before drawing.
func (t *Terminal) Init() error {
	return t.screen.Init()
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.screen.Fini()
}

// Draw clears the screen and writes every cell. Output reaches the tty on
// Flush.
func (t *Terminal) Draw(cells iter.Seq[core.Placement]) error {
	t.screen.Clear()
	for pl := range cells {
		runes := []rune(pl.Cell.Symbol)
		if len(runes) == 0 {
			continue
		}
		t.screen.SetContent(pl.X, pl.Y, runes[0], runes[1:], convertStyle(pl.Cell))
	}
	return nil
}

func (t *Terminal) HideCursor() error {
	t.cursorVisible = false
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) ShowCursor() error {
	t.cursorVisible = true
	t.screen.ShowCursor(t.cursorX, t.cursorY)
	return nil
}

func (t *Terminal) GetCursor() (int, int, error) {
	return t.cursorX, t.cursorY, nil
}

func (t *Terminal) SetCursor(x, y int) error {
	t.cursorX, t.cursorY = x, y
	if t.cursorVisible {
		t.screen.ShowCursor(x, y)
	}
	return nil
}

func (t *Terminal) Clear() error {
	return t.ClearRegion(ClearAll)
}

// ClearRegion clears the whole screen for every mode, matching Canvas.
func (t *Terminal) ClearRegion(ClearType) error {
	t.screen.Clear()
	return nil
}

// AppendLines is a no-op; tcell owns the whole screen and has no scrollback.
func (t *Terminal) AppendLines(int) error {
	return nil
}

func (t *Terminal) Size() (core.Size, error) {
	w, h := t.screen.Size()
	return core.Size{Width: w, Height: h}, nil
}

// WindowSize reports the pixel size when the tty exposes it.
func (t *Terminal) WindowSize() (WindowSize, error) {
	w, h := t.screen.Size()
	ws := WindowSize{ColumnsRows: core.Size{Width: w, Height: h}}
	if tty, ok := t.screen.Tty(); ok {
		if px, err := tty.WindowSize(); err == nil {
			ws.Pixels = core.Size{Width: px.PixelWidth, Height: px.PixelHeight}
		}
	}
	return ws, nil
}

func (t *Terminal) Flush() error {
	t.screen.Show()
	return nil
}

// PollEvent waits for the next input event. Events the loop does not care
// about come back as EventNone. A nil tcell event means the screen was
// finalized.
func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return convertEvent(ev), true
}

// convertStyle converts a cell's colors and attributes to tcell.Style.
func convertStyle(c core.Cell) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(c.Fg.ToTcell()).
		Background(c.Bg.ToTcell())

	if c.Attrs.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if c.Attrs.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if c.Attrs.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if c.Attrs.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if c.Attrs.Has(core.AttrBlink) {
		style = style.Blink(true)
	}
	if c.Attrs.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	if c.Attrs.Has(core.AttrStrikethrough) {
		style = style.StrikeThrough(true)
	}

	return style
}

// keyNames maps tcell special keys to DOM key names.
var keyNames = map[tcell.Key]string{
	tcell.KeyEscape:     "Escape",
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	case *tcell.EventFocus:
		return Event{
			Type:    EventFocus,
			Focused: e.Focused,
		}

	default:
		return Event{Type: EventNone}
	}
}

// convertKey names a key event. Control keys become their letter, with
// ModCtrl reported by convertMod.
func convertKey(e *tcell.EventKey) string {
	if e.Key() == tcell.KeyRune {
		return string(e.Rune())
	}
	if name, ok := keyNames[e.Key()]; ok {
		return name
	}
	if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
		return string(rune('a' + (e.Key() - tcell.KeyCtrlA)))
	}
	return ""
}

// convertMod converts tcell modifier mask to our ModMask.
func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}
