package backend

import (
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/canvasterm/internal/renderer/core"
)

func newSimTerminal(t *testing.T, width, height int) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(width, height)
	return term, screen
}

func TestTerminalSize(t *testing.T) {
	term, _ := newSimTerminal(t, 40, 12)

	size, err := term.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size.Width != 40 || size.Height != 12 {
		t.Errorf("size = %dx%d, want 40x12", size.Width, size.Height)
	}
	ws, err := term.WindowSize()
	if err != nil {
		t.Fatalf("WindowSize failed: %v", err)
	}
	if ws.ColumnsRows != size {
		t.Errorf("window grid %+v should match size %+v", ws.ColumnsRows, size)
	}
}

func TestTerminalDraw(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 3)

	cell := core.NewCell("Z").WithFg(core.ColorRed).WithAttrs(core.AttrBold)
	err := term.Draw(slices.Values([]core.Placement{
		{X: 2, Y: 1, Cell: cell},
		{X: 3, Y: 1, Cell: core.Cell{}},
	}))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	cells, width, _ := screen.GetContents()
	got := cells[1*width+2]
	if len(got.Runes) == 0 || got.Runes[0] != 'Z' {
		t.Fatalf("expected Z at (2,1), got %q", string(got.Runes))
	}
	fg, _, attrs := got.Style.Decompose()
	if fg != tcell.ColorMaroon {
		t.Errorf("fg = %v, want maroon", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("expected bold")
	}
}

func TestTerminalCursor(t *testing.T) {
	term, _ := newSimTerminal(t, 10, 3)

	if err := term.SetCursor(4, 2); err != nil {
		t.Fatalf("SetCursor failed: %v", err)
	}
	x, y, _ := term.GetCursor()
	if x != 4 || y != 2 {
		t.Errorf("cursor = (%d,%d), want (4,2)", x, y)
	}
	_ = term.HideCursor()
	if term.cursorVisible {
		t.Error("cursor should be hidden")
	}
	_ = term.ShowCursor()
	if !term.cursorVisible {
		t.Error("cursor should be visible")
	}
}

func TestConvertStyle(t *testing.T) {
	cell := core.NewCell("a").
		WithFg(core.ColorFromRGB(1, 2, 3)).
		WithBg(core.ColorFromIndex(42)).
		WithAttrs(core.AttrItalic | core.AttrReverse | core.AttrStrikethrough)

	fg, bg, attrs := convertStyle(cell).Decompose()
	if fg != tcell.NewRGBColor(1, 2, 3) {
		t.Errorf("fg = %v", fg)
	}
	if bg != tcell.PaletteColor(42) {
		t.Errorf("bg = %v", bg)
	}
	for _, want := range []tcell.AttrMask{tcell.AttrItalic, tcell.AttrReverse, tcell.AttrStrikeThrough} {
		if attrs&want == 0 {
			t.Errorf("missing attribute %v", want)
		}
	}
	if attrs&tcell.AttrBold != 0 {
		t.Error("unexpected bold")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		key  string
		mod  ModMask
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), "j", 0},
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "ArrowDown", 0},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape", 0},
		{"shifted arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "ArrowUp", ModShift},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "c", ModCtrl},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "F5", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := convertEvent(tt.ev)
			if ev.Type != EventKey {
				t.Fatalf("type = %v, want key", ev.Type)
			}
			if ev.Key != tt.key {
				t.Errorf("key = %q, want %q", ev.Key, tt.key)
			}
			if ev.Mod != tt.mod {
				t.Errorf("mod = %v, want %v", ev.Mod, tt.mod)
			}
		})
	}
}

func TestConvertResizeEvent(t *testing.T) {
	ev := convertEvent(tcell.NewEventResize(120, 40))
	if ev.Type != EventResize || ev.Width != 120 || ev.Height != 40 {
		t.Errorf("unexpected resize event %+v", ev)
	}
}

func TestTerminalPollEvent(t *testing.T) {
	term, screen := newSimTerminal(t, 10, 3)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	// the simulation screen may report its initial size first
	for range 4 {
		ev, ok := term.PollEvent()
		if !ok {
			t.Fatal("screen closed early")
		}
		if ev.Type == EventKey {
			if ev.Key != "q" {
				t.Errorf("key = %q, want q", ev.Key)
			}
			return
		}
	}
	t.Error("key event never arrived")
}
