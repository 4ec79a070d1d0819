package backend

import (
	"bufio"
	"bytes"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/surface"
)

func newTestCanvas(t *testing.T, width, height float64) (*Canvas, *surface.Recorder) {
	t.Helper()
	rec := surface.NewRecorder(width, height)
	c, err := NewCanvas(rec, nil)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	rec.Reset()
	return c, rec
}

func cells(pls ...core.Placement) iter.Seq[core.Placement] {
	return slices.Values(pls)
}

func TestNewCanvasAssertsBufferSize(t *testing.T) {
	rec := surface.NewRecorder(160, 180)
	if _, err := NewCanvas(rec, nil); err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	w, h := rec.BufferSize()
	if w != 160 || h != 180 {
		t.Errorf("buffer size = %dx%d, want 160x180", w, h)
	}
}

func TestNewCanvasSurfaceUnavailable(t *testing.T) {
	rec := surface.NewRecorder(160, 180)
	rec.Detach()

	_, err := NewCanvas(rec, nil)
	if !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if !errors.Is(err, surface.ErrUnavailable) {
		t.Errorf("expected the surface cause to be kept, got %v", err)
	}

	if _, err := NewCanvas(nil, nil); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("nil surface: expected ErrSurfaceUnavailable, got %v", err)
	}
}

func TestCanvasDrawSingleCell(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	cell := core.NewCell("A").WithFg(core.ColorRed)
	if err := c.Draw(cells(core.Placement{X: 0, Y: 0, Cell: cell})); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	want := []surface.Op{
		{Kind: surface.OpSetFillStyle, Text: "#263238"},
		{Kind: surface.OpFillRect, X: 0, Y: 0, W: 160, H: 180},
		{Kind: surface.OpMoveTo, X: 0, Y: 5},
		{Kind: surface.OpFillRect, X: 0, Y: 5, W: 16, H: 18},
		{Kind: surface.OpSetFont, Text: "16px monospace"},
		{Kind: surface.OpSetFillStyle, Text: "#800000"},
		{Kind: surface.OpFillText, Text: "A", X: 0, Y: 22},
	}
	if !slices.Equal(rec.Ops, want) {
		t.Errorf("ops mismatch\ngot:\n%s\nwant:\n%v", rec.Dump(), want)
	}
}

func TestCanvasDrawFillsEveryCell(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	var pls []core.Placement
	for y := range 2 {
		for x := range 3 {
			sym := " "
			if (x+y)%2 == 0 {
				sym = "x"
			}
			cell := core.NewCell(sym)
			if x == 1 {
				cell = cell.WithBg(core.ColorBlue)
			}
			pls = append(pls, core.Placement{X: x, Y: y, Cell: cell})
		}
	}

	if err := c.Draw(slices.Values(pls)); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	rects := rec.Filter(surface.OpFillRect)
	if len(rects) != 1+len(pls) {
		t.Fatalf("expected %d fills, got %d\n%s", 1+len(pls), len(rects), rec.Dump())
	}
	for i, pl := range pls {
		x, y := CellOrigin(pl.X, pl.Y)
		r := rects[i+1]
		if r.X != x || r.Y != y || r.W != CellWidth || r.H != LineHeight {
			t.Errorf("cell (%d,%d) fill = %v, want origin (%g,%g)", pl.X, pl.Y, r, x, y)
		}
	}
	if n := rec.Count(surface.OpFillText); n != len(pls) {
		t.Errorf("expected %d glyph paints including spaces, got %d", len(pls), n)
	}
}

func TestCanvasDrawMovesOnlyWhenNotAdjacent(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	cell := core.NewCell("a")
	err := c.Draw(cells(
		core.Placement{X: 0, Y: 0, Cell: cell},
		core.Placement{X: 1, Y: 0, Cell: cell},
		core.Placement{X: 3, Y: 0, Cell: cell},
		core.Placement{X: 4, Y: 0, Cell: cell},
		core.Placement{X: 5, Y: 1, Cell: cell},
		core.Placement{X: 6, Y: 1, Cell: cell},
	))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	moves := rec.Filter(surface.OpMoveTo)
	want := [][2]float64{{0, 5}, {48, 5}, {80, 23}}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves, got %d\n%s", len(want), len(moves), rec.Dump())
	}
	for i, m := range moves {
		if m.X != want[i][0] || m.Y != want[i][1] {
			t.Errorf("move %d = (%g,%g), want (%g,%g)", i, m.X, m.Y, want[i][0], want[i][1])
		}
	}
}

func TestCanvasDrawElidesRepeatedStyle(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	cell := core.NewCell("a").WithFg(core.ColorGreen).WithBg(core.ColorGreen)
	err := c.Draw(cells(
		core.Placement{X: 0, Y: 0, Cell: cell},
		core.Placement{X: 1, Y: 0, Cell: cell},
		core.Placement{X: 2, Y: 0, Cell: cell},
	))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// backdrop + one switch to green, shared by every bg and fg fill
	if n := rec.Count(surface.OpSetFillStyle); n != 2 {
		t.Errorf("expected 2 fill style changes, got %d\n%s", n, rec.Dump())
	}
	if n := rec.Count(surface.OpSetFont); n != 1 {
		t.Errorf("expected 1 font change, got %d", n)
	}
}

func TestCanvasDrawResetsStyleStateEachFrame(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	frame := cells(core.Placement{X: 0, Y: 0, Cell: core.NewCell("a")})

	_ = c.Draw(frame)
	first := rec.Count(surface.OpSetFont)
	rec.Reset()
	_ = c.Draw(frame)

	if first != 1 || rec.Count(surface.OpSetFont) != 1 {
		t.Errorf("each frame should set the font again, got %d then %d", first, rec.Count(surface.OpSetFont))
	}
}

func TestCanvasDrawAttributes(t *testing.T) {
	tests := []struct {
		name  string
		cell  core.Cell
		check func(t *testing.T, rec *surface.Recorder)
	}{
		{
			name: "bold italic",
			cell: core.NewCell("b").WithAttrs(core.AttrBold | core.AttrItalic),
			check: func(t *testing.T, rec *surface.Recorder) {
				fonts := rec.Filter(surface.OpSetFont)
				if len(fonts) != 1 || fonts[0].Text != "italic bold 16px monospace" {
					t.Errorf("unexpected fonts %v", fonts)
				}
			},
		},
		{
			name: "reverse",
			cell: core.NewCell("r").WithFg(core.ColorRed).WithBg(core.ColorBlue).WithAttrs(core.AttrReverse),
			check: func(t *testing.T, rec *surface.Recorder) {
				styles := rec.Filter(surface.OpSetFillStyle)
				// backdrop, bg (red after swap), fg (blue after swap)
				if len(styles) != 3 || styles[1].Text != "#800000" || styles[2].Text != "#000080" {
					t.Errorf("unexpected fill styles\n%s", rec.Dump())
				}
			},
		},
		{
			name: "hidden",
			cell: core.NewCell("h").WithAttrs(core.AttrHidden),
			check: func(t *testing.T, rec *surface.Recorder) {
				if rec.Count(surface.OpFillText) != 0 {
					t.Error("hidden cell should not paint its glyph")
				}
				if rec.Count(surface.OpFillRect) != 2 {
					t.Error("hidden cell should still get its background")
				}
			},
		},
		{
			name: "underline with color",
			cell: func() core.Cell {
				c := core.NewCell("u").WithAttrs(core.AttrUnderline)
				c.UnderlineColor = core.ColorYellow
				return c
			}(),
			check: func(t *testing.T, rec *surface.Recorder) {
				rects := rec.Filter(surface.OpFillRect)
				last := rects[len(rects)-1]
				// last pixel row of row 0, above row 1's origin at 23
				if last.X != 0 || last.Y != 22 || last.W != 16 || last.H != 1 {
					t.Errorf("unexpected underline rect %v", last)
				}
				styles := rec.Filter(surface.OpSetFillStyle)
				if styles[len(styles)-1].Text != "#808000" {
					t.Errorf("underline should use its own color\n%s", rec.Dump())
				}
			},
		},
		{
			name: "strikethrough",
			cell: core.NewCell("s").WithAttrs(core.AttrStrikethrough),
			check: func(t *testing.T, rec *surface.Recorder) {
				rects := rec.Filter(surface.OpFillRect)
				last := rects[len(rects)-1]
				if last.Y != 5+LineHeight/2 || last.H != 1 {
					t.Errorf("unexpected strike rect %v", last)
				}
			},
		},
		{
			name: "dim",
			cell: core.NewCell("d").WithFg(core.ColorRed).WithAttrs(core.AttrDim),
			check: func(t *testing.T, rec *surface.Recorder) {
				styles := rec.Filter(surface.OpSetFillStyle)
				want := core.ColorRed.Blend(Backdrop, 0.5).CSS()
				// backdrop, bg, blended fg
				if len(styles) != 3 || styles[2].Text != want || want == core.ColorRed.CSS() {
					t.Errorf("expected fg %s\n%s", want, rec.Dump())
				}
			},
		},
		{
			name: "wide symbol",
			cell: core.NewCell("世").WithBg(core.ColorBlue).WithAttrs(core.AttrUnderline),
			check: func(t *testing.T, rec *surface.Recorder) {
				rects := rec.Filter(surface.OpFillRect)
				// backdrop, background, underline; both span two columns
				if len(rects) != 3 || rects[1].W != 2*CellWidth || rects[2].W != 2*CellWidth {
					t.Errorf("wide symbol should cover two columns\n%s", rec.Dump())
				}
			},
		},
		{
			name: "continuation",
			cell: core.Cell{Fg: core.ColorDefault, Bg: core.ColorDefault},
			check: func(t *testing.T, rec *surface.Recorder) {
				if rec.Count(surface.OpFillText) != 0 {
					t.Error("continuation cell should not paint text")
				}
				if rects := rec.Filter(surface.OpFillRect); rects[len(rects)-1].W != CellWidth {
					t.Errorf("continuation cell fills one column\n%s", rec.Dump())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestCanvas(t, 160, 180)
			if err := c.Draw(cells(core.Placement{Cell: tt.cell})); err != nil {
				t.Fatalf("Draw failed: %v", err)
			}
			tt.check(t, rec)
		})
	}
}

func TestCanvasDrawEmpty(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	if err := c.Draw(cells()); err != nil {
		t.Fatalf("Draw failed: %v", err)
	}
	if len(rec.Ops) != 2 {
		t.Errorf("empty frame should only paint the backdrop\n%s", rec.Dump())
	}
}

func TestCanvasDrawPaintFailure(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	boom := errors.New("rejected")
	rec.FailOn(surface.OpFillText, boom)

	err := c.Draw(cells(
		core.Placement{X: 0, Y: 0, Cell: core.NewCell("a")},
		core.Placement{X: 1, Y: 0, Cell: core.NewCell("b")},
	))

	var de *DrawError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DrawError, got %v", err)
	}
	if de.Op != "FillText" || de.X != 0 || de.Y != 0 || !errors.Is(err, boom) {
		t.Errorf("unexpected draw error %+v", de)
	}
	if rec.Count(surface.OpFillRect) != 2 {
		t.Error("frame should abort at the failing cell")
	}
	if !c.Attached() {
		t.Error("a paint failure should not detach the backend")
	}
}

func TestCanvasDrawWideSymbolSkipsContinuation(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	err := c.Draw(cells(
		core.Placement{X: 0, Y: 0, Cell: core.NewCell("世")},
		core.Placement{X: 2, Y: 0, Cell: core.NewCell("a")},
	))
	if err != nil {
		t.Fatalf("Draw failed: %v", err)
	}

	// the frame omits column 1, so "a" is not adjacent and needs a move
	moves := rec.Filter(surface.OpMoveTo)
	if len(moves) != 2 || moves[1].X != 32 {
		t.Errorf("unexpected moves\n%s", rec.Dump())
	}
}

func TestCanvasDetached(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	rec.Detach()

	err := c.Draw(cells(core.Placement{Cell: core.NewCell("a")}))
	if !errors.Is(err, ErrDetached) {
		t.Fatalf("expected ErrDetached, got %v", err)
	}
	if c.Attached() {
		t.Fatal("backend should be detached")
	}

	ops := []struct {
		name string
		fn   func() error
	}{
		{"draw", func() error { return c.Draw(cells()) }},
		{"size", func() error { _, err := c.Size(); return err }},
		{"window size", func() error { _, err := c.WindowSize(); return err }},
		{"clear", c.Clear},
		{"clear region", func() error { return c.ClearRegion(ClearCurrentLine) }},
		{"get cursor", func() error { _, _, err := c.GetCursor(); return err }},
		{"set cursor", func() error { return c.SetCursor(1, 1) }},
		{"hide cursor", c.HideCursor},
		{"show cursor", c.ShowCursor},
		{"append lines", func() error { return c.AppendLines(1) }},
		{"flush", c.Flush},
		{"write", func() error { _, err := c.Write([]byte("diag")); return err }},
	}
	for _, op := range ops {
		if err := op.fn(); !errors.Is(err, ErrDetached) {
			t.Errorf("%s: expected ErrDetached, got %v", op.name, err)
		}
	}
}

func TestCanvasSize(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	for range 2 {
		size, err := c.Size()
		if err != nil {
			t.Fatalf("Size failed: %v", err)
		}
		if size.Width != 10 || size.Height != 10 {
			t.Errorf("size = %dx%d, want 10x10", size.Width, size.Height)
		}
	}

	rec.Resize(320, 360)
	size, err := c.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size.Width != 20 || size.Height != 20 {
		t.Errorf("size after resize = %dx%d, want 20x20", size.Width, size.Height)
	}
	w, h := rec.BufferSize()
	if w != 320 || h != 360 {
		t.Errorf("buffer after resize = %dx%d, want 320x360", w, h)
	}
}

func TestCanvasSizeZero(t *testing.T) {
	c, _ := newTestCanvas(t, 0, 0)
	size, err := c.Size()
	if err != nil {
		t.Fatalf("zero-sized surface should not fail: %v", err)
	}
	if size.Width != 0 || size.Height != 0 {
		t.Errorf("expected 0x0, got %dx%d", size.Width, size.Height)
	}
}

func TestCanvasWindowSize(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	rec.SetDevicePixelRatio(2)

	ws, err := c.WindowSize()
	if err != nil {
		t.Fatalf("WindowSize failed: %v", err)
	}
	if ws.ColumnsRows != (core.Size{Width: 10, Height: 10}) {
		t.Errorf("grid = %+v, want 10x10", ws.ColumnsRows)
	}
	if ws.Pixels != (core.Size{Width: 320, Height: 360}) {
		t.Errorf("pixels = %+v, want 320x360", ws.Pixels)
	}
}

func TestCanvasClear(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)
	want := surface.Op{Kind: surface.OpClearRect, X: 0, Y: 0, W: 160, H: 180}

	modes := []ClearType{ClearAll, ClearAfterCursor, ClearBeforeCursor, ClearCurrentLine, ClearUntilNewLine}
	for _, mode := range modes {
		rec.Reset()
		if err := c.ClearRegion(mode); err != nil {
			t.Fatalf("ClearRegion(%s) failed: %v", mode, err)
		}
		if len(rec.Ops) != 1 || rec.Ops[0] != want {
			t.Errorf("ClearRegion(%s) ops:\n%s", mode, rec.Dump())
		}
	}

	rec.Reset()
	_ = c.Clear()
	_ = c.Clear()
	if len(rec.Ops) != 2 || rec.Ops[0] != want || rec.Ops[1] != want {
		t.Errorf("Clear twice should issue the same full clear:\n%s", rec.Dump())
	}
}

func TestCanvasCursor(t *testing.T) {
	c, rec := newTestCanvas(t, 160, 180)

	x, y, err := c.GetCursor()
	if err != nil || x != 0 || y != 0 {
		t.Errorf("default cursor = (%d,%d) %v, want (0,0)", x, y, err)
	}

	if err := c.SetCursor(3, 4); err != nil {
		t.Fatalf("SetCursor failed: %v", err)
	}
	x, y, _ = c.GetCursor()
	if x != 3 || y != 4 {
		t.Errorf("cursor = (%d,%d), want (3,4)", x, y)
	}
	moves := rec.Filter(surface.OpMoveTo)
	if len(moves) != 1 || moves[0].X != 48 || moves[0].Y != 77 {
		t.Errorf("unexpected path move %v", moves)
	}

	for range 2 {
		if err := c.HideCursor(); err != nil {
			t.Fatalf("HideCursor failed: %v", err)
		}
	}
	if c.CursorVisible() {
		t.Error("cursor should be hidden")
	}
	for range 2 {
		if err := c.ShowCursor(); err != nil {
			t.Fatalf("ShowCursor failed: %v", err)
		}
	}
	if !c.CursorVisible() {
		t.Error("cursor should be visible")
	}
	if len(rec.Ops) != 1 {
		t.Errorf("hide/show should not paint:\n%s", rec.Dump())
	}
}

func TestCanvasFlushForwardsToSink(t *testing.T) {
	rec := surface.NewRecorder(160, 180)
	var out bytes.Buffer
	sink := bufio.NewWriter(&out)

	c, err := NewCanvas(rec, sink)
	if err != nil {
		t.Fatalf("NewCanvas failed: %v", err)
	}
	rec.Reset()

	if _, err := c.Write([]byte("diag")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatal("sink should still be buffered")
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if out.String() != "diag" {
		t.Errorf("sink = %q, want diag", out.String())
	}

	_, _ = c.Write([]byte("+more"))
	if err := c.AppendLines(3); err != nil {
		t.Fatalf("AppendLines failed: %v", err)
	}
	if out.String() != "diag+more" {
		t.Errorf("AppendLines should flush the sink, got %q", out.String())
	}
	if len(rec.Ops) != 0 {
		t.Errorf("flush and append should not touch the surface:\n%s", rec.Dump())
	}
}
