package backend

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/dshills/canvasterm/internal/renderer/core"
	"github.com/dshills/canvasterm/internal/renderer/surface"
)

type canvasState int

const (
	stateAttached canvasState = iota
	stateDetached
)

// Canvas implements Backend on top of a 2D drawing surface.
//
// Every frame clears to the backdrop and repaints every cell; there is no
// damage tracking. Canvas is not safe for concurrent use.
type Canvas struct {
	surface surface.Surface
	sink    io.Writer
	state   canvasState

	cursorX, cursorY int
	cursorVisible    bool
}

// NewCanvas creates a canvas backend and sizes the surface's pixel buffer to
// its current bounding box. sink receives diagnostic bytes written through
// Write; nil discards them.
func NewCanvas(s surface.Surface, sink io.Writer) (*Canvas, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface", ErrSurfaceUnavailable)
	}
	if sink == nil {
		sink = io.Discard
	}

	c := &Canvas{
		surface:       s,
		sink:          sink,
		cursorVisible: true,
	}
	if _, _, err := c.assertBuffer(); err != nil {
		if errors.Is(err, surface.ErrUnavailable) {
			return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
		}
		return nil, err
	}
	return c, nil
}

// Attached reports whether the surface is still usable.
func (c *Canvas) Attached() bool {
	return c.state == stateAttached
}

// CursorVisible reports the cursor visibility flag.
func (c *Canvas) CursorVisible() bool {
	return c.cursorVisible
}

// Write passes diagnostic bytes to the sink.
func (c *Canvas) Write(p []byte) (int, error) {
	if err := c.check("write"); err != nil {
		return 0, err
	}
	return c.sink.Write(p)
}

// Draw clears the surface to the backdrop, then paints every cell.
// A rejected surface call aborts the frame and is returned as a *DrawError;
// whatever was already painted stays.
func (c *Canvas) Draw(cells iter.Seq[core.Placement]) error {
	if err := c.check("draw"); err != nil {
		return err
	}

	width, height, err := c.bounds()
	if err != nil {
		return c.fail(&DrawError{Op: "BoundingRect", X: -1, Y: -1, Err: err})
	}

	p := painter{s: c.surface}
	if err := p.backdrop(width, height); err != nil {
		return c.fail(err)
	}

	var prev core.Placement
	first := true
	for pl := range cells {
		adjacent := !first && pl.Y == prev.Y && pl.X == prev.X+1
		if err := p.paint(pl, !adjacent); err != nil {
			return c.fail(err)
		}
		prev, first = pl, false
	}
	return nil
}

// HideCursor clears the visibility flag. The cursor is never painted.
func (c *Canvas) HideCursor() error {
	if err := c.check("hide cursor"); err != nil {
		return err
	}
	c.cursorVisible = false
	return nil
}

// ShowCursor sets the visibility flag.
func (c *Canvas) ShowCursor() error {
	if err := c.check("show cursor"); err != nil {
		return err
	}
	c.cursorVisible = true
	return nil
}

// GetCursor returns the last position given to SetCursor.
func (c *Canvas) GetCursor() (int, int, error) {
	if err := c.check("get cursor"); err != nil {
		return 0, 0, err
	}
	return c.cursorX, c.cursorY, nil
}

// SetCursor records the cursor position and moves the surface path to the
// cell origin.
func (c *Canvas) SetCursor(x, y int) error {
	if err := c.check("set cursor"); err != nil {
		return err
	}
	px, py := CellOrigin(x, y)
	if err := c.surface.MoveTo(px, py); err != nil {
		return c.fail(fmt.Errorf("set cursor: %w", err))
	}
	c.cursorX, c.cursorY = x, y
	return nil
}

// Clear clears the whole surface.
func (c *Canvas) Clear() error {
	return c.ClearRegion(ClearAll)
}

// ClearRegion clears the whole visible surface whatever the mode; partial
// clears are not supported.
func (c *Canvas) ClearRegion(clearType ClearType) error {
	if err := c.check("clear " + clearType.String()); err != nil {
		return err
	}
	width, height, err := c.bounds()
	if err != nil {
		return c.fail(fmt.Errorf("clear: %w", err))
	}
	if err := c.surface.ClearRect(0, 0, width, height); err != nil {
		return c.fail(fmt.Errorf("clear: %w", err))
	}
	return nil
}

// AppendLines does not scroll; it only flushes the diagnostic sink.
func (c *Canvas) AppendLines(n int) error {
	if err := c.check("append lines"); err != nil {
		return err
	}
	return c.flushSink()
}

// Size re-reads the surface bounding box, resizes the pixel buffer to it
// and returns the grid that fits.
func (c *Canvas) Size() (core.Size, error) {
	if err := c.check("size"); err != nil {
		return core.Size{}, err
	}
	width, height, err := c.assertBuffer()
	if err != nil {
		return core.Size{}, c.fail(fmt.Errorf("size: %w", err))
	}
	return GridSize(width, height), nil
}

// WindowSize returns the same grid as Size together with the bounding box
// in physical pixels.
func (c *Canvas) WindowSize() (WindowSize, error) {
	if err := c.check("window size"); err != nil {
		return WindowSize{}, err
	}
	width, height, err := c.assertBuffer()
	if err != nil {
		return WindowSize{}, c.fail(fmt.Errorf("window size: %w", err))
	}
	ratio, err := c.surface.DevicePixelRatio()
	if err != nil {
		return WindowSize{}, c.fail(fmt.Errorf("window size: %w", err))
	}
	ratio = sanitize(ratio)
	return WindowSize{
		ColumnsRows: GridSize(width, height),
		Pixels: core.Size{
			Width:  int(width * ratio),
			Height: int(height * ratio),
		},
	}, nil
}

// Flush flushes the diagnostic sink. Painting is synchronous, so the
// surface needs no flushing.
func (c *Canvas) Flush() error {
	if err := c.check("flush"); err != nil {
		return err
	}
	return c.flushSink()
}

func (c *Canvas) flushSink() error {
	if f, ok := c.sink.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (c *Canvas) check(op string) error {
	if c.state == stateDetached {
		return fmt.Errorf("%s: %w", op, ErrDetached)
	}
	return nil
}

// fail moves the backend to the detached state when err says the surface
// is gone.
func (c *Canvas) fail(err error) error {
	if errors.Is(err, surface.ErrUnavailable) {
		c.state = stateDetached
		return fmt.Errorf("%w: %w", ErrDetached, err)
	}
	return err
}

func (c *Canvas) bounds() (float64, float64, error) {
	width, height, err := c.surface.BoundingRect()
	if err != nil {
		return 0, 0, err
	}
	return sanitize(width), sanitize(height), nil
}

// assertBuffer sizes the pixel buffer to the bounding box. Canvas-like
// surfaces otherwise keep a default buffer and stretch it.
func (c *Canvas) assertBuffer() (float64, float64, error) {
	width, height, err := c.bounds()
	if err != nil {
		return 0, 0, err
	}
	if err := c.surface.SetBufferSize(int(width), int(height)); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}
