//go:build js && wasm

// Package canvas implements a surface over a browser canvas element and
// its 2D rendering context.
package canvas

import (
	"fmt"
	"syscall/js"

	"github.com/dshills/canvasterm/internal/renderer/surface"
)

// Surface wraps an HTMLCanvasElement and its CanvasRenderingContext2D.
type Surface struct {
	element js.Value
	ctx     js.Value
	window  js.Value
}

// New resolves the canvas element with the given id. The element is
// created and appended to the document body when no such element exists.
func New(id string) (*Surface, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, fmt.Errorf("no document: %w", surface.ErrUnavailable)
	}

	el := doc.Call("getElementById", id)
	if el.IsNull() {
		el = doc.Call("createElement", "canvas")
		el.Set("id", id)
		doc.Get("body").Call("appendChild", el)
	}
	return Wrap(el)
}

// Wrap uses an existing canvas element.
func Wrap(element js.Value) (*Surface, error) {
	if element.IsUndefined() || element.IsNull() {
		return nil, fmt.Errorf("no canvas element: %w", surface.ErrUnavailable)
	}
	ctx := element.Call("getContext", "2d")
	if ctx.IsNull() {
		return nil, fmt.Errorf("no 2d context: %w", surface.ErrUnavailable)
	}
	return &Surface{
		element: element,
		ctx:     ctx,
		window:  js.Global().Get("window"),
	}, nil
}

// Element returns the wrapped canvas element.
func (s *Surface) Element() js.Value {
	return s.element
}

// call invokes fn, turning a detached element or a thrown JS exception into
// an error.
func (s *Surface) call(op string, fn func()) (err error) {
	if !s.element.Get("isConnected").Truthy() {
		return fmt.Errorf("%s: %w", op, surface.ErrUnavailable)
	}
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = fmt.Errorf("%s: %s", op, jsErr.Error())
				return
			}
			panic(r)
		}
	}()
	fn()
	return nil
}

func (s *Surface) SetFillStyle(color string) error {
	return s.call("fillStyle", func() {
		s.ctx.Set("fillStyle", color)
	})
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	return s.call("fillRect", func() {
		s.ctx.Call("fillRect", x, y, w, h)
	})
}

func (s *Surface) ClearRect(x, y, w, h float64) error {
	return s.call("clearRect", func() {
		s.ctx.Call("clearRect", x, y, w, h)
	})
}

func (s *Surface) MoveTo(x, y float64) error {
	return s.call("moveTo", func() {
		s.ctx.Call("moveTo", x, y)
	})
}

func (s *Surface) SetFont(font string) error {
	if _, err := surface.ParseFont(font); err != nil {
		return err
	}
	return s.call("font", func() {
		s.ctx.Set("font", font)
	})
}

func (s *Surface) FillText(text string, x, y float64) error {
	return s.call("fillText", func() {
		s.ctx.Call("fillText", text, x, y)
	})
}

func (s *Surface) BoundingRect() (width, height float64, err error) {
	err = s.call("getBoundingClientRect", func() {
		rect := s.element.Call("getBoundingClientRect")
		width = rect.Get("width").Float()
		height = rect.Get("height").Float()
	})
	return width, height, err
}

// SetBufferSize writes the element's width and height attributes. The
// browser clears the buffer and resets context state when they change.
func (s *Surface) SetBufferSize(width, height int) error {
	return s.call("resize buffer", func() {
		if s.element.Get("width").Int() != width {
			s.element.Set("width", width)
		}
		if s.element.Get("height").Int() != height {
			s.element.Set("height", height)
		}
	})
}

func (s *Surface) DevicePixelRatio() (float64, error) {
	if s.window.IsUndefined() {
		return 1, nil
	}
	ratio := s.window.Get("devicePixelRatio")
	if ratio.Type() != js.TypeNumber {
		return 1, nil
	}
	return ratio.Float(), nil
}

var _ surface.Surface = (*Surface)(nil)
