// Package surface defines the 2D drawing capability set the canvas backend
// paints onto.
//
// A Surface models an immediate-mode drawing context such as a browser
// CanvasRenderingContext2D: a fill style, filled and cleared rectangles, a
// path position, text painted at a baseline, and a live bounding box. Every
// method reports failure; a surface whose backing element is gone returns an
// error wrapping ErrUnavailable.
package surface

import "errors"

// ErrUnavailable indicates the backing drawing target can no longer be
// resolved (removed from its host, context lost).
var ErrUnavailable = errors.New("surface unavailable")

// ErrInvalidColor indicates a fill style string the surface cannot parse.
var ErrInvalidColor = errors.New("invalid color")

// ErrInvalidFont indicates a font string the surface cannot parse.
var ErrInvalidFont = errors.New("invalid font")

// Surface is the capability set required by the backend.
type Surface interface {
	// SetFillStyle sets the color used by FillRect and FillText.
	SetFillStyle(color string) error

	// FillRect paints a rectangle with the current fill style.
	FillRect(x, y, w, h float64) error

	// ClearRect resets a rectangle to fully transparent.
	ClearRect(x, y, w, h float64) error

	// MoveTo moves the current path position.
	MoveTo(x, y float64) error

	// SetFont sets the font used by FillText, e.g. "bold 16px monospace".
	SetFont(font string) error

	// FillText paints text with its baseline at y.
	FillText(text string, x, y float64) error

	// BoundingRect returns the live displayed size in logical pixels.
	BoundingRect() (width, height float64, err error)

	// SetBufferSize sizes the backing pixel buffer.
	SetBufferSize(width, height int) error

	// DevicePixelRatio returns physical pixels per logical pixel.
	DevicePixelRatio() (float64, error)
}
