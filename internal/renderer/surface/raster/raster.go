// Package raster implements a surface that paints into an in-memory RGBA
// image. It backs headless rendering and PNG snapshots.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/dshills/canvasterm/internal/renderer/surface"
)

// DefaultFont is the font in effect before the first SetFont.
const DefaultFont = "10px monospace"

// Surface is a raster drawing surface.
//
// The bounding box and the pixel buffer are sized separately, like a
// canvas element whose layout size and width/height attributes differ.
// Resize changes the former, SetBufferSize the latter. Painting outside the
// buffer is clipped.
type Surface struct {
	img    *image.RGBA
	width  float64
	height float64
	ratio  float64

	fill   color.RGBA
	face   font.Face
	faces  *faceCache
	pathX  float64
	pathY  float64
	closed bool
}

// New creates a surface whose bounding box and buffer are width x height.
func New(width, height int) *Surface {
	width, height = max(width, 0), max(height, 0)
	s := &Surface{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  float64(width),
		height: float64(height),
		ratio:  1,
		fill:   color.RGBA{A: 0xff},
		faces:  newFaceCache(),
	}
	s.face, _ = s.faces.lookup(DefaultFont)
	return s
}

// Resize changes the bounding box without touching the buffer.
func (s *Surface) Resize(width, height float64) {
	s.width = width
	s.height = height
}

// SetDevicePixelRatio changes the reported ratio.
func (s *Surface) SetDevicePixelRatio(ratio float64) {
	s.ratio = ratio
}

// Close releases cached font faces. Every later call fails with
// surface.ErrUnavailable.
func (s *Surface) Close() error {
	s.closed = true
	return s.faces.close()
}

// Image returns the backing buffer.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// WritePNG encodes the buffer as PNG.
func (s *Surface) WritePNG(w io.Writer) error {
	if s.closed {
		return fmt.Errorf("write png: %w", surface.ErrUnavailable)
	}
	return png.Encode(w, s.img)
}

func (s *Surface) check(op string) error {
	if s.closed {
		return fmt.Errorf("%s: %w", op, surface.ErrUnavailable)
	}
	return nil
}

func (s *Surface) SetFillStyle(style string) error {
	if err := s.check("set fill style"); err != nil {
		return err
	}
	c, err := colorful.Hex(style)
	if err != nil {
		return fmt.Errorf("%w: %q", surface.ErrInvalidColor, style)
	}
	r, g, b := c.RGB255()
	s.fill = color.RGBA{R: r, G: g, B: b, A: 0xff}
	return nil
}

func (s *Surface) FillRect(x, y, w, h float64) error {
	if err := s.check("fill rect"); err != nil {
		return err
	}
	draw.Draw(s.img, pixelRect(x, y, w, h), image.NewUniform(s.fill), image.Point{}, draw.Src)
	return nil
}

func (s *Surface) ClearRect(x, y, w, h float64) error {
	if err := s.check("clear rect"); err != nil {
		return err
	}
	draw.Draw(s.img, pixelRect(x, y, w, h), image.Transparent, image.Point{}, draw.Src)
	return nil
}

func (s *Surface) MoveTo(x, y float64) error {
	if err := s.check("move to"); err != nil {
		return err
	}
	s.pathX, s.pathY = x, y
	return nil
}

// Path returns the current path position.
func (s *Surface) Path() (x, y float64) {
	return s.pathX, s.pathY
}

func (s *Surface) SetFont(spec string) error {
	if err := s.check("set font"); err != nil {
		return err
	}
	face, err := s.faces.lookup(spec)
	if err != nil {
		return err
	}
	s.face = face
	return nil
}

func (s *Surface) FillText(text string, x, y float64) error {
	if err := s.check("fill text"); err != nil {
		return err
	}
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.fill),
		Face: s.face,
		Dot:  fixed.Point26_6{X: toFixed(x), Y: toFixed(y)},
	}
	d.DrawString(text)
	return nil
}

func (s *Surface) BoundingRect() (float64, float64, error) {
	if err := s.check("bounding rect"); err != nil {
		return 0, 0, err
	}
	return s.width, s.height, nil
}

// SetBufferSize reallocates the buffer when the size changes. Content is
// lost, as with a canvas element.
func (s *Surface) SetBufferSize(width, height int) error {
	if err := s.check("set buffer size"); err != nil {
		return err
	}
	width, height = max(width, 0), max(height, 0)
	b := s.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return nil
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

func (s *Surface) DevicePixelRatio() (float64, error) {
	if err := s.check("device pixel ratio"); err != nil {
		return 0, err
	}
	return s.ratio, nil
}

// pixelRect covers every pixel the float rectangle touches.
func pixelRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(x)),
		int(math.Floor(y)),
		int(math.Ceil(x+w)),
		int(math.Ceil(y+h)),
	)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

var _ surface.Surface = (*Surface)(nil)
