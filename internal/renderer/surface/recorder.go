package surface

import (
	"fmt"
	"strings"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpSetFillStyle OpKind = iota
	OpFillRect
	OpClearRect
	OpMoveTo
	OpSetFont
	OpFillText
	OpSetBufferSize
)

// String returns the name of the surface method.
func (k OpKind) String() string {
	switch k {
	case OpSetFillStyle:
		return "SetFillStyle"
	case OpFillRect:
		return "FillRect"
	case OpClearRect:
		return "ClearRect"
	case OpMoveTo:
		return "MoveTo"
	case OpSetFont:
		return "SetFont"
	case OpFillText:
		return "FillText"
	case OpSetBufferSize:
		return "SetBufferSize"
	default:
		return "Unknown"
	}
}

// Op is one recorded drawing call.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Text       string // fill style, font or glyph text
}

// String formats the op for test failure messages.
func (o Op) String() string {
	switch o.Kind {
	case OpSetFillStyle, OpSetFont:
		return fmt.Sprintf("%s(%q)", o.Kind, o.Text)
	case OpFillRect, OpClearRect:
		return fmt.Sprintf("%s(%g,%g,%g,%g)", o.Kind, o.X, o.Y, o.W, o.H)
	case OpMoveTo:
		return fmt.Sprintf("%s(%g,%g)", o.Kind, o.X, o.Y)
	case OpFillText:
		return fmt.Sprintf("%s(%q,%g,%g)", o.Kind, o.Text, o.X, o.Y)
	case OpSetBufferSize:
		return fmt.Sprintf("%s(%g,%g)", o.Kind, o.W, o.H)
	default:
		return o.Kind.String()
	}
}

// Recorder is an in-memory Surface that records every call.
// It is the test double for the canvas backend.
type Recorder struct {
	Ops []Op

	width, height float64
	bufW, bufH    int
	ratio         float64
	detached      bool
	failOn        map[OpKind]error
}

// NewRecorder creates a recorder with the given bounding box and ratio 1.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{
		width:  width,
		height: height,
		ratio:  1,
		failOn: make(map[OpKind]error),
	}
}

// Resize changes the bounding box without touching the pixel buffer, the
// way a layout change does.
func (r *Recorder) Resize(width, height float64) {
	r.width = width
	r.height = height
}

// SetDevicePixelRatio changes the reported ratio.
func (r *Recorder) SetDevicePixelRatio(ratio float64) {
	r.ratio = ratio
}

// Detach simulates the backing element being removed.
func (r *Recorder) Detach() {
	r.detached = true
}

// FailOn makes every later call of kind fail with err.
func (r *Recorder) FailOn(kind OpKind, err error) {
	r.failOn[kind] = err
}

// BufferSize returns the last size given to SetBufferSize.
func (r *Recorder) BufferSize() (width, height int) {
	return r.bufW, r.bufH
}

// Reset drops recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns the number of recorded ops of kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops of kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Dump returns one op per line.
func (r *Recorder) Dump() string {
	var sb strings.Builder
	for _, op := range r.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *Recorder) record(op Op) error {
	if r.detached {
		return fmt.Errorf("%s: %w", op.Kind, ErrUnavailable)
	}
	if err, ok := r.failOn[op.Kind]; ok {
		return err
	}
	r.Ops = append(r.Ops, op)
	return nil
}

func (r *Recorder) SetFillStyle(color string) error {
	return r.record(Op{Kind: OpSetFillStyle, Text: color})
}

func (r *Recorder) FillRect(x, y, w, h float64) error {
	return r.record(Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) ClearRect(x, y, w, h float64) error {
	return r.record(Op{Kind: OpClearRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) MoveTo(x, y float64) error {
	return r.record(Op{Kind: OpMoveTo, X: x, Y: y})
}

func (r *Recorder) SetFont(font string) error {
	return r.record(Op{Kind: OpSetFont, Text: font})
}

func (r *Recorder) FillText(text string, x, y float64) error {
	return r.record(Op{Kind: OpFillText, Text: text, X: x, Y: y})
}

func (r *Recorder) BoundingRect() (float64, float64, error) {
	if r.detached {
		return 0, 0, fmt.Errorf("bounding rect: %w", ErrUnavailable)
	}
	return r.width, r.height, nil
}

func (r *Recorder) SetBufferSize(width, height int) error {
	if err := r.record(Op{Kind: OpSetBufferSize, W: float64(width), H: float64(height)}); err != nil {
		return err
	}
	r.bufW, r.bufH = width, height
	return nil
}

func (r *Recorder) DevicePixelRatio() (float64, error) {
	if r.detached {
		return 0, fmt.Errorf("device pixel ratio: %w", ErrUnavailable)
	}
	return r.ratio, nil
}
