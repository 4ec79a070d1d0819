package backend

import (
	"errors"
	"fmt"
)

// Backend errors.
var (
	// ErrSurfaceUnavailable indicates the drawing surface could not be
	// resolved when the backend was created.
	ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

	// ErrDetached indicates the surface went away; the backend is unusable.
	ErrDetached = errors.New("backend detached from its surface")
)

// DrawError reports a surface call rejected while painting a frame.
// X and Y are -1 for frame-level operations (backdrop, bounds).
type DrawError struct {
	Op   string // Surface operation (e.g. "FillRect", "FillText")
	X, Y int    // Cell being painted
	Err  error  // Underlying error
}

func (e *DrawError) Error() string {
	if e.X < 0 || e.Y < 0 {
		return fmt.Sprintf("draw: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("draw cell (%d,%d): %s: %v", e.X, e.Y, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *DrawError) Unwrap() error {
	return e.Err
}
