package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dshills/canvasterm/internal/app"
	"github.com/dshills/canvasterm/internal/config"
	"github.com/dshills/canvasterm/internal/renderer/backend"
	"github.com/dshills/canvasterm/internal/renderer/surface/raster"
)

var errTerminalOutput = errors.New("refusing to write PNG data to a terminal")

// renderPNG draws the table on a raster surface, replays the -keys events
// and writes the final frame.
func renderPNG(ctx context.Context, opts *cliOptions, s config.Settings, logger *app.Logger) error {
	if opts.Output == "-" && term.IsTerminal(int(os.Stdout.Fd())) {
		return errTerminalOutput
	}

	surf := raster.New(s.Output.Width, s.Output.Height)
	defer func() { _ = surf.Close() }()
	surf.SetDevicePixelRatio(s.Output.Scale)

	diag := bufio.NewWriter(os.Stderr)
	canvas, err := backend.NewCanvas(surf, diag)
	if err != nil {
		return err
	}

	a, err := app.New(app.Options{Backend: canvas, Settings: &s, Logger: logger})
	if err != nil {
		return err
	}

	keys := opts.keyList()
	events := make(chan app.Event, len(keys))
	for _, k := range keys {
		events <- app.KeyEvent(k, backend.ModNone)
	}
	close(events)

	if err := a.Run(ctx, events); err != nil {
		return err
	}

	snap := a.Metrics().Snapshot()
	logger.WithFields(map[string]any{
		"frames":  snap.FrameCount,
		"dropped": snap.DroppedFrames,
	}).Info("rendered %dx%d px", s.Output.Width, s.Output.Height)

	return writePNG(surf, opts.Output)
}

func writePNG(surf *raster.Surface, path string) error {
	if path == "-" {
		w := bufio.NewWriter(os.Stdout)
		if err := surf.WritePNG(w); err != nil {
			return app.WrapError(err, "write png")
		}
		return w.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := surf.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
