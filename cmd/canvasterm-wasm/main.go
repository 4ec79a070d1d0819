//go:build js && wasm

// Package main is the browser host of canvasterm. It draws the table on the
// page's <canvas id="canvas"> element and feeds keydown and resize events
// to the event loop.
package main

import (
	"context"
	"os"
	"syscall/js"

	"github.com/dshills/canvasterm/internal/app"
	"github.com/dshills/canvasterm/internal/config"
	"github.com/dshills/canvasterm/internal/renderer/backend"
	"github.com/dshills/canvasterm/internal/renderer/surface/canvas"
)

// canvasID is the id of the element drawn on; it is created if missing.
const canvasID = "canvas"

func main() {
	// Go's stderr ends up in console.error.
	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.LogLevelInfo,
		Output: os.Stderr,
		Prefix: "canvasterm",
	})

	surf, err := canvas.New(canvasID)
	if err != nil {
		logger.Error("canvas: %v", err)
		return
	}
	b, err := backend.NewCanvas(surf, canvas.NewConsole())
	if err != nil {
		logger.Error("backend: %v", err)
		return
	}

	settings := config.Default()
	a, err := app.New(app.Options{
		Backend:  b,
		Settings: &settings,
		Logger:   logger,
		Label:    "WASM",
	})
	if err != nil {
		logger.Error("app: %v", err)
		return
	}

	events := make(chan app.Event, 64)
	send := func(ev app.Event) {
		// callbacks run on the js event loop and must not block
		select {
		case events <- ev:
		default:
			logger.Warn("event queue full, dropped %s event", ev.Type)
		}
	}

	onKey := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		e := args[0]
		send(app.KeyEvent(e.Get("key").String(), modifiers(e)))
		return nil
	})
	defer onKey.Release()

	onResize := js.FuncOf(func(js.Value, []js.Value) any {
		send(app.ResizeEvent())
		return nil
	})
	defer onResize.Release()

	window := js.Global().Get("window")
	window.Call("addEventListener", "keydown", onKey)
	window.Call("addEventListener", "resize", onResize)
	defer window.Call("removeEventListener", "keydown", onKey)
	defer window.Call("removeEventListener", "resize", onResize)

	if err := a.Run(context.Background(), events); err != nil {
		logger.Error("event loop: %v", err)
	}
}

// modifiers reads the modifier flags of a KeyboardEvent.
func modifiers(e js.Value) backend.ModMask {
	var mod backend.ModMask
	if e.Get("shiftKey").Bool() {
		mod |= backend.ModShift
	}
	if e.Get("ctrlKey").Bool() {
		mod |= backend.ModCtrl
	}
	if e.Get("altKey").Bool() {
		mod |= backend.ModAlt
	}
	if e.Get("metaKey").Bool() {
		mod |= backend.ModMeta
	}
	return mod
}
