package main

import (
	"context"
	"errors"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/dshills/canvasterm/internal/app"
	"github.com/dshills/canvasterm/internal/config"
	"github.com/dshills/canvasterm/internal/renderer/backend"
)

var errNoTerminal = errors.New("interactive mode needs a terminal; use -output to render a PNG")

// runTerminal runs the table on the tty. Input polling and config watching
// run on their own goroutines and only send events to the loop.
func runTerminal(ctx context.Context, opts *cliOptions, cfgOpts config.Options, s config.Settings, logger *app.Logger) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errNoTerminal
	}

	tty, err := backend.NewTerminal()
	if err != nil {
		return app.WrapError(err, "create terminal")
	}
	if err := tty.Init(); err != nil {
		return app.WrapError(err, "init terminal")
	}
	// Shutdown also unblocks PollEvent.
	shutdown := sync.OnceFunc(tty.Shutdown)
	defer shutdown()

	a, err := app.New(app.Options{Backend: tty, Settings: &s, Logger: logger})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	events := make(chan app.Event, 16)

	g.Go(func() error {
		defer cancel()
		defer shutdown()
		return a.Run(gctx, events)
	})

	g.Go(func() error {
		for {
			ev, ok := tty.PollEvent()
			if !ok {
				return nil
			}
			e := app.FromBackend(ev)
			if e.Type == app.EventNone {
				continue
			}
			select {
			case events <- e:
			case <-gctx.Done():
				return nil
			}
		}
	})

	if opts.Watch && cfgOpts.Path != "" {
		w, err := config.NewWatcher(cfgOpts)
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			g.Go(func() error {
				return forwardReloads(gctx, w, opts, events)
			})
		}
	}

	return g.Wait()
}

// forwardReloads turns watcher output into loop events until ctx is done.
func forwardReloads(ctx context.Context, w *config.Watcher, opts *cliOptions, events chan<- app.Event) error {
	defer func() { _ = w.Close() }()

	for {
		var ev app.Event
		select {
		case <-ctx.Done():
			return nil
		case s, ok := <-w.Changes():
			if !ok {
				return nil
			}
			opts.apply(&s)
			if err := s.Validate(); err != nil {
				ev = app.Event{Type: app.EventNotice, Err: err}
			} else {
				ev = app.Event{Type: app.EventReload, Settings: s}
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			ev = app.Event{Type: app.EventNotice, Err: err}
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return nil
		}
	}
}
