package app

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/dshills/canvasterm/internal/config"
	"github.com/dshills/canvasterm/internal/demo"
	"github.com/dshills/canvasterm/internal/renderer/backend"
	"github.com/dshills/canvasterm/internal/renderer/frame"
)

// Header is the table header row.
var Header = []string{"Header1", "Header2", "Header3"}

// Options configures an App.
type Options struct {
	// Backend is required.
	Backend backend.Backend

	// Settings seeds the table. Nil means config.Default().
	Settings *config.Settings

	// Logger defaults to a null logger.
	Logger *Logger

	// Metrics defaults to a fresh tracker.
	Metrics *Metrics

	// Label is shown at the left of the status line.
	Label string
}

// App owns the view state and the backend. All state is touched only from
// the goroutine running Run; other goroutines communicate through events.
type App struct {
	backend  backend.Backend
	settings config.Settings
	buf      *frame.Buffer
	view     *demo.View
	logger   *Logger
	metrics  *Metrics

	running atomic.Bool
}

// New creates an application.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	settings := config.Default()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if opts.Logger == nil {
		opts.Logger = NullLogger()
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}
	if opts.Label == "" {
		opts.Label = "canvasterm"
	}

	table := demo.NewTable(settings.Title, Header, demo.SampleRows(settings.Rows))
	table.Widths = settings.Widths

	a := &App{
		backend:  opts.Backend,
		settings: settings,
		buf:      frame.NewBuffer(0, 0),
		view:     demo.NewView(table, opts.Label),
		logger:   opts.Logger.WithComponent("app"),
		metrics:  opts.Metrics,
	}
	a.view.ShowStatus = settings.StatusLine
	return a, nil
}

// Run draws the first frame and then handles events until the channel is
// closed, ctx is done, a quit is requested or the backend detaches.
// Quitting, closing the channel and cancelling ctx are normal exits and
// return nil.
func (a *App) Run(ctx context.Context, events <-chan Event) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	a.logger.Info("event loop started")
	defer a.logger.Info("event loop stopped")

	if err := a.checkDraw(a.Redraw()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			err := a.HandleEvent(ev)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// IsRunning reports whether Run is active.
func (a *App) IsRunning() bool {
	return a.running.Load()
}

// HandleEvent processes one event. It returns ErrQuit when the user asks
// to leave and an error wrapping backend.ErrDetached when the backend is
// gone; other draw failures are logged and the frame is dropped.
func (a *App) HandleEvent(ev Event) error {
	timer := StartTimer()
	defer func() { a.metrics.RecordEvent(timer.Elapsed()) }()

	switch ev.Type {
	case EventKey:
		return a.handleKey(ev)
	case EventResize:
		return a.checkDraw(a.clearAndRedraw())
	case EventReload:
		a.applySettings(ev.Settings)
		a.view.Status.SetMessage("settings reloaded", demo.MessageInfo)
		return a.checkDraw(a.Redraw())
	case EventNotice:
		if ev.Err != nil {
			a.logger.Warn("notice: %v", ev.Err)
			a.view.Status.SetMessage(ev.Err.Error(), demo.MessageError)
		}
		return a.checkDraw(a.Redraw())
	case EventQuit:
		return ErrQuit
	default:
		return nil
	}
}

func (a *App) handleKey(ev Event) error {
	table := a.view.Table

	switch {
	case ev.Key == "q" && ev.Mod == backend.ModNone, ev.Key == "Escape":
		return ErrQuit
	case ev.Key == "c" && ev.Mod.Has(backend.ModCtrl):
		return ErrQuit
	case ev.Key == "ArrowDown", ev.Key == "j":
		table.Next()
	case ev.Key == "ArrowUp", ev.Key == "k":
		table.Previous()
	case ev.Key == "Home":
		table.Select(0)
	case ev.Key == "End":
		table.Select(len(table.Rows) - 1)
	default:
		a.logger.WithField("mod", int(ev.Mod)).Debug("unhandled key %q", ev.Key)
		return nil
	}

	a.view.Status.ClearMessage()
	return a.checkDraw(a.clearAndRedraw())
}

// applySettings updates the view from reloaded settings.
func (a *App) applySettings(s config.Settings) {
	table := a.view.Table
	table.Title = s.Title
	table.Widths = s.Widths
	if s.Rows != a.settings.Rows {
		table.SetRows(demo.SampleRows(s.Rows))
	}
	a.view.ShowStatus = s.StatusLine
	a.logger.SetLevel(ParseLogLevel(s.Log.Level))
	a.settings = s
	a.logger.WithField("rows", s.Rows).Info("settings applied")
}

func (a *App) clearAndRedraw() error {
	if err := a.backend.Clear(); err != nil {
		return NewOperationError("clear", "backend", err)
	}
	return a.Redraw()
}

// Redraw renders the view at the backend's current size and draws it.
func (a *App) Redraw() error {
	timer := StartTimer()

	size, err := a.backend.Size()
	if err != nil {
		return NewOperationError("size", "backend", err)
	}
	a.buf.Resize(size.Width, size.Height)
	a.view.Render(a.buf)

	if err := a.backend.Draw(a.buf.Cells()); err != nil {
		return NewOperationError("draw", "backend", err)
	}
	if err := a.backend.Flush(); err != nil {
		return NewOperationError("flush", "backend", err)
	}

	a.metrics.RecordFrame(timer.Elapsed())
	return nil
}

// checkDraw decides whether a draw failure ends the loop.
func (a *App) checkDraw(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, backend.ErrDetached) {
		a.logger.Error("backend detached: %v", err)
		return err
	}
	a.metrics.RecordDroppedFrame()
	a.logger.Warn("frame dropped: %v", err)
	a.view.Status.SetMessage(err.Error(), demo.MessageError)
	return nil
}

// Settings returns the settings currently applied.
func (a *App) Settings() config.Settings {
	return a.settings
}

// View returns the view state. Only safe to use while Run is not active.
func (a *App) View() *demo.View {
	return a.view
}

// Buffer returns the last rendered frame.
func (a *App) Buffer() *frame.Buffer {
	return a.buf
}

// Metrics returns the metrics tracker.
func (a *App) Metrics() *Metrics {
	return a.metrics
}
