// Package main is the native host of canvasterm.
//
// With -output it renders the demo table headlessly onto a raster surface
// and writes a PNG. Otherwise it runs the same table interactively on the
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/canvasterm/internal/app"
	"github.com/dshills/canvasterm/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	ConfigPath string
	Output     string
	Keys       string
	Watch      bool

	// overrides, applied only when the flag was given
	Title    string
	Rows     int
	Width    int
	Height   int
	Scale    float64
	LogLevel string
	LogFile  string

	set map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfgOpts := config.Options{Path: opts.ConfigPath}
	settings, err := config.Load(cfgOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	opts.apply(&settings)
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logOut, closeLog, err := openLog(settings.Log.File, opts.Output == "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(settings.Log.Level),
		Output: logOut,
		Prefix: "canvasterm",
	})

	if opts.Output != "" {
		err = renderPNG(ctx, opts, settings, logger)
	} else {
		err = runTerminal(ctx, opts, cfgOpts, settings, logger)
	}
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() *cliOptions {
	opts := &cliOptions{}
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Output, "output", "", "Render a PNG to this file ('-' for stdout) instead of running interactively")
	flag.StringVar(&opts.Output, "o", "", "Render a PNG (shorthand)")
	flag.StringVar(&opts.Keys, "keys", "", "Comma separated keys replayed before the PNG is written, e.g. ArrowDown,j")
	flag.StringVar(&opts.Keys, "k", "", "Keys to replay (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", true, "Reload the configuration file when it changes")
	flag.StringVar(&opts.Title, "title", "", "Table title")
	flag.IntVar(&opts.Rows, "rows", 0, "Number of table rows")
	flag.IntVar(&opts.Rows, "r", 0, "Number of table rows (shorthand)")
	flag.IntVar(&opts.Width, "width", 0, "PNG width in logical pixels")
	flag.IntVar(&opts.Height, "height", 0, "PNG height in logical pixels")
	flag.Float64Var(&opts.Scale, "scale", 0, "PNG device pixel ratio")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "canvasterm - cell grid rendered on a 2D canvas\n\n")
		fmt.Fprintf(os.Stderr, "Usage: canvasterm [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  canvasterm                          Run the table on the terminal\n")
		fmt.Fprintf(os.Stderr, "  canvasterm -o table.png             Render the first frame\n")
		fmt.Fprintf(os.Stderr, "  canvasterm -o - -k j,j | display    Select the second row and pipe the PNG\n")
		fmt.Fprintf(os.Stderr, "  canvasterm -c canvasterm.toml       Use a configuration file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("canvasterm %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", flag.Args())
		os.Exit(2)
	}

	// short and long forms record under the long name
	aliases := map[string]string{"c": "config", "o": "output", "k": "keys", "r": "rows"}
	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := aliases[name]; ok {
			name = long
		}
		opts.set[name] = true
	})

	return opts
}

// apply overrides settings with the flags given on the command line.
func (o *cliOptions) apply(s *config.Settings) {
	if o.set["title"] {
		s.Title = o.Title
	}
	if o.set["rows"] {
		s.Rows = o.Rows
	}
	if o.set["width"] {
		s.Output.Width = o.Width
	}
	if o.set["height"] {
		s.Output.Height = o.Height
	}
	if o.set["scale"] {
		s.Output.Scale = o.Scale
	}
	if o.set["log-level"] {
		s.Log.Level = o.LogLevel
	}
	if o.set["log-file"] {
		s.Log.File = o.LogFile
	}
}

// keyList splits the -keys value.
func (o *cliOptions) keyList() []string {
	var keys []string
	for k := range strings.SplitSeq(o.Keys, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// openLog opens the log destination. Interactive runs own the terminal,
// so without a log file they discard log output.
func openLog(path string, interactive bool) (io.Writer, func(), error) {
	if path == "" {
		if interactive {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
