// Package config provides the settings of canvasterm.
//
// Settings are layered: built-in defaults, then a TOML or YAML file, then
// CANVASTERM_* environment variables. Command line flags are applied on top
// by the hosts. A Watcher reloads the file when it changes.
package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/canvasterm/internal/config/loader"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CANVASTERM_"

// Settings is the complete configuration.
type Settings struct {
	// Title is shown on the table border.
	Title string `toml:"title" yaml:"title"`

	// Rows is the number of sample rows in the table.
	Rows int `toml:"rows" yaml:"rows"`

	// Widths are the table column widths in percent.
	Widths []int `toml:"widths" yaml:"widths"`

	// StatusLine reserves the bottom row for the status line.
	StatusLine bool `toml:"status_line" yaml:"status_line"`

	Log    LogSettings    `toml:"log" yaml:"log"`
	Output OutputSettings `toml:"output" yaml:"output"`
}

// LogSettings configures the logger.
type LogSettings struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File is a log file path; empty logs to stderr.
	File string `toml:"file" yaml:"file"`
}

// OutputSettings sizes the headless raster surface.
type OutputSettings struct {
	// Width and Height are the surface size in logical pixels.
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	// Scale is the device pixel ratio reported by the surface.
	Scale float64 `toml:"scale" yaml:"scale"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Title:      "Table",
		Rows:       19,
		Widths:     []int{50, 25, 25},
		StatusLine: true,
		Log: LogSettings{
			Level: "info",
		},
		Output: OutputSettings{
			Width:  640,
			Height: 480,
			Scale:  1,
		},
	}
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks the settings for values the hosts cannot use.
func (s Settings) Validate() error {
	var errs []error
	if s.Rows < 0 {
		errs = append(errs, &ValidationError{Path: "rows", Message: "must not be negative"})
	}
	sum := 0
	for _, w := range s.Widths {
		if w < 0 {
			errs = append(errs, &ValidationError{Path: "widths", Message: "must not be negative"})
			break
		}
		sum += w
	}
	if sum > 100 {
		errs = append(errs, &ValidationError{Path: "widths", Message: "must add up to at most 100, got " + strconv.Itoa(sum)})
	}
	if !validLevels[s.Log.Level] {
		errs = append(errs, &ValidationError{Path: "log.level", Message: fmt.Sprintf("unknown level %q", s.Log.Level)})
	}
	if s.Output.Width < 0 || s.Output.Height < 0 {
		errs = append(errs, &ValidationError{Path: "output", Message: "size must not be negative"})
	}
	if s.Output.Scale <= 0 {
		errs = append(errs, &ValidationError{Path: "output.scale", Message: "must be positive"})
	}
	return errors.Join(errs...)
}

// Options controls where Load reads from.
type Options struct {
	// Path is the config file; empty skips the file layer.
	Path string

	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load builds settings from defaults, the file and the environment, then
// validates them.
func Load(opts Options) (Settings, error) {
	s := Default()

	if opts.Path != "" {
		fsys := opts.FS
		if fsys == nil {
			fsys = loader.DefaultFS()
		}
		found, err := loader.LoadFile(fsys, opts.Path, &s)
		if err != nil {
			return Settings{}, err
		}
		if !found {
			return Settings{}, fmt.Errorf("%w: %s", ErrFileNotFound, opts.Path)
		}
	}

	env := loader.NewEnvLoader(EnvPrefix)
	if opts.LookupEnv != nil {
		env = loader.NewEnvLoaderWithLookup(EnvPrefix, opts.LookupEnv)
	}
	if err := applyEnv(&s, env); err != nil {
		return Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// envSetters maps config paths to setters for their raw string values.
var envSetters = map[string]func(*Settings, string) error{
	"title": func(s *Settings, v string) error {
		s.Title = v
		return nil
	},
	"rows": func(s *Settings, v string) (err error) {
		s.Rows, err = strconv.Atoi(v)
		return err
	},
	"widths": func(s *Settings, v string) (err error) {
		s.Widths, err = loader.ParseInts(v)
		return err
	},
	"status_line": func(s *Settings, v string) (err error) {
		s.StatusLine, err = loader.ParseBool(v)
		return err
	},
	"log.level": func(s *Settings, v string) error {
		s.Log.Level = v
		return nil
	},
	"log.file": func(s *Settings, v string) error {
		s.Log.File = v
		return nil
	},
	"output.width": func(s *Settings, v string) (err error) {
		s.Output.Width, err = strconv.Atoi(v)
		return err
	},
	"output.height": func(s *Settings, v string) (err error) {
		s.Output.Height, err = strconv.Atoi(v)
		return err
	},
	"output.scale": func(s *Settings, v string) (err error) {
		s.Output.Scale, err = strconv.ParseFloat(v, 64)
		return err
	},
}

// EnvPaths returns the config paths that can be set from the environment.
func EnvPaths() []string {
	return []string{
		"title", "rows", "widths", "status_line",
		"log.level", "log.file",
		"output.width", "output.height", "output.scale",
	}
}

func applyEnv(s *Settings, env *loader.EnvLoader) error {
	for path, val := range env.Load(EnvPaths()) {
		if err := envSetters[path](s, val); err != nil {
			return &EnvError{Var: env.VarName(path), Value: val, Err: err}
		}
	}
	return nil
}
