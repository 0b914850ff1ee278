// Package config resolves dir-lister settings.
//
// Every setting is taken from the command line if the flag was given, else
// from the config file, else from its built-in default.
package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/bethropolis/dir-lister/internal/ignore"
)

// AppName is used for the config directory and in messages
const AppName = "dir-lister"

// ColorMode controls colored output
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds all resolved application settings
type Config struct {
	Paths      []string
	ConfigFile string // file the settings were read from, if any

	// Filtering
	GitIgnore    bool
	All          bool
	GitDiscovery bool
	Matcher      ignore.Engine

	// Layout
	Tree     bool
	Depth    int
	TreePath TreePath
	JSON     bool

	// Output
	Color       ColorMode
	UseColors   bool
	ShowSkipped bool
	LogLevel    string

	// Processing
	Concurrent bool
	MaxWorkers int
	Timeout    time.Duration
}

// Flags holds raw command-line values. Register binds them to a flag set,
// which is later asked whether a flag was actually given.
type Flags struct {
	ConfigFile     string
	GitIgnore      bool
	All            bool
	NoGitDiscovery bool
	Matcher        string
	Tree           bool
	Depth          int
	TreePath       string
	TreePathScope  string
	JSON           bool
	Color          string
	ShowSkipped    bool
	LogLevel       string
	Verbose        bool
	Quiet          bool
	Concurrent     bool
	Workers        int
	Timeout        time.Duration

	set *pflag.FlagSet
}

// Register defines the command-line flags on fs
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.set = fs
	fs.StringVar(&f.ConfigFile, "config", "", "Read settings from this file instead of the default location")
	fs.BoolVarP(&f.GitIgnore, "gitignore", "g", false, "Hide entries matched by .gitignore files and the repository exclude list")
	fs.BoolVarP(&f.All, "all", "a", false, "Show hidden entries (names starting with '.')")
	fs.BoolVar(&f.NoGitDiscovery, "no-git-discovery", false, "Do not look for an enclosing git repository")
	fs.StringVar(&f.Matcher, "matcher", string(ignore.EngineDenormal), "Ignore pattern engine (denormal, gogit, sabhiram, monochrome); sabhiram and monochrome do not anchor patterns with a middle slash, and monochrome lets negations win regardless of order")
	fs.BoolVar(&f.Tree, "tree", false, "Recurse into directories and print a tree")
	fs.IntVar(&f.Depth, "depth", 0, "Maximum tree depth (0 = unlimited)")
	fs.StringVar(&f.TreePath, "tree-path", "", "Label tree entries with their path (none, absolute, relative)")
	fs.StringVar(&f.TreePathScope, "tree-path-scope", "", "Which tree entries get path labels (root, all)")
	fs.BoolVar(&f.JSON, "json", false, "Print entries as JSON")
	fs.StringVar(&f.Color, "color", string(ColorAuto), "When to use colors (auto, always, never)")
	fs.BoolVar(&f.ShowSkipped, "show-skipped", false, "List hidden and ignored entries with the reason at the end")
	fs.StringVar(&f.LogLevel, "log-level", "warn", "Logging level (debug, info, warn, error, none)")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
	fs.BoolVarP(&f.Quiet, "quiet", "q", false, "Shorthand for --log-level=error")
	fs.BoolVar(&f.Concurrent, "concurrent", false, "Walk sibling directories concurrently")
	fs.IntVar(&f.Workers, "workers", runtime.NumCPU(), "Max number of concurrent walkers")
	fs.DurationVar(&f.Timeout, "timeout", 0, "Maximum execution time (e.g. '30s', '5m')")
}

func (f *Flags) changed(name string) bool {
	return f.set != nil && f.set.Changed(name)
}

// Load reads the config file and resolves the final settings
func Load(f *Flags, args []string) (*Config, error) {
	file, path, err := LoadFile(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg, err := Resolve(f, file)
	if err != nil {
		return nil, err
	}
	cfg.ConfigFile = path
	cfg.Paths = args
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	return cfg, nil
}

// pick returns the CLI value when its flag was given, else the file value,
// else def.
func pick[T any](f *Flags, flag string, cli T, file *T, def T) T {
	if f.changed(flag) {
		return cli
	}
	if file != nil {
		return *file
	}
	return def
}

// Resolve merges parsed flags with file values
func Resolve(f *Flags, file *File) (*Config, error) {
	if file == nil {
		file = &File{}
	}

	cfg := &Config{
		GitIgnore:    pick(f, "gitignore", f.GitIgnore, file.GitIgnore, false),
		All:          pick(f, "all", f.All, file.All, false),
		GitDiscovery: pick(f, "no-git-discovery", !f.NoGitDiscovery, file.GitDiscovery, true),
		Tree:         pick(f, "tree", f.Tree, file.Tree, false),
		Depth:        pick(f, "depth", f.Depth, file.Depth, 0),
		JSON:         pick(f, "json", f.JSON, file.JSON, false),
		ShowSkipped:  pick(f, "show-skipped", f.ShowSkipped, file.ShowSkipped, false),
		Concurrent:   pick(f, "concurrent", f.Concurrent, file.Concurrent, false),
		MaxWorkers:   pick(f, "workers", f.Workers, file.Workers, runtime.NumCPU()),
		LogLevel:     resolveLogLevel(f, file),
	}

	var err error
	matcher := pick(f, "matcher", f.Matcher, file.Matcher, string(ignore.EngineDenormal))
	if cfg.Matcher, err = ignore.ParseEngine(matcher); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	color := pick(f, "color", f.Color, file.Color, string(ColorAuto))
	if cfg.Color, err = parseColorMode(color); err != nil {
		return nil, err
	}

	if cfg.TreePath, err = resolveTreePath(f, file); err != nil {
		return nil, err
	}

	if f.changed("timeout") {
		cfg.Timeout = f.Timeout
	} else if file.Timeout != nil {
		if cfg.Timeout, err = time.ParseDuration(*file.Timeout); err != nil {
			return nil, fmt.Errorf("config: invalid timeout '%s': %w", *file.Timeout, err)
		}
	}

	if cfg.Depth < 0 {
		return nil, fmt.Errorf("config: depth must not be negative, got %d", cfg.Depth)
	}
	if cfg.MaxWorkers < 1 {
		cfg.MaxWorkers = 1
	}

	cfg.UseColors = decideColors(cfg.Color, cfg.JSON)
	return cfg, nil
}

// resolveLogLevel honors --log-level first, then the -v/-q shorthands
func resolveLogLevel(f *Flags, file *File) string {
	switch {
	case f.changed("log-level"):
		return f.LogLevel
	case f.Verbose:
		return "debug"
	case f.Quiet:
		return "error"
	case file.LogLevel != nil:
		return *file.LogLevel
	}
	return "warn"
}

func parseColorMode(v string) (ColorMode, error) {
	switch ColorMode(v) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(v), nil
	}
	return "", fmt.Errorf("config: invalid value '%s' for 'color' (want auto, always or never)", v)
}

// stdoutIsTerminal is swapped out by tests
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func decideColors(mode ColorMode, jsonOutput bool) bool {
	if jsonOutput {
		return false
	}
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return stdoutIsTerminal()
}
