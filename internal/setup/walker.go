// Package setup provides initialization and configuration functions
package setup

import (
	"context"
	"io"

	"github.com/bethropolis/dir-lister/internal/config"
	"github.com/bethropolis/dir-lister/internal/gitrepo"
	"github.com/bethropolis/dir-lister/internal/ignore"
	"github.com/bethropolis/dir-lister/internal/logger"
	"github.com/bethropolis/dir-lister/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure the listing walk
type WalkerConfig struct {
	Matcher      ignore.Engine
	GitIgnore    bool
	GitDiscovery bool
	ShowHidden   bool
	Recursive    bool
	MaxDepth     int
	Concurrent   bool
	MaxWorkers   int
	Context      context.Context
	Logger       *logger.Logger
}

// FromConfig derives the walker settings from resolved application settings
func FromConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) WalkerConfig {
	return WalkerConfig{
		Matcher:      cfg.Matcher,
		GitIgnore:    cfg.GitIgnore,
		GitDiscovery: cfg.GitDiscovery,
		ShowHidden:   cfg.All,
		Recursive:    cfg.Tree,
		MaxDepth:     cfg.Depth,
		Concurrent:   cfg.Concurrent,
		MaxWorkers:   cfg.MaxWorkers,
		Context:      ctx,
		Logger:       log,
	}
}

// ConfigureWalker returns the options for building ignore contexts and for
// the walker itself
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) ([]ignore.Option, []walker.Option) {
	log := cfg.Logger
	if log == nil {
		log = logger.New(io.Discard, logger.LevelNone, false)
	}

	if cfg.ShowHidden {
		infoLog("Including hidden files/directories.")
	} else {
		infoLog("Ignoring hidden files/directories (starting with '.').")
	}

	// --- Ignore context options ---
	discoverer := gitrepo.New()
	switch {
	case !cfg.GitIgnore:
		discoverer = gitrepo.Disabled()
	case !cfg.GitDiscovery:
		infoLog("Repository discovery disabled; only .gitignore files are honored.")
		discoverer = gitrepo.Disabled()
	case !gitrepo.Enabled:
		infoLog("Built without repository discovery; only .gitignore files are honored.")
	}
	if cfg.GitIgnore {
		infoLog("Honoring ignore files using the %s engine.", cfg.Matcher)
	}

	ignoreOptions := []ignore.Option{
		ignore.WithEngine(cfg.Matcher),
		ignore.WithDiscoverer(discoverer),
		ignore.WithLogger(log.Named("ignore")),
	}

	// --- Walk options ---
	walkOptions := []walker.Option{
		walker.WithLogger(log.Named("walker")),
		walker.WithConcurrency(cfg.Concurrent),
		walker.WithMaxWorkers(cfg.MaxWorkers),
		walker.WithShowHidden(cfg.ShowHidden),
		walker.WithGitIgnore(cfg.GitIgnore),
		walker.WithRecursive(cfg.Recursive),
		walker.WithMaxDepth(cfg.MaxDepth),
	}
	if cfg.Concurrent {
		infoLog("Using concurrent walking with %d workers.", cfg.MaxWorkers)
	}

	if cfg.Context != nil {
		walkOptions = append(walkOptions, walker.WithContext(cfg.Context))
	}

	return ignoreOptions, walkOptions
}
