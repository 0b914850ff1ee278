// Package app wires configuration, ignore contexts, the walker and the
// printer into one listing run.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/bethropolis/dir-lister/internal/config"
	"github.com/bethropolis/dir-lister/internal/ignore"
	"github.com/bethropolis/dir-lister/internal/logger"
	"github.com/bethropolis/dir-lister/internal/printer"
	"github.com/bethropolis/dir-lister/internal/setup"
	"github.com/bethropolis/dir-lister/internal/summary"
	"github.com/bethropolis/dir-lister/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	output io.Writer
	errOut io.Writer
}

// New creates a new App writing listings to output and logs to errOut
func New(cfg *config.Config, output, errOut io.Writer) *App {
	// Configure color globally
	color.NoColor = !cfg.UseColors

	log := logger.New(errOut, logger.ParseLevel(cfg.LogLevel), cfg.UseColors)

	return &App{
		cfg:    cfg,
		log:    log,
		output: output,
		errOut: errOut,
	}
}

// Run lists every configured path. A path that cannot be listed is reported
// and the remaining paths are still listed; all such failures are returned
// together at the end. Cancellation stops the run immediately.
func (a *App) Run(ctx context.Context) error {
	startTime := time.Now()

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.log.Debug("Color output: %v", a.cfg.UseColors)
	if a.cfg.ConfigFile != "" {
		a.log.Debug("Settings read from %s", a.cfg.ConfigFile)
	}
	a.log.Debug("Paths: %v", a.cfg.Paths)
	a.log.Debug("Ignore settings: gitignore=%v, all=%v, matcher=%s, discovery=%v",
		a.cfg.GitIgnore, a.cfg.All, a.cfg.Matcher, a.cfg.GitDiscovery)
	a.log.Debug("Concurrent mode: %v (workers: %d)", a.cfg.Concurrent, a.cfg.MaxWorkers)

	ignoreOptions, walkOptions := setup.ConfigureWalker(
		setup.FromConfig(ctx, a.cfg, a.log), a.log.Info)

	p := printer.New().
		WithOutput(a.output).
		WithColors(a.cfg.UseColors).
		WithJSON(a.cfg.JSON).
		WithTree(a.cfg.Tree).
		WithHeaders(len(a.cfg.Paths) > 1).
		WithTreePath(a.cfg.TreePath)

	var (
		totals   summary.Totals
		skipped  []walker.SkippedItem
		failures *multierror.Error
	)
	for _, path := range a.cfg.Paths {
		var ictx *ignore.Context
		if a.cfg.GitIgnore {
			ictx = ignore.BuildInitialContext(path, ignoreOptions...)
		}

		a.log.Info("Listing: %s", path)
		root, items, err := walker.Walk(path, ictx, walkOptions...)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("app: timeout of %v reached: %w", a.cfg.Timeout, err)
			}
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("app: listing cancelled: %w", err)
			}
			a.log.Error("%v", err)
			failures = multierror.Append(failures, err)
			continue
		}

		p.Print(path, root)
		totals.Add(root, items)
		for _, item := range items {
			item.Path = filepath.Join(path, item.Path)
			skipped = append(skipped, item)
		}
	}

	if err := p.Finalize(); err != nil {
		return err
	}

	totals.Printed = p.GetCount()
	summary.DisplayResults(a.log, totals, time.Since(startTime))
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(skipped, a.errOut)
	}

	if err := failures.ErrorOrNil(); err != nil {
		return fmt.Errorf("app: %d path(s) could not be listed: %w", failures.Len(), err)
	}
	return nil
}
