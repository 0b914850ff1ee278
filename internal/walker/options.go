package walker

import (
	"context"

	"github.com/bethropolis/dir-lister/internal/logger"
)

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger     logger.Sink
	Concurrent bool
	MaxWorkers int
	Context    context.Context

	// ShowHidden lists entries whose name starts with '.'
	ShowHidden bool
	// GitIgnore filters entries through the ignore context and hides .git
	GitIgnore bool
	// Recursive descends into subdirectories; otherwise only the root's
	// immediate children are listed
	Recursive bool
	// MaxDepth limits recursion, 0 means unlimited
	MaxDepth int
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:     logger.Nop{},
		MaxWorkers: 10,
		Context:    context.Background(),
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(log logger.Sink) Option {
	return func(opts *WalkOptions) {
		if log != nil {
			opts.Logger = log
		}
	}
}

// WithConcurrency enables or disables walking sibling directories in parallel
func WithConcurrency(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Concurrent = enabled
	}
}

// WithMaxWorkers sets the maximum number of concurrent walkers
func WithMaxWorkers(workers int) Option {
	return func(opts *WalkOptions) {
		if workers > 0 {
			opts.MaxWorkers = workers
		}
	}
}

// WithContext sets the context for cancellation
func WithContext(ctx context.Context) Option {
	return func(opts *WalkOptions) {
		if ctx != nil {
			opts.Context = ctx
		}
	}
}

// WithShowHidden lists dot entries
func WithShowHidden(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.ShowHidden = enabled
	}
}

// WithGitIgnore honors .gitignore files and the repository exclude list
func WithGitIgnore(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.GitIgnore = enabled
	}
}

// WithRecursive walks the whole tree instead of one level
func WithRecursive(enabled bool) Option {
	return func(opts *WalkOptions) {
		opts.Recursive = enabled
	}
}

// WithMaxDepth limits how many levels below the root are listed
func WithMaxDepth(depth int) Option {
	return func(opts *WalkOptions) {
		if depth >= 0 {
			opts.MaxDepth = depth
		}
	}
}
