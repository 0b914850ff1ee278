package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/bethropolis/dir-lister/internal/ignore"
)

// Walk lists rootDir. Every directory extends the ignore context with its
// own .gitignore before its entries are filtered, so sibling subtrees see
// only their own ancestors' rules.
//
// It returns the root entry, the items that were filtered or could not be
// read, and an error if the root itself could not be listed or the walk was
// cancelled.
func Walk(rootDir string, ictx *ignore.Context, opts ...Option) (*Entry, []SkippedItem, error) {
	startTime := time.Now()

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: failed to get absolute path for '%s': %w", rootDir, err)
	}

	info, err := os.Stat(absRootDir)
	if err != nil {
		return nil, nil, fmt.Errorf("walker: cannot access '%s': %w", rootDir, err)
	}

	w := &walk{
		opts:    options,
		tracker: NewSkippedTracker(64),
	}
	if options.Concurrent {
		w.sem = semaphore.NewWeighted(int64(options.MaxWorkers))
	}

	options.Logger.Debug("Walk started. Root: %s, Concurrent: %v, Workers: %d",
		absRootDir, options.Concurrent, options.MaxWorkers)

	root := newEntry(filepath.Base(absRootDir), absRootDir, ".", info)
	if !root.IsDir {
		return root, nil, nil
	}

	if err := w.readDir(root, ictx, 1); err != nil {
		if isCancellation(err) {
			return root, w.tracker.Items(), err
		}
		return nil, w.tracker.Items(), fmt.Errorf("walker: reading '%s': %w", rootDir, err)
	}

	options.Logger.Debug("Walk of %s finished in %s", absRootDir, time.Since(startTime))
	return root, w.tracker.Items(), nil
}

type walk struct {
	opts    WalkOptions
	tracker *SkippedTracker
	sem     *semaphore.Weighted
}

// readDir fills dir.Children. depth is the level of those children.
func (w *walk) readDir(dir *Entry, ictx *ignore.Context, depth int) error {
	if err := w.opts.Context.Err(); err != nil {
		return err
	}

	if w.opts.GitIgnore {
		ictx = ictx.Extend(dir.Path)
	}

	dirEntries, err := os.ReadDir(dir.Path)
	if err != nil {
		return err
	}

	children := make([]*Entry, 0, len(dirEntries))
	var subdirs []*Entry
	for _, d := range dirEntries {
		name := d.Name()
		path := filepath.Join(dir.Path, name)
		relPath := filepath.Join(dir.RelPath, name)
		isDir := d.IsDir()

		if reason, skip := w.filter(name, path, isDir, ictx); skip {
			w.opts.Logger.Debug("Skipped %q: %s", relPath, reason)
			w.tracker.Track(relPath, reason, isDir)
			continue
		}

		info, err := d.Info()
		if err != nil {
			w.opts.Logger.Warn("File info error for %q: %v", relPath, err)
			w.tracker.Track(relPath, ReasonSkippedInfoError, isDir)
			continue
		}

		child := newEntry(name, path, relPath, info)
		children = append(children, child)
		if isDir && w.descend(depth) {
			subdirs = append(subdirs, child)
		}
	}
	dir.Children = children

	return w.readSubdirs(subdirs, ictx, depth+1)
}

func (w *walk) readSubdirs(subdirs []*Entry, ictx *ignore.Context, depth int) error {
	if w.sem == nil {
		for _, sub := range subdirs {
			if err := w.readSubdir(sub, ictx, depth); err != nil {
				return err
			}
		}
		return nil
	}

	// a subtree gets its own goroutine only while a worker slot is free;
	// otherwise it is walked inline, which keeps nested waits deadlock free
	var g errgroup.Group
	for _, sub := range subdirs {
		if w.sem.TryAcquire(1) {
			g.Go(func() error {
				defer w.sem.Release(1)
				return w.readSubdir(sub, ictx, depth)
			})
			continue
		}
		if err := w.readSubdir(sub, ictx, depth); err != nil {
			_ = g.Wait()
			return err
		}
	}
	return g.Wait()
}

// readSubdir keeps an unreadable directory as a childless entry.
func (w *walk) readSubdir(sub *Entry, ictx *ignore.Context, depth int) error {
	err := w.readDir(sub, ictx, depth)
	if err == nil || isCancellation(err) {
		return err
	}

	reason := ReasonSkippedReadError
	if errors.Is(err, fs.ErrPermission) {
		reason = ReasonSkippedPermError
	}
	w.opts.Logger.Warn("Cannot read directory %q: %v", sub.RelPath, err)
	w.tracker.Track(sub.RelPath, reason, true)
	sub.Err = err
	sub.Children = nil
	return nil
}

func (w *walk) filter(name, path string, isDir bool, ictx *ignore.Context) (SkippedReason, bool) {
	if !w.opts.ShowHidden && strings.HasPrefix(name, ".") {
		return ReasonIgnoredHidden, true
	}
	if !w.opts.GitIgnore {
		return "", false
	}
	if isDir && name == ".git" {
		return ReasonIgnoredGitDir, true
	}
	if ictx.IsIgnored(path, isDir) {
		return ReasonIgnoredRule, true
	}
	return "", false
}

func (w *walk) descend(depth int) bool {
	if !w.opts.Recursive {
		return false
	}
	return w.opts.MaxDepth == 0 || depth < w.opts.MaxDepth
}

func newEntry(name, path, relPath string, info fs.FileInfo) *Entry {
	e := &Entry{
		Name:    name,
		Path:    path,
		RelPath: relPath,
		IsDir:   info.IsDir(),
		Mode:    info.Mode(),
	}
	if !e.IsDir {
		e.Size = info.Size()
	}
	return e
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
