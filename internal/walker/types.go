// Package walker builds the listing tree for a root path
package walker

import (
	"io/fs"
	"sort"
	"sync"
)

// Entry is one listed file or directory
type Entry struct {
	Name    string
	Path    string // absolute path
	RelPath string // path relative to the listing root, "." for the root
	IsDir   bool
	Size    int64
	Mode    fs.FileMode

	// Err is set when a directory could not be read; Children is then empty
	Err      error
	Children []*Entry
}

// Counts returns the number of directories and files below e, e excluded
func (e *Entry) Counts() (dirs, files int) {
	for _, c := range e.Children {
		if c.IsDir {
			dirs++
			d, f := c.Counts()
			dirs += d
			files += f
		} else {
			files++
		}
	}
	return dirs, files
}

// SkippedReason clarifies why a file/directory was not listed.
type SkippedReason string

const (
	ReasonIgnoredHidden    SkippedReason = "Ignored (Hidden Rule)"
	ReasonIgnoredRule      SkippedReason = "Ignored (Gitignore/Exclude Rule)"
	ReasonIgnoredGitDir    SkippedReason = "Ignored (Repository Metadata)"
	ReasonSkippedPermError SkippedReason = "Skipped (Permission Error)"
	ReasonSkippedReadError SkippedReason = "Skipped (Read Error)"
	ReasonSkippedInfoError SkippedReason = "Skipped (File Info Error)"
)

// SkippedItem holds information about a skipped path.
type SkippedItem struct {
	Path   string        `json:"path"`
	Reason SkippedReason `json:"reason"`
	IsDir  bool          `json:"is_dir"`
}

// SkippedTracker collects skipped items from concurrent walkers
type SkippedTracker struct {
	items []SkippedItem
	mutex sync.Mutex
}

// NewSkippedTracker creates a new SkippedTracker
func NewSkippedTracker(capacity int) *SkippedTracker {
	return &SkippedTracker{
		items: make([]SkippedItem, 0, capacity),
	}
}

// Track adds a skipped item to the tracker
func (st *SkippedTracker) Track(path string, reason SkippedReason, isDir bool) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.items = append(st.items, SkippedItem{Path: path, Reason: reason, IsDir: isDir})
}

// Items returns a copy of the tracked items sorted by path
func (st *SkippedTracker) Items() []SkippedItem {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	items := make([]SkippedItem, len(st.items))
	copy(items, st.items)
	sort.Slice(items, func(i, j int) bool {
		return items[i].Path < items[j].Path
	})
	return items
}
