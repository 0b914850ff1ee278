// Package summary handles display of listing results and statistics
package summary

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bethropolis/dir-lister/internal/walker"
)

// Logger defines the minimal logging interface required
type Logger interface {
	Info(format string, args ...interface{})
}

// Totals accumulates counts over every listed root
type Totals struct {
	Roots   int
	Dirs    int
	Files   int
	Skipped int
	Printed int64
	Bytes   uint64
}

// Add counts the entries below root and the items skipped while walking it
func (t *Totals) Add(root *walker.Entry, skipped []walker.SkippedItem) {
	t.Roots++
	t.Skipped += len(skipped)
	if root == nil {
		return
	}
	t.Bytes += totalSize(root)
	if !root.IsDir {
		t.Files++
		return
	}
	dirs, files := root.Counts()
	t.Dirs += dirs
	t.Files += files
}

func totalSize(e *walker.Entry) uint64 {
	n := uint64(0)
	if e.Size > 0 {
		n = uint64(e.Size)
	}
	for _, c := range e.Children {
		n += totalSize(c)
	}
	return n
}

// DisplayResults shows the end results of a listing
func DisplayResults(logger Logger, totals Totals, duration time.Duration) {
	logger.Info("Listed %d directories and %d files (%s) under %d path(s); %d skipped.",
		totals.Dirs, totals.Files, humanize.Bytes(totals.Bytes), totals.Roots, totals.Skipped)
	logger.Info("Printed %d entries.", totals.Printed)
	logger.Info("Listing complete in %v.", duration.Round(time.Millisecond))
}

// DisplaySkippedItems prints skipped items with their reason. The items are
// expected sorted by path, as returned by the walker.
func DisplaySkippedItems(skippedItems []walker.SkippedItem, output io.Writer) {
	fmt.Fprintf(output, "--- Skipped Items (%d) ---\n", len(skippedItems))
	if len(skippedItems) == 0 {
		fmt.Fprintln(output, "No items were skipped.")
	}
	for _, item := range skippedItems {
		typeStr := "FILE"
		if item.IsDir {
			typeStr = "DIR " // Add space for alignment
		}
		fmt.Fprintf(output, "Skipped %s: %-50s [%s]\n", typeStr, item.Path, item.Reason)
	}
	fmt.Fprintln(output, "--- End Skipped Items ---")
}
