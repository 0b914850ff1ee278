package summary

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bethropolis/dir-lister/internal/walker"
)

type recordingLogger struct{ lines []string }

func (r *recordingLogger) Info(format string, args ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestTotals_Add(t *testing.T) {
	root := &walker.Entry{IsDir: true, Children: []*walker.Entry{
		{Name: "a", IsDir: true, Children: []*walker.Entry{{Name: "x", Size: 1000}, {Name: "y", Size: 500}}},
		{Name: "b"},
	}}

	var totals Totals
	totals.Add(root, []walker.SkippedItem{{Path: ".git", IsDir: true}})
	totals.Add(&walker.Entry{Name: "single", Size: 20}, nil)
	totals.Add(nil, []walker.SkippedItem{{Path: "gone"}})

	assert.Equal(t, Totals{Roots: 3, Dirs: 1, Files: 4, Skipped: 2, Bytes: 1520}, totals)
}

func TestDisplayResults(t *testing.T) {
	log := &recordingLogger{}
	DisplayResults(log, Totals{Roots: 1, Dirs: 2, Files: 3, Skipped: 4, Printed: 6, Bytes: 2048}, 1500*time.Microsecond)

	assert.Equal(t, []string{
		"Listed 2 directories and 3 files (2.0 kB) under 1 path(s); 4 skipped.",
		"Printed 6 entries.",
		"Listing complete in 2ms.",
	}, log.lines)
}

func TestDisplaySkippedItems(t *testing.T) {
	var buf bytes.Buffer
	DisplaySkippedItems([]walker.SkippedItem{
		{Path: "app.log", Reason: walker.ReasonIgnoredRule},
		{Path: "node_modules", Reason: walker.ReasonIgnoredRule, IsDir: true},
	}, &buf)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "--- Skipped Items (2) ---", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Skipped FILE: app.log "))
	assert.True(t, strings.HasSuffix(lines[2], "[Ignored (Gitignore/Exclude Rule)]"))
	assert.Contains(t, lines[2], "Skipped DIR : node_modules")
	assert.Equal(t, "--- End Skipped Items ---", lines[3])
}

func TestDisplaySkippedItems_None(t *testing.T) {
	var buf bytes.Buffer
	DisplaySkippedItems(nil, &buf)
	assert.Contains(t, buf.String(), "No items were skipped.")
}
