// Package printer handles output formatting and display
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/bethropolis/dir-lister/internal/config"
	"github.com/bethropolis/dir-lister/internal/walker"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentBar  = "│   "
	indentNone = "    "
)

// Printer writes listings to the configured output destination
type Printer struct {
	output     io.Writer
	count      int64
	roots      int
	useColors  bool
	jsonOutput bool
	tree       bool
	headers    bool
	treePath   config.TreePath
	jsonRoots  []jsonEntry

	dirColor  *color.Color
	linkColor *color.Color
	execColor *color.Color
}

// New creates a new Printer with default settings
func New() *Printer {
	return &Printer{
		output:    os.Stdout,
		useColors: true,
		treePath:  config.DefaultTreePath,
	}
}

// WithOutput sets the output destination
func (p *Printer) WithOutput(w io.Writer) *Printer {
	p.output = w
	return p
}

// WithColors enables or disables colored output
func (p *Printer) WithColors(enabled bool) *Printer {
	p.useColors = enabled
	return p
}

// WithJSON enables JSON output mode
func (p *Printer) WithJSON(enabled bool) *Printer {
	p.jsonOutput = enabled
	return p
}

// WithTree prints the full tree with branch connectors
func (p *Printer) WithTree(enabled bool) *Printer {
	p.tree = enabled
	return p
}

// WithHeaders prefixes each listed directory with a "path:" line, used
// when several paths are listed
func (p *Printer) WithHeaders(enabled bool) *Printer {
	p.headers = enabled
	return p
}

// WithTreePath sets how entries are labelled
func (p *Printer) WithTreePath(tp config.TreePath) *Printer {
	p.treePath = tp
	return p
}

// Print outputs the listing of one root. arg is the path as the user gave it.
func (p *Printer) Print(arg string, root *walker.Entry) {
	if p.jsonOutput {
		p.jsonRoots = append(p.jsonRoots, p.toJSON(arg, root))
		p.count += int64(countEntries(root))
		return
	}

	p.setupColors()
	if p.roots > 0 && (p.tree || p.headers) {
		fmt.Fprintln(p.output)
	}
	p.roots++

	if p.tree {
		fmt.Fprintln(p.output, p.paint(root, p.label(arg, root, true)))
		p.count++
		p.printTree(arg, root.Children, "")
		return
	}

	if !root.IsDir {
		fmt.Fprintln(p.output, p.paint(root, p.label(arg, root, true)))
		p.count++
		return
	}
	if p.headers {
		fmt.Fprintf(p.output, "%s:\n", arg)
	}
	for _, e := range root.Children {
		fmt.Fprintln(p.output, p.paint(e, p.label(arg, e, false)))
		p.count++
	}
}

func (p *Printer) printTree(arg string, entries []*walker.Entry, prefix string) {
	for i, e := range entries {
		last := i == len(entries)-1
		branch, indent := branchMid, indentBar
		if last {
			branch, indent = branchLast, indentNone
		}
		fmt.Fprintf(p.output, "%s%s%s\n", prefix, branch, p.paint(e, p.label(arg, e, false)))
		p.count++
		if len(e.Children) > 0 {
			p.printTree(arg, e.Children, prefix+indent)
		}
	}
}

// label returns the text shown for e. The root line shows the argument as
// given unless absolute paths were asked for.
func (p *Printer) label(arg string, e *walker.Entry, isRoot bool) string {
	kind := p.treePath.Kind
	if !isRoot && p.treePath.Scope != config.TreePathScopeAll {
		kind = config.TreePathNone
	}

	switch kind {
	case config.TreePathAbsolute:
		return e.Path
	case config.TreePathRelative:
		if isRoot {
			return arg
		}
		return filepath.ToSlash(e.RelPath)
	}
	if isRoot {
		return arg
	}
	return e.Name
}

func (p *Printer) setupColors() {
	if !p.useColors || p.dirColor != nil {
		return
	}
	p.dirColor = color.New(color.FgBlue, color.Bold)
	p.linkColor = color.New(color.FgCyan)
	p.execColor = color.New(color.FgGreen, color.Bold)
	for _, c := range []*color.Color{p.dirColor, p.linkColor, p.execColor} {
		c.EnableColor()
	}
}

func (p *Printer) paint(e *walker.Entry, text string) string {
	if !p.useColors {
		return text
	}
	switch {
	case e.IsDir:
		return p.dirColor.Sprint(text)
	case e.Mode&fs.ModeSymlink != 0:
		return p.linkColor.Sprint(text)
	case e.Mode.IsRegular() && e.Mode.Perm()&0o111 != 0:
		return p.execColor.Sprint(text)
	}
	return text
}

// jsonEntry represents an entry in JSON output
type jsonEntry struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	IsDir    bool        `json:"is_dir"`
	Size     int64       `json:"size"`
	Children []jsonEntry `json:"children,omitempty"`
}

func (p *Printer) toJSON(arg string, e *walker.Entry) jsonEntry {
	path := filepath.ToSlash(filepath.Join(arg, e.RelPath))
	if p.treePath.Kind == config.TreePathAbsolute {
		path = e.Path
	}
	out := jsonEntry{
		Name:  e.Name,
		Path:  path,
		IsDir: e.IsDir,
		Size:  e.Size,
	}
	for _, c := range e.Children {
		out.Children = append(out.Children, p.toJSON(arg, c))
	}
	return out
}

// Finalize completes any pending operations (like writing the JSON array)
func (p *Printer) Finalize() error {
	if !p.jsonOutput {
		return nil
	}
	roots := p.jsonRoots
	if roots == nil {
		roots = []jsonEntry{}
	}
	data, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return fmt.Errorf("printer: marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(p.output, "%s\n", data)
	return err
}

// GetCount returns the number of entries printed
func (p *Printer) GetCount() int64 {
	return p.count
}

func countEntries(e *walker.Entry) int {
	n := 1
	for _, c := range e.Children {
		n += countEntries(c)
	}
	return n
}
