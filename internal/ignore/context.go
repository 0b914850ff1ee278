package ignore

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/bethropolis/dir-lister/internal/logger"
)

// env is shared, read-only, by every context derived from one bootstrap
type env struct {
	fs       billy.Filesystem
	compiler Compiler
	log      logger.Sink
}

// layer is one directory's compiled ignore file. Layers form a list from
// the deepest directory back to the shallowest; a child context only
// allocates its own node and points at its parent's.
type layer struct {
	dir     string
	matcher Matcher
	parent  *layer
	depth   int
}

// Context is the set of ignore rules visible at one point of a walk. It is
// never modified after creation and may be shared between goroutines.
type Context struct {
	env         *env
	repoRoot    string
	repoExclude Matcher
	top         *layer
}

// New returns a context with no repository rules and no layers
func New(opts ...Option) *Context {
	s := newSettings(opts)
	return &Context{env: s.env()}
}

// RepositoryRoot returns the repository working directory, if one was found
// and its exclude file compiled.
func (c *Context) RepositoryRoot() (string, bool) {
	if c == nil || c.repoExclude == nil {
		return "", false
	}
	return c.repoRoot, true
}

// Depth returns the number of directory layers
func (c *Context) Depth() int {
	if c == nil || c.top == nil {
		return 0
	}
	return c.top.depth
}

// layerDirs returns the directories of the layers, shallowest first
func (c *Context) layerDirs() []string {
	out := make([]string, c.Depth())
	for l := c.top; l != nil; l = l.parent {
		out[l.depth-1] = l.dir
	}
	return out
}

// Extend returns the context for dir. If dir holds an ignore file that
// compiles, the result carries one more layer; otherwise c itself is
// returned. A broken ignore file is logged and skipped.
func (c *Context) Extend(dir string) *Context {
	if c == nil {
		return nil
	}
	dir = filepath.Clean(dir)
	file := filepath.Join(dir, FileName)

	if _, err := c.env.fs.Stat(file); err != nil {
		return c
	}

	m, err := c.env.compiler.Compile(dir, file)
	if err != nil {
		c.env.log.Warn("skipping unusable ignore file %s: %v", file, err)
		return c
	}

	next := *c
	next.top = &layer{dir: dir, matcher: m, parent: c.top, depth: c.Depth() + 1}
	c.env.log.Debug("layered %s, active layers %v", file, next.layerDirs())
	return &next
}

// IsIgnored reports whether p is excluded by the rules of c.
//
// The repository exclude list is consulted first, then the directory layers
// from deepest to shallowest. The first source that reports Ignored decides;
// a Whitelisted verdict never overrides another source's Ignored verdict.
func (c *Context) IsIgnored(p string, isDir bool) bool {
	if c == nil {
		return false
	}

	if c.repoExclude != nil {
		rel := relativeTo(c.repoRoot, p)
		if matchPathOrParents(c.repoExclude, rel, isDir, c.env.log) == Ignored {
			return true
		}
	}

	for l := c.top; l != nil; l = l.parent {
		rel := relativeTo(l.dir, p)
		if matchPathOrParents(l.matcher, rel, isDir, c.env.log) == Ignored {
			return true
		}
	}
	return false
}
