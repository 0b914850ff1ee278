// Package ignore decides whether a path is hidden by version-control ignore
// rules.
//
// A Context accumulates rules while a directory tree is walked top-down:
// BuildInitialContext picks up the enclosing repository's exclude list, and
// Extend layers in each directory's .gitignore. Contexts are immutable, so
// sibling subtrees can extend the same parent independently.
package ignore

import (
	"errors"
	"os"

	"github.com/bethropolis/dir-lister/internal/gitrepo"
)

// BuildInitialContext returns the context for a walk starting at start.
// Repository discovery runs once here; not finding a repository, or failing
// to compile its exclude file, simply leaves the context without
// repository-level rules.
func BuildInitialContext(start string, opts ...Option) *Context {
	s := newSettings(opts)
	ctx := &Context{env: s.env()}
	log := ctx.env.log

	repo, err := s.discoverer.Discover(start)
	if err != nil {
		if errors.Is(err, gitrepo.ErrNotFound) || errors.Is(err, gitrepo.ErrDisabled) {
			log.Debug("no repository rules for %s: %v", start, err)
		} else {
			log.Warn("repository discovery failed for %s: %v", start, err)
		}
		return ctx
	}

	workDir, ok := repo.WorkingDirectory()
	if !ok {
		log.Debug("repository at %s has no working directory", repo.MetadataDirectory())
		return ctx
	}

	exclude := repo.ExcludeFile()
	m, err := ctx.compileExclude(workDir, exclude)
	if err != nil {
		log.Warn("skipping repository exclude file %s: %v", exclude, err)
		return ctx
	}

	log.Debug("repository root %s", workDir)
	ctx.repoRoot = workDir
	ctx.repoExclude = m
	return ctx
}

// compileExclude compiles the repository exclude list. A repository without
// one gets an empty matcher.
func (c *Context) compileExclude(workDir, file string) (Matcher, error) {
	if _, err := c.env.fs.Stat(file); errors.Is(err, os.ErrNotExist) {
		return emptyMatcher(workDir), nil
	}
	return c.env.compiler.Compile(workDir, file)
}

type emptyMatcher string

func (m emptyMatcher) Root() string {
	return string(m)
}

func (emptyMatcher) Test(string, bool) Verdict {
	return NoMatch
}
