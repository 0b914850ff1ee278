package ignore

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dir-lister/internal/logger"
)

// relativeTo strips root from p. When p is not under root the unmodified
// path is returned.
func relativeTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	return rel
}

// matchPathOrParents tests p and then each of its parent directories against
// m, returning the first verdict other than NoMatch.
func matchPathOrParents(m Matcher, p string, isDir bool, log logger.Sink) Verdict {
	p = filepath.ToSlash(p)
	if p == "." || p == "" {
		return NoMatch
	}

	if v := safeTest(m, p, isDir, log); v != NoMatch {
		return v
	}
	for dir := path.Dir(p); dir != "." && dir != "/"; dir = path.Dir(dir) {
		if v := safeTest(m, dir, true, log); v != NoMatch {
			return v
		}
	}
	return NoMatch
}

// safeTest shields the walk from panics inside a third-party matcher. A
// panicking matcher counts as NoMatch so the entry stays visible.
func safeTest(m Matcher, p string, isDir bool, log logger.Sink) (v Verdict) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("PANIC recovered in matcher rooted at %q for path %q: %v", m.Root(), p, r)
			v = NoMatch
		}
	}()
	return m.Test(p, isDir)
}
