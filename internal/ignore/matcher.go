package ignore

import (
	"bytes"
	"fmt"
	"strings"

	denormal "github.com/denormal/go-gitignore"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5/plumbing/format/gitignore"
	monochrome "github.com/monochromegane/go-gitignore"
	sabhiram "github.com/sabhiram/go-gitignore"
)

// NewCompiler returns the Compiler for engine, reading pattern files from fsys
func NewCompiler(engine Engine, fsys billy.Filesystem) (Compiler, error) {
	switch engine {
	case EngineDenormal, "":
		return &denormalCompiler{fs: fsys}, nil
	case EngineGoGit:
		return &goGitCompiler{fs: fsys}, nil
	case EngineSabhiram:
		return &sabhiramCompiler{fs: fsys}, nil
	case EngineMonochrome:
		return &monochromeCompiler{fs: fsys}, nil
	default:
		return nil, fmt.Errorf("ignore: unknown matcher engine '%s'", engine)
	}
}

// readPatternFile loads a pattern file with CRLF line endings folded to LF
func readPatternFile(fsys billy.Filesystem, file string) ([]byte, error) {
	content, err := util.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("ignore: reading '%s': %w", file, err)
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), nil
}

func patternLines(content []byte) []string {
	return strings.Split(string(content), "\n")
}

// --- denormal/go-gitignore ---

type denormalCompiler struct {
	fs billy.Filesystem
}

func (c *denormalCompiler) Compile(root, file string) (Matcher, error) {
	content, err := readPatternFile(c.fs, file)
	if err != nil {
		return nil, err
	}

	var parseErr denormal.Error
	gi := denormal.New(bytes.NewReader(content), root, func(e denormal.Error) bool {
		parseErr = e
		return false
	})
	if parseErr != nil {
		return nil, fmt.Errorf("ignore: parsing '%s' at %s: %w", file, parseErr.Position(), parseErr.Underlying())
	}
	return &denormalMatcher{root: root, gi: gi}, nil
}

type denormalMatcher struct {
	root string
	gi   denormal.GitIgnore
}

func (m *denormalMatcher) Root() string { return m.root }

func (m *denormalMatcher) Test(relativePath string, isDir bool) Verdict {
	match := m.gi.Relative(relativePath, isDir)
	switch {
	case match == nil:
		return NoMatch
	case match.Include():
		return Whitelisted
	case match.Ignore():
		return Ignored
	}
	return NoMatch
}

// --- go-git plumbing/format/gitignore ---

type goGitCompiler struct {
	fs billy.Filesystem
}

func (c *goGitCompiler) Compile(root, file string) (Matcher, error) {
	content, err := readPatternFile(c.fs, file)
	if err != nil {
		return nil, err
	}

	var patterns []gogit.Pattern
	for _, line := range patternLines(content) {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		patterns = append(patterns, gogit.ParsePattern(line, nil))
	}
	return &goGitMatcher{root: root, patterns: patterns}, nil
}

type goGitMatcher struct {
	root     string
	patterns []gogit.Pattern
}

func (m *goGitMatcher) Root() string { return m.root }

// Test walks the patterns last to first; the first decisive one wins.
func (m *goGitMatcher) Test(relativePath string, isDir bool) Verdict {
	segments := strings.Split(strings.Trim(relativePath, "/"), "/")
	for i := len(m.patterns) - 1; i >= 0; i-- {
		switch m.patterns[i].Match(segments, isDir) {
		case gogit.Exclude:
			return Ignored
		case gogit.Include:
			return Whitelisted
		}
	}
	return NoMatch
}

// --- sabhiram/go-gitignore ---

type sabhiramCompiler struct {
	fs billy.Filesystem
}

func (c *sabhiramCompiler) Compile(root, file string) (Matcher, error) {
	content, err := readPatternFile(c.fs, file)
	if err != nil {
		return nil, err
	}
	return &sabhiramMatcher{root: root, gi: sabhiram.CompileIgnoreLines(patternLines(content)...)}, nil
}

type sabhiramMatcher struct {
	root string
	gi   *sabhiram.GitIgnore
}

func (m *sabhiramMatcher) Root() string { return m.root }

// Test has no notion of directories, so a directory is probed with a
// trailing slash as well to let "name/" patterns apply.
func (m *sabhiramMatcher) Test(relativePath string, isDir bool) Verdict {
	matched, how := m.gi.MatchesPathHow(relativePath)
	if !matched && isDir {
		if dirMatched, dirHow := m.gi.MatchesPathHow(relativePath + "/"); dirMatched || dirHow != nil {
			matched, how = dirMatched, dirHow
		}
	}
	switch {
	case matched:
		return Ignored
	case how != nil:
		// a pattern matched but a later negation re-included the path
		return Whitelisted
	}
	return NoMatch
}

// --- monochromegane/go-gitignore ---

type monochromeCompiler struct {
	fs billy.Filesystem
}

// Compile splits negations into their own matcher so Test can tell a
// re-included path from one no rule mentions.
func (c *monochromeCompiler) Compile(root, file string) (Matcher, error) {
	content, err := readPatternFile(c.fs, file)
	if err != nil {
		return nil, err
	}

	var ignores, accepts strings.Builder
	for _, line := range patternLines(content) {
		if rest, ok := strings.CutPrefix(line, "!"); ok {
			accepts.WriteString(rest + "\n")
			continue
		}
		ignores.WriteString(line + "\n")
	}
	return &monochromeMatcher{
		root:   root,
		ignore: monochrome.NewGitIgnoreFromReader(".", strings.NewReader(ignores.String())),
		accept: monochrome.NewGitIgnoreFromReader(".", strings.NewReader(accepts.String())),
	}, nil
}

type monochromeMatcher struct {
	root   string
	ignore monochrome.IgnoreMatcher
	accept monochrome.IgnoreMatcher
}

func (m *monochromeMatcher) Root() string { return m.root }

// Test gives negations priority over every other rule, whatever their order.
func (m *monochromeMatcher) Test(relativePath string, isDir bool) Verdict {
	if !m.ignore.Match(relativePath, isDir) {
		return NoMatch
	}
	if m.accept.Match(relativePath, isDir) {
		return Whitelisted
	}
	return Ignored
}
