package ignore

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/dir-lister/internal/logger"
)

func writeFile(t *testing.T, fsys billy.Filesystem, name, content string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
}

func TestCompilers_Verdicts(t *testing.T) {
	const patterns = "# build output\n*.log\n!keep.log\nbuild/\n"

	tests := []struct {
		name  string
		path  string
		isDir bool
		want  Verdict
	}{
		{name: "extension pattern", path: "app.log", want: Ignored},
		{name: "extension pattern nested", path: "logs/app.log", want: Ignored},
		{name: "negated pattern", path: "keep.log", want: Whitelisted},
		{name: "directory pattern on dir", path: "build", isDir: true, want: Ignored},
		{name: "directory pattern on file", path: "build", isDir: false, want: NoMatch},
		{name: "unrelated file", path: "main.go", want: NoMatch},
		{name: "comment is not a pattern", path: "# build output", want: NoMatch},
	}

	for _, engine := range Engines {
		t.Run(string(engine), func(t *testing.T) {
			fsys := memfs.New()
			writeFile(t, fsys, "/repo/.gitignore", patterns)

			compiler, err := NewCompiler(engine, fsys)
			require.NoError(t, err)
			m, err := compiler.Compile("/repo", "/repo/.gitignore")
			require.NoError(t, err)
			assert.Equal(t, "/repo", m.Root())

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					assert.Equal(t, tt.want, m.Test(tt.path, tt.isDir))
				})
			}
		})
	}
}

func TestCompilers_MissingFile(t *testing.T) {
	for _, engine := range Engines {
		t.Run(string(engine), func(t *testing.T) {
			compiler, err := NewCompiler(engine, memfs.New())
			require.NoError(t, err)

			_, err = compiler.Compile("/repo", "/repo/.gitignore")
			assert.Error(t, err)
		})
	}
}

func TestCompilers_CRLF(t *testing.T) {
	for _, engine := range Engines {
		t.Run(string(engine), func(t *testing.T) {
			fsys := memfs.New()
			writeFile(t, fsys, "/repo/.gitignore", "*.log\r\n*.tmp\r\n")

			compiler, err := NewCompiler(engine, fsys)
			require.NoError(t, err)
			m, err := compiler.Compile("/repo", "/repo/.gitignore")
			require.NoError(t, err)

			assert.Equal(t, Ignored, m.Test("a.log", false))
			assert.Equal(t, Ignored, m.Test("b.tmp", false))
		})
	}
}

func TestMonochrome_NegationBeforeRule(t *testing.T) {
	fsys := memfs.New()
	writeFile(t, fsys, "/repo/.gitignore", "!keep.log\n*.log\n")

	compiler, err := NewCompiler(EngineMonochrome, fsys)
	require.NoError(t, err)
	m, err := compiler.Compile("/repo", "/repo/.gitignore")
	require.NoError(t, err)

	assert.Equal(t, Whitelisted, m.Test("keep.log", false))
	assert.Equal(t, Ignored, m.Test("other.log", false))
	assert.Equal(t, NoMatch, m.Test("keep.txt", false))
}

func TestParseEngine(t *testing.T) {
	e, err := ParseEngine("gogit")
	require.NoError(t, err)
	assert.Equal(t, EngineGoGit, e)

	_, err = ParseEngine("ripgrep")
	assert.Error(t, err)

	_, err = NewCompiler("ripgrep", memfs.New())
	assert.Error(t, err)
}

// mapMatcher answers from a fixed table and records what it was asked
type mapMatcher struct {
	root    string
	answers map[string]Verdict
	asked   []string
}

func (m *mapMatcher) Root() string { return m.root }

func (m *mapMatcher) Test(p string, isDir bool) Verdict {
	suffix := ""
	if isDir {
		suffix = "/"
	}
	m.asked = append(m.asked, p+suffix)
	return m.answers[p]
}

func TestMatchPathOrParents(t *testing.T) {
	t.Run("walks parents as directories", func(t *testing.T) {
		m := &mapMatcher{root: "/repo"}
		assert.Equal(t, NoMatch, matchPathOrParents(m, "a/b/c.txt", false, logger.Nop{}))
		assert.Equal(t, []string{"a/b/c.txt", "a/b/", "a/"}, m.asked)
	})

	t.Run("first decisive verdict wins", func(t *testing.T) {
		m := &mapMatcher{root: "/repo", answers: map[string]Verdict{
			"a/b": Whitelisted,
			"a":   Ignored,
		}}
		assert.Equal(t, Whitelisted, matchPathOrParents(m, "a/b/c.txt", false, logger.Nop{}))
	})

	t.Run("root itself never matches", func(t *testing.T) {
		m := &mapMatcher{root: "/repo", answers: map[string]Verdict{".": Ignored}}
		assert.Equal(t, NoMatch, matchPathOrParents(m, ".", true, logger.Nop{}))
		assert.Empty(t, m.asked)
	})
}

type panicMatcher struct{}

func (panicMatcher) Root() string { return "/boom" }

func (panicMatcher) Test(string, bool) Verdict { panic("matcher bug") }

func TestSafeTest_RecoversPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, NoMatch, safeTest(panicMatcher{}, "x", false, logger.Nop{}))
	})
}

func TestRelativeTo(t *testing.T) {
	assert.Equal(t, "a/b.txt", relativeTo("/repo", "/repo/a/b.txt"))
	assert.Equal(t, ".", relativeTo("/repo", "/repo"))
	assert.Equal(t, "/other/b.txt", relativeTo("/repo", "/other/b.txt"))
	assert.Equal(t, "/repository/x", relativeTo("/repo", "/repository/x"))
	assert.Equal(t, "b.txt", relativeTo("/repo", "b.txt"))
}

// sabhiram and monochrome do not anchor a pattern whose only slash is in
// the middle, so it also matches below the ignore file's directory.
func TestCompilers_MiddleSlashAnchoring(t *testing.T) {
	tests := []struct {
		engine Engine
		nested bool
	}{
		{engine: EngineDenormal, nested: false},
		{engine: EngineGoGit, nested: false},
		{engine: EngineSabhiram, nested: true},
		{engine: EngineMonochrome, nested: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.engine), func(t *testing.T) {
			fsys := memfs.New()
			writeFile(t, fsys, "/repo/.gitignore", "docs/gen\n")

			ctx := New(WithFilesystem(fsys), WithEngine(tt.engine)).Extend("/repo")

			assert.True(t, ctx.IsIgnored("/repo/docs/gen", true))
			assert.Equal(t, tt.nested, ctx.IsIgnored("/repo/sub/docs/gen", true))
		})
	}
}
