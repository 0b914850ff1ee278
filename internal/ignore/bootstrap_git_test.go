//go:build !nogit

package ignore

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInitialContext_RealRepository(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "info"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "info", "exclude"), []byte("build/\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("*.log\n"), 0o644))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(filepath.Join(sub, "build"), 0o755))

	ctx := BuildInitialContext(sub)

	got, ok := ctx.RepositoryRoot()
	require.True(t, ok)
	assert.Equal(t, root, got)
	assert.True(t, ctx.IsIgnored(filepath.Join(root, "build"), true))
	// the root .gitignore is above the walk start, so it is never layered
	assert.False(t, ctx.IsIgnored(filepath.Join(sub, "app.log"), false))

	ctx = ctx.Extend(root)
	assert.True(t, ctx.IsIgnored(filepath.Join(sub, "app.log"), false))
}
