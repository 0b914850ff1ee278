package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/dir-lister/internal/config"
	"github.com/bethropolis/dir-lister/internal/ignore"
)

func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		".gitignore":       "*.log\nbuild/\n",
		"README.md":        "hi",
		"debug.log":        "x",
		"build/out.bin":    "x",
		"src/main.go":      "package main",
		"src/.gitignore":   "*.tmp\n",
		"src/scratch.tmp":  "x",
		"src/lib/lib.go":   "package lib",
		"docs/.hidden.txt": "x",
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return root
}

func baseConfig(paths ...string) *config.Config {
	return &config.Config{
		Paths:        paths,
		Matcher:      ignore.EngineDenormal,
		GitDiscovery: false,
		TreePath:     config.DefaultTreePath,
		MaxWorkers:   2,
		LogLevel:     "none",
	}
}

func run(t *testing.T, cfg *config.Config) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := New(cfg, &out, &errOut).Run(context.Background())
	return out.String(), errOut.String(), err
}

func TestRun_TreeHonoringIgnoreFiles(t *testing.T) {
	root := project(t)
	cfg := baseConfig(root)
	cfg.Tree = true
	cfg.GitIgnore = true

	out, _, err := run(t, cfg)
	require.NoError(t, err)

	want := strings.Join([]string{
		root,
		"├── README.md",
		"├── docs",
		"└── src",
		"    ├── lib",
		"    │   └── lib.go",
		"    └── main.go",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestRun_ListWithoutIgnoreFiles(t *testing.T) {
	root := project(t)

	out, _, err := run(t, baseConfig(root))
	require.NoError(t, err)
	assert.Equal(t, "README.md\nbuild\ndebug.log\ndocs\nsrc\n", out)
}

func TestRun_ConcurrentMatchesSequential(t *testing.T) {
	root := project(t)
	cfg := baseConfig(root)
	cfg.Tree = true
	cfg.GitIgnore = true
	cfg.All = true

	seq, _, err := run(t, cfg)
	require.NoError(t, err)

	cfg.Concurrent = true
	conc, _, err := run(t, cfg)
	require.NoError(t, err)

	assert.Equal(t, seq, conc)
	assert.Contains(t, seq, ".hidden.txt")
	assert.NotContains(t, seq, "scratch.tmp")
}

func TestRun_JSON(t *testing.T) {
	root := project(t)
	cfg := baseConfig(root)
	cfg.JSON = true
	cfg.Tree = true
	cfg.GitIgnore = true

	out, _, err := run(t, cfg)
	require.NoError(t, err)

	var roots []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &roots))
	require.Len(t, roots, 1)
	assert.Equal(t, root, roots[0]["path"])
	assert.Equal(t, true, roots[0]["is_dir"])
}

func TestRun_MultiplePathsAndSkipped(t *testing.T) {
	one := project(t)
	two := project(t)
	cfg := baseConfig(one, two)
	cfg.GitIgnore = true
	cfg.ShowSkipped = true

	out, errOut, err := run(t, cfg)
	require.NoError(t, err)

	assert.Contains(t, out, one+":\n")
	assert.Contains(t, out, "\n\n"+two+":\n")
	assert.Contains(t, errOut, filepath.Join(one, "debug.log"))
	assert.Contains(t, errOut, filepath.Join(two, "build"))
}

func TestRun_MissingPathContinues(t *testing.T) {
	root := project(t)
	missing := filepath.Join(t.TempDir(), "missing")

	out, _, err := run(t, baseConfig(missing, root, missing+"2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 path(s) could not be listed")
	assert.Contains(t, err.Error(), missing+"2")
	assert.Contains(t, out, root+":\n")
}

func TestRun_Cancelled(t *testing.T) {
	root := project(t)
	cfg := baseConfig(root)
	cfg.Tree = true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errOut bytes.Buffer
	err := New(cfg, &out, &errOut).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LogsAtInfo(t *testing.T) {
	root := project(t)
	cfg := baseConfig(root)
	cfg.LogLevel = "info"

	_, errOut, err := run(t, cfg)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Listing complete in")
	assert.Contains(t, errOut, "INFO")
	// list mode prints the five visible children of the root
	assert.Contains(t, errOut, "Printed 5 entries.")
}
