//go:build !nogit

package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Enabled reports whether this build can discover repositories
const Enabled = true

// New returns the go-git backed Discoverer
func New() Discoverer {
	return goGit{}
}

type goGit struct{}

// Discover opens the repository containing start, walking up through its
// parents until a .git directory or file is found.
func (goGit) Discover(start string) (*Repository, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return nil, fmt.Errorf("gitrepo: failed to get absolute path for '%s': %w", start, err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gitrepo: reading repository from '%s': %w", abs, err)
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, fmt.Errorf("gitrepo: repository at '%s' is not backed by a filesystem", abs)
	}
	metaDir := storage.Filesystem().Root()

	var workDir string
	wt, err := repo.Worktree()
	switch {
	case err == nil:
		workDir = wt.Filesystem.Root()
	case errors.Is(err, git.ErrIsBareRepository):
	default:
		return nil, fmt.Errorf("gitrepo: opening worktree for '%s': %w", abs, err)
	}

	return NewRepository(workDir, metaDir), nil
}
