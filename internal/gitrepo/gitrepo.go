// Package gitrepo locates the git repository enclosing a path.
//
// Discovery walks upward from a starting directory. The default Discoverer is
// backed by go-git; building with the nogit tag, or asking for Disabled(),
// yields a Discoverer that never finds anything.
package gitrepo

import (
	"errors"
	"path/filepath"
)

var (
	// ErrNotFound is returned when no repository encloses the start path
	ErrNotFound = errors.New("gitrepo: no repository found")
	// ErrDisabled is returned by the disabled discoverer
	ErrDisabled = errors.New("gitrepo: repository discovery disabled")
)

// Discoverer finds the repository enclosing a path
type Discoverer interface {
	Discover(start string) (*Repository, error)
}

// Repository describes a discovered repository
type Repository struct {
	workDir string
	metaDir string
}

// NewRepository builds a Repository from its directories. workDir is empty
// for bare repositories.
func NewRepository(workDir, metaDir string) *Repository {
	return &Repository{workDir: workDir, metaDir: metaDir}
}

// WorkingDirectory returns the worktree root, if the repository has one
func (r *Repository) WorkingDirectory() (string, bool) {
	return r.workDir, r.workDir != ""
}

// MetadataDirectory returns the repository's .git directory
func (r *Repository) MetadataDirectory() string {
	return r.metaDir
}

// ExcludeFile returns the path of the repository-local exclude list
func (r *Repository) ExcludeFile() string {
	return filepath.Join(r.metaDir, "info", "exclude")
}

type disabled struct{}

func (disabled) Discover(string) (*Repository, error) {
	return nil, ErrDisabled
}

// Disabled returns a Discoverer that always fails with ErrDisabled
func Disabled() Discoverer {
	return disabled{}
}
