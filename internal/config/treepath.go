package config

import "fmt"

// TreePathKind selects how tree entries are labelled
type TreePathKind string

const (
	TreePathNone     TreePathKind = "none"
	TreePathAbsolute TreePathKind = "absolute"
	TreePathRelative TreePathKind = "relative"
)

// TreePathScope selects which tree entries get a path label
type TreePathScope string

const (
	TreePathScopeRoot TreePathScope = "root"
	TreePathScopeAll  TreePathScope = "all"
)

// TreePath is the combined tree-path setting
type TreePath struct {
	Kind  TreePathKind
	Scope TreePathScope
}

// DefaultTreePath labels entries by name only
var DefaultTreePath = TreePath{Kind: TreePathNone, Scope: TreePathScopeRoot}

// resolveTreePath treats kind and scope as one setting: if either half is
// given on the command line, the command line wins and the other half takes
// its default rather than the config file's value.
func resolveTreePath(f *Flags, file *File) (TreePath, error) {
	if f.changed("tree-path") || f.changed("tree-path-scope") {
		var kind, scope *string
		if f.changed("tree-path") {
			kind = &f.TreePath
		}
		if f.changed("tree-path-scope") {
			scope = &f.TreePathScope
		}
		return newTreePath(kind, scope)
	}
	if file.TreePath != nil || file.TreePathScope != nil {
		return newTreePath(file.TreePath, file.TreePathScope)
	}
	return DefaultTreePath, nil
}

func newTreePath(kind, scope *string) (TreePath, error) {
	tp := DefaultTreePath
	if kind != nil {
		switch k := TreePathKind(*kind); k {
		case TreePathNone, TreePathAbsolute, TreePathRelative:
			tp.Kind = k
		default:
			return tp, fmt.Errorf("config: invalid value '%s' for 'tree-path' (want none, absolute or relative)", *kind)
		}
	}
	if scope != nil {
		switch s := TreePathScope(*scope); s {
		case TreePathScopeRoot, TreePathScopeAll:
			tp.Scope = s
		default:
			return tp, fmt.Errorf("config: invalid value '%s' for 'tree-path-scope' (want root or all)", *scope)
		}
	}
	return tp, nil
}
