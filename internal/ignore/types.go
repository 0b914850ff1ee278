package ignore

import "fmt"

// FileName is the per-directory ignore file consulted by Extend
const FileName = ".gitignore"

// Verdict is the outcome of testing one path against one compiled rule file
type Verdict int

const (
	// NoMatch means no rule in the file applies to the path
	NoMatch Verdict = iota
	// Ignored means the last applicable rule excludes the path
	Ignored
	// Whitelisted means the last applicable rule is a negation ("!pattern")
	Whitelisted
)

func (v Verdict) String() string {
	switch v {
	case NoMatch:
		return "no-match"
	case Ignored:
		return "ignored"
	case Whitelisted:
		return "whitelisted"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}

// Matcher is one compiled pattern file anchored at Root
type Matcher interface {
	// Root is the directory the patterns are relative to
	Root() string
	// Test evaluates a slash-separated path relative to Root
	Test(relativePath string, isDir bool) Verdict
}

// Compiler turns a pattern file into a Matcher rooted at root
type Compiler interface {
	Compile(root, file string) (Matcher, error)
}

// Engine names a Compiler implementation
type Engine string

const (
	EngineDenormal   Engine = "denormal"
	EngineGoGit      Engine = "gogit"
	EngineSabhiram   Engine = "sabhiram"
	EngineMonochrome Engine = "monochrome"
)

// Engines lists the accepted engine names
var Engines = []Engine{EngineDenormal, EngineGoGit, EngineSabhiram, EngineMonochrome}

// ParseEngine validates an engine name
func ParseEngine(name string) (Engine, error) {
	for _, e := range Engines {
		if string(e) == name {
			return e, nil
		}
	}
	return "", fmt.Errorf("ignore: unknown matcher engine '%s' (want one of %v)", name, Engines)
}
