package ignore

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/bethropolis/dir-lister/internal/gitrepo"
	"github.com/bethropolis/dir-lister/internal/logger"
)

// Option configures how contexts are built
type Option func(*settings)

type settings struct {
	fs         billy.Filesystem
	engine     Engine
	compiler   Compiler
	discoverer gitrepo.Discoverer
	log        logger.Sink
}

func newSettings(opts []Option) *settings {
	s := &settings{
		engine:     EngineDenormal,
		discoverer: gitrepo.New(),
		log:        logger.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fs == nil {
		s.fs = osfs.Default
	}
	return s
}

func (s *settings) env() *env {
	compiler := s.compiler
	if compiler == nil {
		var err error
		compiler, err = NewCompiler(s.engine, s.fs)
		if err != nil {
			s.log.Warn("%v; falling back to %s", err, EngineDenormal)
			compiler, _ = NewCompiler(EngineDenormal, s.fs)
		}
	}
	return &env{fs: s.fs, compiler: compiler, log: s.log}
}

// WithFilesystem sets the filesystem ignore files are read from
func WithFilesystem(fsys billy.Filesystem) Option {
	return func(s *settings) {
		if fsys != nil {
			s.fs = fsys
		}
	}
}

// WithEngine selects the pattern engine used to compile ignore files
func WithEngine(engine Engine) Option {
	return func(s *settings) {
		s.engine = engine
	}
}

// WithCompiler overrides the pattern engine entirely
func WithCompiler(c Compiler) Option {
	return func(s *settings) {
		s.compiler = c
	}
}

// WithDiscoverer sets the repository discoverer used by BuildInitialContext
func WithDiscoverer(d gitrepo.Discoverer) Option {
	return func(s *settings) {
		if d != nil {
			s.discoverer = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Sink) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}
