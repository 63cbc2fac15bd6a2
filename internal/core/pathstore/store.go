package pathstore

import (
	"fmt"

	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/data/parser"
	"github.com/penwyp/go-path-tracer/internal/data/scanner"
	"github.com/penwyp/go-path-tracer/internal/metrics"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// Store holds one Path per session file found in the data directory.
// Paths are only ever appended.
type Store struct {
	dir     string
	fs      filesystem.FileSystem
	parser  *parser.Parser
	metrics *metrics.Collector

	paths  []*Path
	loaded map[string]*Path
}

// Option customises a Store.
type Option func(*Store)

// WithMetrics counts load and query activity on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Store) {
		s.metrics = c
	}
}

// NewStore creates an empty store over dir.
func NewStore(dir string, fs filesystem.FileSystem, opts ...Option) *Store {
	s := &Store{
		dir:    dir,
		fs:     fs,
		parser: parser.NewParser(fs),
		loaded: make(map[string]*Path),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Paths returns the loaded paths in load order.
func (s *Store) Paths() []*Path { return s.paths }

// Len returns the number of loaded paths.
func (s *Store) Len() int { return len(s.paths) }

// Load reads every session file of the data directory. Files that cannot be
// read are skipped, and so is the heat grid export. It returns the number of
// paths added.
func (s *Store) Load() int {
	if !s.fs.DirExists(s.dir) {
		util.LogDebug(fmt.Sprintf("Data directory does not exist, nothing to load: %s", s.dir))
		return 0
	}

	added := s.loadNew()
	util.LogInfo("Path store loaded", util.F("dir", s.dir), util.F("paths", len(s.paths)))
	return added
}

// Refresh appends paths for session files that appeared since the last load.
// Paths already in the store are not re-read.
func (s *Store) Refresh() int {
	if !s.fs.DirExists(s.dir) {
		return 0
	}

	added := s.loadNew()
	if added > 0 {
		util.LogInfo("Path store refreshed", util.F("added", added), util.F("paths", len(s.paths)))
	}
	return added
}

// Update brings the path of one session file up to date with the file: an
// unknown file becomes a new path, a known one gets the records appended
// since it was last read. Samples are only ever added. It returns the number
// of samples added.
func (s *Store) Update(file string) int {
	if !scanner.IsSessionFile(file) {
		return 0
	}
	if p, ok := s.loaded[file]; ok {
		return s.extend(p)
	}
	if p := s.loadFile(file); p != nil {
		return p.Len()
	}
	return 0
}

func (s *Store) loadNew() int {
	files, err := s.fs.ListFiles(s.dir, constants.FilePattern)
	if err != nil {
		util.LogWarn("Failed to list session files", util.F("dir", s.dir), util.F("error", err))
		return 0
	}

	added := 0
	for _, file := range files {
		if _, ok := s.loaded[file]; ok || !scanner.IsSessionFile(file) {
			continue
		}
		if s.loadFile(file) != nil {
			added++
		}
	}
	return added
}

func (s *Store) loadFile(file string) *Path {
	result, err := s.parser.ParseFile(file)
	if err != nil {
		util.LogWarn("Skipping unreadable session file", util.F("file", file), util.F("error", err))
		s.metrics.FileSkipped()
		return nil
	}

	p := newPath(file, result.Samples)
	p.consumed = result.Consumed
	s.loaded[file] = p
	s.paths = append(s.paths, p)
	s.metrics.FileLoaded(result.Skipped)
	return p
}

func (s *Store) extend(p *Path) int {
	result, err := s.parser.ParseFileFrom(p.Source, p.consumed)
	if err != nil {
		util.LogDebug("Cannot re-read session file", util.F("file", p.Source), util.F("error", err))
		return 0
	}

	p.consumed = result.Consumed
	p.extend(result.Samples)
	s.metrics.PathExtended(len(result.Samples), result.Skipped)
	return len(result.Samples)
}
