package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/penwyp/go-path-tracer/internal/core/constants"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// FileScanner lists the session files of a single data directory.
// Sub-directories are not descended into.
type FileScanner struct {
	baseDir string
	pattern string
}

// NewFileScanner creates a FileScanner matching *.csv
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		pattern: constants.FilePattern,
	}
}

// WithPattern replaces the glob matched against file names. Matching ignores case.
func (s *FileScanner) WithPattern(pattern string) *FileScanner {
	if pattern != "" {
		s.pattern = pattern
	}
	return s
}

// Scan returns the paths of all matching regular files in the directory.
// A missing directory yields no files and no error.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			util.LogDebug(fmt.Sprintf("Skip scan, directory does not exist: %s", s.baseDir))
			return nil, nil
		}
		return nil, fmt.Errorf("read directory %s: %w", s.baseDir, err)
	}

	pattern := strings.ToLower(s.pattern)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, strings.ToLower(entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", s.pattern, err)
		}
		if ok {
			files = append(files, filepath.Join(s.baseDir, entry.Name()))
		}
	}

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d entries, found %d files",
		time.Since(start), len(entries), len(files)))

	return files, nil
}

// IsSessionFile reports whether path names a session file: any .csv except
// the heat grid export, whose rows would otherwise decode as samples.
func IsSessionFile(path string) bool {
	name := filepath.Base(path)
	return strings.EqualFold(filepath.Ext(name), constants.FileExtension) &&
		!strings.EqualFold(name, constants.HeatGridFile)
}
