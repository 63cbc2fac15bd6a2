package filesystem

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/penwyp/go-path-tracer/internal/data/scanner"
)

// ErrNotDirectory is returned when a path that must be a directory is something else.
var ErrNotDirectory = errors.New("not a directory")

// FileSystem is the directory and file access used by the recorder and the path store.
type FileSystem interface {
	// EnsureDirectory creates dir and its parents when absent.
	EnsureDirectory(dir string) error
	// DirExists reports whether dir exists and is a directory.
	DirExists(dir string) bool
	// ListFiles returns the files of dir whose name matches pattern, in enumeration order.
	ListFiles(dir, pattern string) ([]string, error)
	// AppendLine opens path for appending, writes text and a newline, and closes it.
	AppendLine(path, text string) error
	// ReadAllLines returns the content of path split on '\n'.
	// A trailing newline produces a final empty line.
	ReadAllLines(path string) ([]string, error)
}

// OS is the FileSystem backed by the host operating system.
type OS struct{}

// NewOS returns the host FileSystem.
func NewOS() OS {
	return OS{}
}

func (OS) EnsureDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}
	return nil
}

func (OS) DirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

func (OS) ListFiles(dir, pattern string) ([]string, error) {
	return scanner.NewFileScanner(dir).WithPattern(pattern).Scan()
}

func (OS) AppendLine(path, text string) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s for append: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if _, err = file.WriteString(text + "\n"); err != nil {
		return fmt.Errorf("append to %s: %w", path, err)
	}
	return nil
}

func (OS) ReadAllLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(string(data), "\n"), nil
}
