package parser

import (
	"fmt"

	"github.com/penwyp/go-path-tracer/internal/core/model"
	"github.com/penwyp/go-path-tracer/internal/data/filesystem"
	"github.com/penwyp/go-path-tracer/internal/util"
)

// Result is the outcome of parsing one session file.
type Result struct {
	File    string
	Samples []model.Sample
	Lines   int
	Skipped int
	// Consumed is the number of lines of the file that have been decoded,
	// counting from its first line. A later ParseFileFrom resumes there.
	Consumed int
}

// Parser turns session files into ordered sample sequences.
type Parser struct {
	fs filesystem.FileSystem
	// skipLastLine drops the final line of every file before decoding. The last
	// line is either the empty remainder after the trailing newline or a record
	// truncated by a crash mid-write.
	skipLastLine bool
}

// NewParser creates a Parser that drops the final line of each file.
func NewParser(fs filesystem.FileSystem) *Parser {
	return &Parser{fs: fs, skipLastLine: true}
}

// NewFullParser creates a Parser that decodes every line.
func NewFullParser(fs filesystem.FileSystem) *Parser {
	return &Parser{fs: fs}
}

// ParseFile reads path and decodes its records in file order.
// Malformed lines, including the header, are skipped.
func (p *Parser) ParseFile(path string) (Result, error) {
	return p.ParseFileFrom(path, 0)
}

// ParseFileFrom decodes the lines of path from index from onwards. Lines
// before it were consumed by an earlier call. A file that shrank below from
// yields no samples.
func (p *Parser) ParseFileFrom(path string, from int) (Result, error) {
	util.LogDebug(fmt.Sprintf("Start parsing file: %s (from line %d)", path, from))

	lines, err := p.fs.ReadAllLines(path)
	if err != nil {
		util.LogDebug(fmt.Sprintf("Failed to read file: %s - %v", path, err))
		return Result{File: path, Consumed: from}, err
	}

	if p.skipLastLine && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	consumed := max(from, len(lines))
	result := p.decode(lines[min(from, len(lines)):])
	result.File = path
	result.Consumed = consumed

	util.LogDebug(fmt.Sprintf("Parsed file %s: %d lines, %d samples, %d skipped",
		path, result.Lines, len(result.Samples), result.Skipped))
	return result, nil
}

// ParseLines decodes already-split lines.
func (p *Parser) ParseLines(lines []string) Result {
	if p.skipLastLine && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}
	result := p.decode(lines)
	result.Consumed = len(lines)
	return result
}

func (p *Parser) decode(lines []string) Result {
	result := Result{
		Samples: make([]model.Sample, 0, len(lines)),
		Lines:   len(lines),
	}
	for _, line := range lines {
		sample, ok := DecodeLine(line)
		if !ok {
			result.Skipped++
			continue
		}
		result.Samples = append(result.Samples, sample)
	}
	return result
}
