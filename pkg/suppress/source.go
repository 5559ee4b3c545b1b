package suppress

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// SourceCache holds the lines of every file read during a run.
// Files are read on first use. It is safe for concurrent use.
type SourceCache struct {
	fs    afero.Fs
	mu    sync.RWMutex
	files map[string]*source
}

type source struct {
	lines []string
	err   error
}

func NewSourceCache(fs afero.Fs) *SourceCache {
	return &SourceCache{
		fs:    fs,
		files: map[string]*source{},
	}
}

// Line returns the 1-indexed line of a file.
func (c *SourceCache) Line(path string, line int) (string, error) {
	lines, err := c.Lines(path)
	if err != nil {
		return "", err
	}
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("line %d is out of range (1-%d)", line, len(lines))
	}
	return lines[line-1], nil
}

// Lines returns the lines of a file. A read failure is remembered and
// returned for later calls too.
func (c *SourceCache) Lines(path string) ([]string, error) {
	c.mu.RLock()
	src, ok := c.files[path]
	c.mu.RUnlock()
	if ok {
		return src.lines, src.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.files[path]; ok {
		return src.lines, src.err
	}
	src = c.read(path)
	c.files[path] = src
	return src.lines, src.err
}

func (c *SourceCache) read(path string) *source {
	b, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return &source{err: fmt.Errorf("read a source file: %w", err)}
	}
	return &source{lines: splitLines(string(b))}
}

// splitLines splits s at every line boundary Python's str.splitlines
// recognizes. "\r\n" is one boundary and a trailing boundary doesn't start
// an empty line.
func splitLines(s string) []string {
	lines := []string{}
	start := 0
	for i, r := range s {
		if !isLineBreak(r) {
			continue
		}
		if r == '\r' && strings.HasPrefix(s[i+1:], "\n") {
			continue
		}
		end := i
		if r == '\n' && i > 0 && s[i-1] == '\r' {
			end = i - 1
		}
		lines = append(lines, s[start:end])
		start = i + utf8.RuneLen(r)
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
