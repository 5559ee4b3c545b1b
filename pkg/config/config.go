package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/engine"
	"github.com/suzuki-shunsuke/refurb/pkg/output"
)

type Config struct {
	Ignore  []string `json:"ignore,omitempty" yaml:"ignore" toml:"ignore" jsonschema:"description=Error codes (FURB123 or 123) and categories (#name) to ignore"`
	Load    []string `json:"load,omitempty" yaml:"load" toml:"load" jsonschema:"description=Check pack files or directories to load"`
	Quiet   bool     `json:"quiet,omitempty" yaml:"quiet" toml:"quiet" jsonschema:"description=Don't print the --explain hint"`
	Format  string   `json:"format,omitempty" yaml:"format" toml:"format" jsonschema:"enum=text,enum=json,enum=sarif"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude" toml:"exclude" jsonschema:"description=Glob patterns of files which are never checked"`
	Files   []*File  `json:"files,omitempty" yaml:"files" toml:"files" jsonschema:"description=Target files. If files are passed via positional command line arguments, this is ignored"`
	Jobs    int      `json:"jobs,omitempty" yaml:"jobs" toml:"jobs" jsonschema:"description=The number of files checked in parallel. 0 means the number of CPUs"`
	Engine  *Engine  `json:"engine,omitempty" yaml:"engine" toml:"engine"`
	Debug   bool     `json:"-" yaml:"-" toml:"-"`

	ignore   *check.Ignore
	excludes []glob.Glob
}

type File struct {
	Pattern string `json:"pattern" yaml:"pattern" toml:"pattern" jsonschema:"description=A glob pattern of target files. ** matches any number of directories"`
}

func (f *File) Init() error {
	if f.Pattern == "" {
		return errors.New("pattern is required")
	}
	if !doublestar.ValidatePattern(f.Pattern) {
		return fmt.Errorf("pattern is an invalid glob: %s", f.Pattern)
	}
	return nil
}

type Engine struct {
	Command  []string `json:"command,omitempty" yaml:"command" toml:"command" jsonschema:"description=The command which dumps syntax trees. File paths are appended to it"`
	Format   string   `json:"format,omitempty" yaml:"format" toml:"format" jsonschema:"enum=json,enum=msgpack"`
	CacheDir string   `json:"cache_dir,omitempty" yaml:"cache_dir" toml:"cache_dir" jsonschema:"description=The directory of the tree cache. The default is $XDG_CACHE_HOME/refurb"`
	NoCache  bool     `json:"no_cache,omitempty" yaml:"no_cache" toml:"no_cache" jsonschema:"description=Disable the tree cache"`
}

func (e *Engine) Init() error {
	if e == nil {
		return nil
	}
	switch e.Format {
	case "", engine.FormatJSON, engine.FormatMsgpack:
		return nil
	default:
		return errors.New("engine.format must be json or msgpack")
	}
}

// Init validates the configuration and compiles its patterns.
func (c *Config) Init() error {
	ig, err := check.ParseIgnore(c.Ignore)
	if err != nil {
		return fmt.Errorf("parse ignore: %w", err)
	}
	c.ignore = ig
	if c.Format != "" && !output.ValidFormat(c.Format) {
		return fmt.Errorf("format must be text, json, or sarif: %s", c.Format)
	}
	if c.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	for _, file := range c.Files {
		if err := file.Init(); err != nil {
			return fmt.Errorf("initialize file: %w", err)
		}
	}
	c.excludes = make([]glob.Glob, len(c.Exclude))
	for i, pattern := range c.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("compile exclude as a glob: %w", err)
		}
		c.excludes[i] = g
	}
	if err := c.Engine.Init(); err != nil {
		return err
	}
	return nil
}

// IgnoreSet returns the parsed ignore list. Init must be called first.
func (c *Config) IgnoreSet() *check.Ignore {
	return c.ignore
}

// Excluded reports whether a file matches an exclude pattern, either by its
// path or by its base name. Init must be called first.
func (c *Config) Excluded(p string) bool {
	clean := filepath.ToSlash(filepath.Clean(p))
	base := filepath.Base(p)
	for _, g := range c.excludes {
		if g.Match(clean) || g.Match(base) {
			return true
		}
	}
	return false
}

// Merge applies command line values over the values of the file.
// Lists are appended, booleans are OR'd, and set scalars override.
func (c *Config) Merge(flags *Config) {
	c.Ignore = append(c.Ignore, flags.Ignore...)
	c.Load = append(c.Load, flags.Load...)
	c.Quiet = c.Quiet || flags.Quiet
	c.Debug = c.Debug || flags.Debug
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Jobs != 0 {
		c.Jobs = flags.Jobs
	}
	if flags.Engine != nil {
		if c.Engine == nil {
			c.Engine = &Engine{}
		}
		if len(flags.Engine.Command) != 0 {
			c.Engine.Command = flags.Engine.Command
		}
		if flags.Engine.Format != "" {
			c.Engine.Format = flags.Engine.Format
		}
		if flags.Engine.CacheDir != "" {
			c.Engine.CacheDir = flags.Engine.CacheDir
		}
		c.Engine.NoCache = c.Engine.NoCache || flags.Engine.NoCache
	}
}
