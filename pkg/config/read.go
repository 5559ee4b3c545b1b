package config

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const pyproject = "pyproject.toml"

func getConfigPath(fs afero.Fs) (string, error) {
	for _, path := range []string{".refurb.yaml", ".refurb.yml", ".github/refurb.yaml"} {
		f, err := afero.Exists(fs, path)
		if err != nil {
			return "", fmt.Errorf("check if %s exists: %w", path, err)
		}
		if f {
			return path, nil
		}
	}
	f, err := hasToolSection(fs, pyproject)
	if err != nil {
		return "", err
	}
	if f {
		return pyproject, nil
	}
	return "", nil
}

type pyprojectFile struct {
	Tool struct {
		Refurb Config `toml:"refurb"`
	} `toml:"tool"`
}

// hasToolSection reports whether a pyproject.toml defines [tool.refurb].
func hasToolSection(fs afero.Fs, p string) (bool, error) {
	f, err := afero.Exists(fs, p)
	if err != nil {
		return false, fmt.Errorf("check if %s exists: %w", p, err)
	}
	if !f {
		return false, nil
	}
	b, err := afero.ReadFile(fs, p)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", p, err)
	}
	var v map[string]any
	meta, err := toml.Decode(string(b), &v)
	if err != nil {
		return false, fmt.Errorf("decode %s as TOML: %w", p, err)
	}
	return meta.IsDefined("tool", "refurb"), nil
}

type Finder struct {
	fs afero.Fs
}

func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find returns configFilePath if it's set, otherwise the first existing
// well-known configuration file. It returns "" if there is none.
func (f *Finder) Find(configFilePath string) (string, error) {
	if configFilePath != "" {
		return configFilePath, nil
	}
	return getConfigPath(f.fs)
}

type Reader struct {
	fs afero.Fs
}

func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read decodes a configuration file into cfg. A *.toml file is read from its
// [tool.refurb] table. Read doesn't call Init.
func (r *Reader) Read(cfg *Config, configFilePath string) error {
	if configFilePath == "" {
		return nil
	}
	if filepath.Ext(configFilePath) == ".toml" {
		return r.readTOML(cfg, configFilePath)
	}
	f, err := r.fs.Open(configFilePath)
	if err != nil {
		return fmt.Errorf("open a configuration file: %w", err)
	}
	defer f.Close()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode a configuration file as YAML: %w", err)
	}
	return nil
}

func (r *Reader) readTOML(cfg *Config, p string) error {
	b, err := afero.ReadFile(r.fs, p)
	if err != nil {
		return fmt.Errorf("read a configuration file: %w", err)
	}
	file := &pyprojectFile{}
	if _, err := toml.Decode(string(b), file); err != nil {
		return fmt.Errorf("decode a configuration file as TOML: %w", err)
	}
	*cfg = file.Tool.Refurb
	return nil
}
