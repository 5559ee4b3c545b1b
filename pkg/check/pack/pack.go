// Package pack loads checks declared in YAML files.
//
// A pack declares call shapes to report:
//
//	version: "1.0"
//	checks:
//	  - code: 901
//	    prefix: XYZ
//	    name: no-os-system
//	    message: Do not call os.system
//	    categories: [security]
//	    match:
//	      call: os.system
package pack

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

// SupportedVersions is the range of pack versions this build understands.
const SupportedVersions = ">= 1.0, < 2.0"

var supported = version.MustConstraints(version.NewConstraint(SupportedVersions)) //nolint:gochecknoglobals

type File struct {
	Version string  `yaml:"version"`
	Checks  []*Spec `yaml:"checks"`
}

type Spec struct {
	Code       int      `yaml:"code"`
	Prefix     string   `yaml:"prefix"`
	Name       string   `yaml:"name"`
	Message    string   `yaml:"message"`
	Doc        string   `yaml:"doc"`
	Categories []string `yaml:"categories"`
	Match      *Match   `yaml:"match"`
}

type Match struct {
	Call   string `yaml:"call"`
	Method string `yaml:"method"`
	Args   *int   `yaml:"args"`
}

func (m *Match) Init() error {
	if m == nil {
		return errors.New("match is required")
	}
	if (m.Call == "") == (m.Method == "") {
		return errors.New("exactly one of match.call and match.method must be set")
	}
	if m.Call != "" {
		for p := range strings.SplitSeq(m.Call, ".") {
			if p == "" {
				return fmt.Errorf("match.call must be a dotted name: %s", m.Call)
			}
		}
	}
	if m.Method != "" && strings.Contains(m.Method, ".") {
		return fmt.Errorf("match.method must be a name: %s", m.Method)
	}
	if m.Args != nil && *m.Args < 0 {
		return errors.New("match.args must not be negative")
	}
	return nil
}

// Load reads packs from files and directories. A directory contributes its
// *.yaml and *.yml files in name order.
func Load(fs afero.Fs, paths []string) ([]check.Check, error) {
	var checks []check.Check
	for _, p := range paths {
		files, err := expand(fs, p)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			cs, err := ReadFile(fs, file)
			if err != nil {
				return nil, fmt.Errorf("load a check pack: %w", logerr.WithFields(err, logrus.Fields{
					"pack": file,
				}))
			}
			checks = append(checks, cs...)
		}
	}
	return checks, nil
}

func expand(fs afero.Fs, p string) ([]string, error) {
	fi, err := fs.Stat(p)
	if err != nil {
		return nil, fmt.Errorf("check a load path: %w", logerr.WithFields(err, logrus.Fields{
			"load_path": p,
		}))
	}
	if !fi.IsDir() {
		return []string{p}, nil
	}
	entries, err := afero.ReadDir(fs, p)
	if err != nil {
		return nil, fmt.Errorf("read a load directory: %w", logerr.WithFields(err, logrus.Fields{
			"load_path": p,
		}))
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(p, e.Name()))
		}
	}
	return files, nil
}

// ReadFile decodes one pack. Unknown fields are rejected.
func ReadFile(fs afero.Fs, p string) ([]check.Check, error) {
	b, err := afero.ReadFile(fs, p)
	if err != nil {
		return nil, fmt.Errorf("read a file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]check.Check, error) {
	f := &File{}
	if err := yaml.UnmarshalWithOptions(b, f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("decode a check pack as YAML: %w", err)
	}
	if err := validateVersion(f.Version); err != nil {
		return nil, err
	}
	checks := make([]check.Check, 0, len(f.Checks))
	for i, s := range f.Checks {
		c, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		checks = append(checks, c)
	}
	return checks, nil
}

func validateVersion(s string) error {
	if s == "" {
		return errors.New("version is required")
	}
	v, err := version.NewVersion(s)
	if err != nil {
		return fmt.Errorf("parse the pack version: %w", err)
	}
	if !supported.Check(v) {
		return logerr.WithFields(errors.New("unsupported pack version"), logrus.Fields{ //nolint:wrapcheck
			"version":   s,
			"supported": SupportedVersions,
		})
	}
	return nil
}

func (s *Spec) build() (*Check, error) {
	if s == nil {
		return nil, errors.New("check must not be null")
	}
	if err := s.Match.Init(); err != nil {
		return nil, err
	}
	prefix := s.Prefix
	if prefix == "" {
		prefix = diag.DefaultPrefix
	}
	return &Check{
		meta: &check.Meta{
			Code:       s.Code,
			Prefix:     prefix,
			Name:       s.Name,
			Message:    s.Message,
			Doc:        s.Doc,
			Categories: s.Categories,
		},
		match: s.Match,
	}, nil
}
