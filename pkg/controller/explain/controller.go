// Package explain prints the documentation of a check.
package explain

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/check"
	"github.com/suzuki-shunsuke/refurb/pkg/check/builtin"
	"github.com/suzuki-shunsuke/refurb/pkg/check/pack"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/diag"
)

// ErrNotFound is returned when no check has the requested code.
var ErrNotFound = errors.New("the error code isn't found")

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

type Controller struct {
	fs        afero.Fs
	cfgFinder ConfigFinder
	cfgReader ConfigReader
	stdout    io.Writer
}

type ParamExplain struct {
	Code           string
	ConfigFilePath string
	// Load is appended to load of the configuration file.
	Load []string
}

func New(fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, stdout io.Writer) *Controller {
	return &Controller{
		fs:        fs,
		cfgFinder: cfgFinder,
		cfgReader: cfgReader,
		stdout:    stdout,
	}
}

func (c *Controller) Explain(param *ParamExplain) error {
	code, err := diag.ParseErrorCode(param.Code)
	if err != nil {
		return fmt.Errorf("parse the error code: %w", err)
	}
	reg, err := c.registry(param)
	if err != nil {
		return err
	}
	chk := reg.ByCode(code)
	if chk == nil {
		fmt.Fprintf(c.stdout, "refurb: Error code %q not found\n", code.String())
		return ErrNotFound
	}
	fmt.Fprintln(c.stdout, Format(chk.Meta()))
	return nil
}

// Format renders the documentation of a check.
func Format(m *check.Meta) string {
	s := m.ErrorCode().String() + ": " + m.Name
	if m.Doc == "" {
		return s
	}
	return s + "\n\n" + m.Doc
}

func (c *Controller) registry(param *ParamExplain) (*check.Registry, error) {
	p, err := c.cfgFinder.Find(param.ConfigFilePath)
	if err != nil {
		return nil, fmt.Errorf("find a configuration file: %w", err)
	}
	cfg := &config.Config{}
	if err := c.cfgReader.Read(cfg, p); err != nil {
		return nil, fmt.Errorf("read a config file: %w", err)
	}
	reg, err := pack.NewRegistry(c.fs, builtin.All(), append(cfg.Load, param.Load...))
	if err != nil {
		return nil, fmt.Errorf("load checks: %w", err)
	}
	return reg, nil
}
