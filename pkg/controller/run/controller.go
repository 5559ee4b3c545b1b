// Package run analyzes source files and reports refurbishments.
// It reads the configuration, builds the active check set, asks the engine
// for syntax trees, dispatches the checks over every tree, and then filters,
// orders and prints the findings.
package run

import (
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/engine"
)

type Controller struct {
	fs        afero.Fs
	cfg       *config.Config
	param     *ParamRun
	cfgFinder ConfigFinder
	cfgReader ConfigReader
	newEngine EngineFactory
}

type ConfigFinder interface {
	Find(configFilePath string) (string, error)
}

type ConfigReader interface {
	Read(cfg *config.Config, configFilePath string) error
}

// EngineFactory creates the engine from the final configuration.
type EngineFactory func(logE *logrus.Entry, fs afero.Fs, cfg *config.Config) (engine.Engine, error)

type ParamRun struct {
	Files          []string
	ConfigFilePath string
	// Flags holds the values given on the command line.
	Flags   *config.Config
	Stdout  io.Writer
	Color   bool
	Version string
}

func New(fs afero.Fs, cfgFinder ConfigFinder, cfgReader ConfigReader, newEngine EngineFactory, param *ParamRun) *Controller {
	if newEngine == nil {
		newEngine = NewEngine
	}
	return &Controller{
		fs:        fs,
		cfgFinder: cfgFinder,
		cfgReader: cfgReader,
		newEngine: newEngine,
		param:     param,
		cfg:       &config.Config{},
	}
}
