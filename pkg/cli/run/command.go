// Package run implements the 'refurb run' command.
package run

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/flag"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/controller/run"
	"github.com/suzuki-shunsuke/refurb/pkg/log"
	"github.com/urfave/cli/v3"
)

type Flags struct {
	Ignore  []string
	Load    []string
	Debug   bool
	Quiet   bool
	Format  string
	Jobs    int
	NoCache bool
}

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
	version     string
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags, version string) *cli.Command {
	r := &runner{
		logE:        logE,
		globalFlags: globalFlags,
		version:     version,
	}
	return r.Command()
}

func (r *runner) Command() *cli.Command { //nolint:funlen
	flags := &Flags{}
	return &cli.Command{
		Name:      "run",
		Usage:     "Check Python files",
		ArgsUsage: "SRC...",
		Description: `Check Python files and print refurbishments.
SRC is a file or folder. Folders are searched for *.py and *.pyi files.

$ refurb run foo.py src

If no argument is passed, files[].pattern of the configuration file is used.

The exit code is 1 if something is reported.
`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "ignore",
				Usage:       "Ignore an error code (FURB123 or 123) or a category (#name). This can be repeated",
				Destination: &flags.Ignore,
			},
			&cli.StringSliceFlag{
				Name:        "load",
				Usage:       "Load a check pack file or directory. This can be repeated",
				Destination: &flags.Load,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Usage:       "Print the syntax tree of every checked file",
				Destination: &flags.Debug,
			},
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       `Suppress the default "explain" suggestion when an error occurs`,
				Destination: &flags.Quiet,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format. One of text, json, and sarif",
				Destination: &flags.Format,
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "The number of files checked in parallel. The default is the number of CPUs",
				Destination: &flags.Jobs,
			},
			&cli.BoolFlag{
				Name:        "no-cache",
				Usage:       "Disable the syntax tree cache",
				Destination: &flags.NoCache,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return r.action(ctx, c, flags)
		},
	}
}

func (r *runner) action(ctx context.Context, c *cli.Command, flags *Flags) error {
	log.SetLevel(r.globalFlags.LogLevel, r.logE)
	fs := afero.NewOsFs()
	cfg := &config.Config{
		Ignore: flags.Ignore,
		Load:   flags.Load,
		Quiet:  flags.Quiet,
		Format: flags.Format,
		Jobs:   flags.Jobs,
		Debug:  flags.Debug,
	}
	if flags.NoCache {
		cfg.Engine = &config.Engine{NoCache: true}
	}
	ctrl := run.New(fs, config.NewFinder(fs), config.NewReader(fs), nil, &run.ParamRun{
		Files:          c.Args().Slice(),
		ConfigFilePath: r.globalFlags.Config,
		Flags:          cfg,
		Stdout:         os.Stdout,
		Color:          !color.NoColor,
		Version:        r.version,
	})
	return ctrl.Run(ctx, r.logE) //nolint:wrapcheck
}
