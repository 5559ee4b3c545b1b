// Package explain implements the 'refurb explain' command.
package explain

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/flag"
	"github.com/suzuki-shunsuke/refurb/pkg/config"
	"github.com/suzuki-shunsuke/refurb/pkg/controller/explain"
	"github.com/suzuki-shunsuke/refurb/pkg/log"
	"github.com/urfave/cli/v3"
)

type Flags struct {
	Code string
	Load []string
}

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	flags := &Flags{}
	return &cli.Command{
		Name:      "explain",
		Usage:     "Explain an error code",
		ArgsUsage: "ERR",
		Description: `Print the documentation of a check.

$ refurb explain FURB113
$ refurb explain 113

Checks of check packs are also explained.

$ refurb explain --load packs XYZ100
`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "load",
				Usage:       "Load a check pack file or directory. This can be repeated",
				Destination: &flags.Load,
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			flags.Code = c.Args().First()
			if flags.Code == "" {
				return errors.New("an error code is required")
			}
			return Action(logE, globalFlags, flags)
		},
	}
}

// Action explains flags.Code.
func Action(logE *logrus.Entry, globalFlags *flag.GlobalFlags, flags *Flags) error {
	log.SetLevel(globalFlags.LogLevel, logE)
	fs := afero.NewOsFs()
	ctrl := explain.New(fs, config.NewFinder(fs), config.NewReader(fs), os.Stdout)
	return ctrl.Explain(&explain.ParamExplain{ //nolint:wrapcheck
		Code:           flags.Code,
		ConfigFilePath: globalFlags.Config,
		Load:           flags.Load,
	})
}
