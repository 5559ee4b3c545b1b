// Package initcmd implements the 'refurb init' command.
package initcmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/flag"
	"github.com/suzuki-shunsuke/refurb/pkg/controller/initcmd"
	"github.com/suzuki-shunsuke/refurb/pkg/log"
	"github.com/urfave/cli/v3"
)

func New(logE *logrus.Entry, globalFlags *flag.GlobalFlags) *cli.Command {
	r := &runner{
		logE:        logE,
		globalFlags: globalFlags,
	}
	return r.Command()
}

type runner struct {
	logE        *logrus.Entry
	globalFlags *flag.GlobalFlags
}

func (r *runner) Command() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create .refurb.yaml if it doesn't exist",
		Description: `Create .refurb.yaml if it doesn't exist

$ refurb init

You can also pass configuration file path.

e.g.

$ refurb init .github/refurb.yaml
`,
		Action: r.action,
	}
}

func (r *runner) action(_ context.Context, c *cli.Command) error {
	log.SetLevel(r.globalFlags.LogLevel, r.logE)
	ctrl := initcmd.New(afero.NewOsFs())
	configFilePath := c.Args().First()
	if configFilePath == "" {
		configFilePath = r.globalFlags.Config
	}
	if configFilePath == "" {
		configFilePath = initcmd.DefaultConfigPath
	}
	return ctrl.Init(configFilePath) //nolint:wrapcheck
}
