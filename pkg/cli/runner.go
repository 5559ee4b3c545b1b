// Package cli defines the command line interface of refurb.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/go-stdutil"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/explain"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/flag"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/initcmd"
	"github.com/suzuki-shunsuke/refurb/pkg/cli/run"
	"github.com/suzuki-shunsuke/urfave-cli-v3-util/urfave"
	"github.com/urfave/cli/v3"
)

// Run parses args and runs the selected subcommand. The version, help-all
// and completion commands are added by urfave.Command.
func Run(ctx context.Context, logE *logrus.Entry, ldFlags *stdutil.LDFlags, args ...string) error {
	return newCommand(logE, ldFlags).Run(ctx, args) //nolint:wrapcheck
}

func newCommand(logE *logrus.Entry, ldFlags *stdutil.LDFlags) *cli.Command {
	globalFlags := &flag.GlobalFlags{}
	explainFlag := &explain.Flags{}
	return urfave.Command(ldFlags, &cli.Command{
		Name:  "refurb",
		Usage: "A tool for refurbishing and modernizing Python codebases. https://github.com/suzuki-shunsuke/refurb",
		Flags: append(globalFlags.Flags(), &cli.StringFlag{
			Name:        "explain",
			Usage:       "Explain an error code. This is same as `refurb explain ERR`",
			Destination: &explainFlag.Code,
		}),
		Action: func(_ context.Context, c *cli.Command) error {
			if explainFlag.Code == "" {
				return cli.ShowAppHelp(c) //nolint:wrapcheck
			}
			return explain.Action(logE, globalFlags, explainFlag)
		},
		Commands: []*cli.Command{
			initcmd.New(logE, globalFlags),
			run.New(logE, globalFlags, ldFlags.Version),
			explain.New(logE, globalFlags),
		},
	})
}
