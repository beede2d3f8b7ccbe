package users

import (
	"github.com/mitchellh/cli"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage users of a DSS instance"
}

func (c *Command) Help() string {
	return `Usage: dssadmin users <subcommand> [options]

  This command groups subcommands for working with the users of a DSS
  instance.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
