package version

import (
	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: dssadmin version

  Prints the dssadmin version.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("dssadmin " + version.Version)
	return 0
}
