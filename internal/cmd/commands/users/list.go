package users

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/pkg/dss/admin"
)

type ListCommand struct {
	*base.Command

	client base.ClientFlags
}

func (c *ListCommand) Synopsis() string {
	return "List the users of the instance"
}

func (c *ListCommand) Help() string {
	return `Usage: dssadmin users list [options]

  Lists the users of the DSS instance.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("users list", flag.ExitOnError))
	c.client.Register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.client.NewClient(c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	usersList, err := admin.NewClient(client).ListUsers(context.Background())
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing users: %v", err))
		return 1
	}

	for _, u := range usersList {
		line := u.Login
		if u.DisplayName != "" {
			line += "\t" + u.DisplayName
		}
		if len(u.Groups) > 0 {
			line += "\t[" + strings.Join(u.Groups, ", ") + "]"
		}
		c.UI.Output(line)
	}
	return 0
}
