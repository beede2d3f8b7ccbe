package impersonation

import (
	"context"
	"flag"
	"fmt"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/pkg/dss/admin"
)

type RemoveCommand struct {
	*base.Command

	client  base.ClientFlags
	filters filterFlags
}

func (c *RemoveCommand) Synopsis() string {
	return "Remove impersonation rules"
}

func (c *RemoveCommand) Help() string {
	return `Usage: dssadmin impersonation remove [options]

  Removes every impersonation rule matching the given filters from the
  general settings and saves them. At least one filter is required; use
  the same options as 'impersonation list' to preview the match set.` + c.Flags().Help()
}

func (c *RemoveCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("impersonation remove", flag.ExitOnError))
	c.client.Register(f)
	c.filters.register(f)
	return f
}

func (c *RemoveCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	filter, err := c.filters.filter()
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if filter == (admin.RuleFilter{}) {
		c.UI.Error("refusing to remove all rules: at least one filter is required")
		return 1
	}

	client, err := c.client.NewClient(c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	settings, err := admin.NewClient(client).GetGeneralSettings(ctx)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching general settings: %v", err))
		return 1
	}

	removed := settings.RemoveImpersonationRules(filter)
	if removed == 0 {
		c.UI.Info("No rules matched")
		return 0
	}

	if err := settings.Save(ctx); err != nil {
		c.UI.Error(fmt.Sprintf("error saving general settings: %v", err))
		return 1
	}

	c.UI.Info(fmt.Sprintf("Removed %d rule(s)", removed))
	return 0
}
