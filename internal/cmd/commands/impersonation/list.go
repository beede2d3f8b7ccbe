package impersonation

import (
	"context"
	"flag"
	"fmt"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/pkg/dss/admin"
)

type ListCommand struct {
	*base.Command

	client  base.ClientFlags
	filters filterFlags
}

func (c *ListCommand) Synopsis() string {
	return "List impersonation rules"
}

func (c *ListCommand) Help() string {
	return `Usage: dssadmin impersonation list [options]

  Lists the impersonation rules matching the given filters. Without
  filters, lists every rule: user rules first, then group rules.` + c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("impersonation list", flag.ExitOnError))
	c.client.Register(f)
	c.filters.register(f)
	return f
}

func (c *ListCommand) Run(args []string) int {
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

	client, err := c.client.NewClient(c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	settings, err := admin.NewClient(client).GetGeneralSettings(context.Background())
	if err != nil {
		c.UI.Error(fmt.Sprintf("error fetching general settings: %v", err))
		return 1
	}

	for _, rule := range settings.ImpersonationRules(filter) {
		c.UI.Output(formatRule(rule))
	}
	return 0
}

func formatRule(rule admin.ImpersonationRule) string {
	line := fmt.Sprintf("%s\t%s", rule.Kind, rule.Type())
	if scope := rule.Scope(); scope != "" {
		line += "\t" + scope
		if key := rule.ProjectKey(); key != "" {
			line += ":" + key
		}
	}
	if source := rule.Source(); source != "" {
		line += "\t" + source
	}
	if unix := rule.TargetUnix(); unix != "" {
		line += "\t-> " + unix
		if hadoop := rule.TargetHadoop(); hadoop != "" {
			line += "/" + hadoop
		}
	}
	return line
}
