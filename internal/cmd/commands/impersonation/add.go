package impersonation

import (
	"context"
	"flag"
	"fmt"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/pkg/dss/admin"
)

type AddCommand struct {
	*base.Command

	client base.ClientFlags

	flagKind       string
	flagType       string
	flagProjectKey string
	flagSource     string
	flagUnixUser   string
	flagHadoopUser string
}

func (c *AddCommand) Synopsis() string {
	return "Add an impersonation rule"
}

func (c *AddCommand) Help() string {
	return `Usage: dssadmin impersonation add [options]

  Adds an impersonation rule to the general settings and saves them.

  An IDENTITY rule needs no further options. A SINGLE_MAPPING rule maps the
  user or group named by -source to -unix-user. A REGEXP_RULE maps every
  user or group matching the -source pattern to -unix-user.` + c.Flags().Help()
}

func (c *AddCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("impersonation add", flag.ExitOnError))
	c.client.Register(f)

	f.StringVar(
		&c.flagKind, "kind", "user",
		"Rule kind (user or group)",
	)
	f.StringVar(
		&c.flagType, "type", admin.RuleTypeIdentity,
		"Rule type (IDENTITY, SINGLE_MAPPING or REGEXP_RULE)",
	)
	f.StringVar(
		&c.flagProjectKey, "project-key", "",
		"Restrict a user rule to one project; empty for a global rule",
	)
	f.StringVar(
		&c.flagSource, "source", "",
		"DSS user or group to map, or the pattern for a REGEXP_RULE",
	)
	f.StringVar(
		&c.flagUnixUser, "unix-user", "",
		"Target UNIX user",
	)
	f.StringVar(
		&c.flagHadoopUser, "hadoop-user", "",
		"Target Hadoop user (optional)",
	)
	return f
}

func (c *AddCommand) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if c.flagType != admin.RuleTypeIdentity && c.flagUnixUser == "" {
		c.UI.Error("a mapping rule requires -unix-user")
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

	switch c.flagKind {
	case "user":
		rule := admin.NewUserImpersonationRule()
		if c.flagProjectKey != "" {
			rule.ScopeProject(c.flagProjectKey)
		}
		switch c.flagType {
		case admin.RuleTypeIdentity:
			rule.Identity()
		case admin.RuleTypeSingleMapping:
			rule.Single(c.flagSource, c.flagUnixUser, c.flagHadoopUser)
		case admin.RuleTypeRegexp:
			rule.Regexp(c.flagSource, c.flagUnixUser, c.flagHadoopUser)
		default:
			c.UI.Error(fmt.Sprintf("invalid rule type %q", c.flagType))
			return 1
		}
		settings.AddImpersonationRule(rule)
	case "group":
		rule := admin.NewGroupImpersonationRule()
		switch c.flagType {
		case admin.RuleTypeIdentity:
			rule.Identity()
		case admin.RuleTypeSingleMapping:
			rule.Single(c.flagSource, c.flagUnixUser, c.flagHadoopUser)
		case admin.RuleTypeRegexp:
			rule.Regexp(c.flagSource, c.flagUnixUser, c.flagHadoopUser)
		default:
			c.UI.Error(fmt.Sprintf("invalid rule type %q", c.flagType))
			return 1
		}
		settings.AddImpersonationRule(rule)
	default:
		c.UI.Error(fmt.Sprintf("invalid rule kind %q (want user or group)", c.flagKind))
		return 1
	}

	if err := settings.Save(ctx); err != nil {
		c.UI.Error(fmt.Sprintf("error saving general settings: %v", err))
		return 1
	}

	c.UI.Info("Rule added")
	return 0
}
