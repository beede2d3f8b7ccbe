// Package impersonation implements the dssadmin subcommands managing the
// impersonation rules of a DSS instance's general settings.
package impersonation

import (
	"fmt"

	"github.com/mitchellh/cli"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/pkg/dss/admin"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Manage impersonation rules of a DSS instance"
}

func (c *Command) Help() string {
	return `Usage: dssadmin impersonation <subcommand> [options]

  This command groups subcommands for working with the impersonation rules
  held in the general settings of a DSS instance.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}

// filterFlags are the rule selection flags shared by list and remove.
type filterFlags struct {
	kind       string
	dssUser    string
	dssGroup   string
	unixUser   string
	hadoopUser string
	projectKey string
	scope      string
	ruleType   string
}

func (ff *filterFlags) register(f *base.FlagSet) {
	f.StringVar(
		&ff.kind, "kind", "any",
		"Rule kind to consider (user, group or any)",
	)
	f.StringVar(
		&ff.dssUser, "dss-user", "",
		"Match the mapped DSS user",
	)
	f.StringVar(
		&ff.dssGroup, "dss-group", "",
		"Match the mapped DSS group",
	)
	f.StringVar(
		&ff.unixUser, "unix-user", "",
		"Match the target UNIX user",
	)
	f.StringVar(
		&ff.hadoopUser, "hadoop-user", "",
		"Match the target Hadoop user",
	)
	f.StringVar(
		&ff.projectKey, "project-key", "",
		"Match the project a project-scoped user rule applies to",
	)
	f.StringVar(
		&ff.scope, "scope", "",
		"Match the user rule scope (GLOBAL or PROJECT)",
	)
	f.StringVar(
		&ff.ruleType, "type", "",
		"Match the rule type (IDENTITY, SINGLE_MAPPING or REGEXP_RULE)",
	)
}

func (ff *filterFlags) filter() (admin.RuleFilter, error) {
	kind, err := parseKind(ff.kind)
	if err != nil {
		return admin.RuleFilter{}, err
	}
	return admin.RuleFilter{
		DSSUser:    ff.dssUser,
		DSSGroup:   ff.dssGroup,
		UnixUser:   ff.unixUser,
		HadoopUser: ff.hadoopUser,
		ProjectKey: ff.projectKey,
		Scope:      ff.scope,
		Type:       ff.ruleType,
		Kind:       kind,
	}, nil
}

func parseKind(kind string) (admin.RuleKind, error) {
	switch kind {
	case "user":
		return admin.UserRule, nil
	case "group":
		return admin.GroupRule, nil
	case "any", "":
		return admin.AnyRule, nil
	default:
		return admin.AnyRule, fmt.Errorf("invalid rule kind %q (want user, group or any)", kind)
	}
}
