// Package base carries the pieces shared by every dssadmin subcommand: the
// embedded command struct, the help-rendering flag set, and the client
// connection flags.
package base

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command is embedded into every subcommand, giving it the UI and logger.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
}

// FlagSet wraps flag.FlagSet with a help renderer for command Help()
// output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps a flag set, silencing the default usage output so
// commands control their own help text.
func NewFlagSet(fs *flag.FlagSet) *FlagSet {
	fs.Usage = func() {}
	return &FlagSet{FlagSet: fs}
}

// Help renders the registered flags, one per line with its default.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	f.VisitAll(func(fl *flag.Flag) {
		fmt.Fprintf(&b, "  -%s\n      %s", fl.Name, fl.Usage)
		if fl.DefValue != "" && fl.DefValue != "false" {
			fmt.Fprintf(&b, " (default: %s)", fl.DefValue)
		}
		b.WriteString("\n")
	})
	return b.String()
}
