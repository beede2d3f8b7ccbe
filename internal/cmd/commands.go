package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/quarrylabs/dss-go/internal/cmd/base"
	"github.com/quarrylabs/dss-go/internal/cmd/commands/impersonation"
	"github.com/quarrylabs/dss-go/internal/cmd/commands/users"
	"github.com/quarrylabs/dss-go/internal/cmd/commands/version"
)

// Commands is the mapping of all available dssadmin commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		UI:  ui,
		Log: log,
	}

	Commands = map[string]cli.CommandFactory{
		"version": func() (cli.Command, error) {
			return &version.Command{Command: baseCommand}, nil
		},
		"users": func() (cli.Command, error) {
			return &users.Command{Command: baseCommand}, nil
		},
		"users list": func() (cli.Command, error) {
			return &users.ListCommand{Command: baseCommand}, nil
		},
		"impersonation": func() (cli.Command, error) {
			return &impersonation.Command{Command: baseCommand}, nil
		},
		"impersonation list": func() (cli.Command, error) {
			return &impersonation.ListCommand{Command: baseCommand}, nil
		},
		"impersonation add": func() (cli.Command, error) {
			return &impersonation.AddCommand{Command: baseCommand}, nil
		},
		"impersonation remove": func() (cli.Command, error) {
			return &impersonation.RemoveCommand{Command: baseCommand}, nil
		},
	}
}
