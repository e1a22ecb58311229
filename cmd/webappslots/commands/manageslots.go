// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/juju/webappslots/internal/config"
	"github.com/juju/webappslots/internal/slots"
)

var manageSlotsDoc = `
Creates a resource group holding a number of web apps, each on its own
Standard App Service plan. For every web app a deployment slot is
created, configured to swap into production automatically, and a branch
of a git repository is deployed to it. Each slot is then swapped back
out of production. Finally the resource group is deleted, unless
--keep is given.

Settings not given on the command line are read from the YAML file
named by --config, or take their default values.
`

const manageSlotsExamples = `
    webappslots manage-slots
    webappslots manage-slots --apps 1 --location westeurope
    webappslots manage-slots --config settings.yaml --format yaml
`

// NewManageSlotsCommand returns a command that runs the slot
// management scenario.
func NewManageSlotsCommand() cmd.Command {
	return &manageSlotsCommand{
		azureCommandBase: newAzureCommandBase(),
		newChecker:       newChecker,
	}
}

type manageSlotsCommand struct {
	azureCommandBase
	out cmd.Output

	newChecker CheckerFunc

	configFile cmd.FileVar
	location   string
	appCount   int
	slotName   string
	repoURL    string
	branch     string
	keep       bool
}

// Info implements cmd.Command.
func (c *manageSlotsCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "manage-slots",
		Purpose:  "Create web apps with deployment slots, deploy and swap them.",
		Doc:      manageSlotsDoc,
		Examples: manageSlotsExamples,
		SeeAlso:  []string{"delete-group"},
	}
}

// SetFlags implements cmd.Command.
func (c *manageSlotsCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
		"tabular": formatReportTabular,
	})
	f.Var(&c.configFile, "config", "Path to a YAML settings file")
	f.StringVar(&c.location, "location", "", "Azure region to create resources in")
	f.IntVar(&c.appCount, "apps", 0, "Number of web apps to create")
	f.StringVar(&c.slotName, "slot-name", "", "Name of the deployment slot")
	f.StringVar(&c.repoURL, "repo-url", "", "Git repository deployed to each slot")
	f.StringVar(&c.branch, "branch", "", "Branch deployed to each slot")
	f.BoolVar(&c.keep, "keep", false, "Do not delete the resource group afterwards")
}

// Init implements cmd.Command.
func (c *manageSlotsCommand) Init(args []string) error {
	if c.appCount < 0 {
		return errors.NotValidf("--apps %d", c.appCount)
	}
	return cmd.CheckEmpty(args)
}

func (c *manageSlotsCommand) settings(ctx *cmd.Context) (*config.Config, error) {
	attrs := make(map[string]interface{})
	if c.configFile.Path != "" {
		data, err := c.configFile.Read(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if attrs, err = config.Parse(data); err != nil {
			return nil, errors.Trace(err)
		}
	}
	for key, value := range map[string]string{
		config.LocationKey: c.location,
		config.SlotNameKey: c.slotName,
		config.RepoURLKey:  c.repoURL,
		config.BranchKey:   c.branch,
	} {
		if value != "" {
			attrs[key] = value
		}
	}
	if c.appCount != 0 {
		attrs[config.AppCountKey] = c.appCount
	}
	if c.keep {
		attrs[config.KeepResourcesKey] = true
	}
	return config.New(attrs)
}

// Run implements cmd.Command.
func (c *manageSlotsCommand) Run(ctx *cmd.Context) error {
	settings, err := c.settings(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	stdCtx, stop := interruptibleContext(ctx)
	defer stop()

	appService, err := c.openAppService(stdCtx)
	if err != nil {
		return withCredentialHint(err)
	}
	runner, err := slots.NewRunner(slots.RunnerConfig{
		AppService: appService,
		Checker:    c.newChecker(settings.CheckTimeout),
		Settings:   settings,
	})
	if err != nil {
		return errors.Trace(err)
	}

	report, runErr := runner.Run(stdCtx)
	if report.Subscription != "" {
		if err := c.out.Write(ctx, report); err != nil {
			return errors.Trace(err)
		}
	}
	return withCredentialHint(runErr)
}
