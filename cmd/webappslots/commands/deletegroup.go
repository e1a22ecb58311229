// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
)

var deleteGroupDoc = `
Deletes a resource group and everything in it. Use this to remove
resources left behind by manage-slots --keep, or by a run that was
killed before it could clean up.
`

const deleteGroupExamples = `
    webappslots delete-group rg1NEMV_x2k9d8aq
`

// NewDeleteGroupCommand returns a command that deletes a resource group.
func NewDeleteGroupCommand() cmd.Command {
	return &deleteGroupCommand{
		azureCommandBase: newAzureCommandBase(),
	}
}

type deleteGroupCommand struct {
	azureCommandBase

	name string
}

// Info implements cmd.Command.
func (c *deleteGroupCommand) Info() *cmd.Info {
	return &cmd.Info{
		Name:     "delete-group",
		Args:     "<resource-group>",
		Purpose:  "Delete a resource group.",
		Doc:      deleteGroupDoc,
		Examples: deleteGroupExamples,
		SeeAlso:  []string{"manage-slots"},
	}
}

// SetFlags implements cmd.Command.
func (c *deleteGroupCommand) SetFlags(f *gnuflag.FlagSet) {}

// Init implements cmd.Command.
func (c *deleteGroupCommand) Init(args []string) error {
	if len(args) < 1 {
		return errors.New("no resource group specified")
	}
	c.name = args[0]
	return cmd.CheckEmpty(args[1:])
}

// Run implements cmd.Command.
func (c *deleteGroupCommand) Run(ctx *cmd.Context) error {
	stdCtx, stop := interruptibleContext(ctx)
	defer stop()

	appService, err := c.openAppService(stdCtx)
	if err != nil {
		return withCredentialHint(err)
	}
	ctx.Infof("Deleting Resource Group: %s", c.name)
	if err := appService.DeleteResourceGroup(stdCtx, c.name); err != nil {
		return withCredentialHint(err)
	}
	ctx.Infof("Deleted Resource Group: %s", c.name)
	return nil
}
