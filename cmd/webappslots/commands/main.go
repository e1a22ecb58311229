// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	wcmd "github.com/juju/webappslots/cmd"
	"github.com/juju/webappslots/internal/config"
	"github.com/juju/webappslots/internal/probe"
	"github.com/juju/webappslots/internal/provider/azure"
	"github.com/juju/webappslots/internal/slots"
)

var webAppSlotsDoc = `
webappslots provisions Azure App Service web apps with deployment slots,
deploys a branch to each slot, lets it swap into production and swaps it
back again.

Credentials for a service principal are read from the environment:
$CLIENT_ID, $CLIENT_SECRET, $TENANT_ID and $SUBSCRIPTION_ID.
`

// Main registers subcommands for the webappslots executable, and hands
// over control to the cmd package. This function is not redundant with
// main, because it provides an entry point for testing with arbitrary
// command line arguments.
func Main(args []string) {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(cmd.Main(NewWebAppSlotsCommand(), ctx, args[1:]))
}

// NewWebAppSlotsCommand returns the webappslots super-command.
func NewWebAppSlotsCommand() cmd.Command {
	super := wcmd.NewSuperCommand(cmd.SuperCommandParams{
		Name:    "webappslots",
		Doc:     webAppSlotsDoc,
		Purpose: "Manage Azure web app deployment slots.",
	})
	super.Register(NewManageSlotsCommand())
	super.Register(NewDeleteGroupCommand())
	return super
}

// AppServiceFunc opens a connection to the App Service control plane.
type AppServiceFunc func(ctx context.Context, creds config.Credentials) (slots.AppService, error)

// CheckerFunc returns an address checker bounded by the given timeout.
type CheckerFunc func(timeout time.Duration) slots.AddressChecker

func openAppService(ctx context.Context, creds config.Credentials) (slots.AppService, error) {
	env, err := azure.Open(ctx, azure.DefaultProviderConfig(), creds)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return env, nil
}

// withCredentialHint annotates errors caused by Azure rejecting the
// service principal.
func withCredentialHint(err error) error {
	if azure.IsAuthorisationFailure(err) {
		return errors.Annotate(err, "Azure rejected the service principal; check $CLIENT_ID, $CLIENT_SECRET, $TENANT_ID and its role on $SUBSCRIPTION_ID")
	}
	return errors.Trace(err)
}

func newChecker(timeout time.Duration) slots.AddressChecker {
	return probe.NewChecker(probe.Config{Timeout: timeout})
}

// azureCommandBase holds what every command talking to Azure needs.
type azureCommandBase struct {
	cmd.CommandBase

	getenv        func(string) string
	newAppService AppServiceFunc
}

func newAzureCommandBase() azureCommandBase {
	return azureCommandBase{
		getenv:        os.Getenv,
		newAppService: openAppService,
	}
}

func (c *azureCommandBase) openAppService(ctx context.Context) (slots.AppService, error) {
	creds, err := config.CredentialsFromEnv(c.getenv)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return c.newAppService(ctx, creds)
}

// interruptSignals stop a run early. Resources created so far are
// still cleaned up.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// interruptibleContext returns a context that is cancelled when the
// command is interrupted or terminated.
func interruptibleContext(ctx *cmd.Context) (context.Context, func()) {
	stdCtx, cancel := context.WithCancel(context.Background())
	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, interruptSignals...)
	go func() {
		select {
		case sig := <-interrupted:
			ctx.Infof("Caught %v, cleaning up...", sig)
			cancel()
		case <-stdCtx.Done():
		}
	}()
	return stdCtx, func() {
		signal.Stop(interrupted)
		cancel()
	}
}
