// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package slots

import (
	"context"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/webappslots/internal/config"
	"github.com/juju/webappslots/internal/naming"
)

var logger = loggo.GetLogger("webappslots.slots")

// RunnerConfig holds the dependencies of a Runner.
type RunnerConfig struct {
	AppService AppService
	Checker    AddressChecker
	Settings   *config.Config

	// NewResourceGroupName and NewWebAppName generate resource names.
	// They default to the random generators in the naming package.
	NewResourceGroupName func(prefix string) (string, error)
	NewWebAppName        func(prefix string, n int) (string, error)
}

// Validate returns an error if the config cannot drive a Runner.
func (cfg RunnerConfig) Validate() error {
	if cfg.AppService == nil {
		return errors.NotValidf("nil AppService")
	}
	if cfg.Checker == nil {
		return errors.NotValidf("nil Checker")
	}
	if cfg.Settings == nil {
		return errors.NotValidf("nil Settings")
	}
	return errors.Trace(cfg.Settings.Validate())
}

// Runner provisions web apps with deployment slots, exercises a
// deploy and swap cycle on each, and tears everything down again.
type Runner struct {
	config RunnerConfig
}

// NewRunner returns a Runner for the given config.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating runner configuration")
	}
	if cfg.NewResourceGroupName == nil {
		cfg.NewResourceGroupName = naming.ResourceGroupName
	}
	if cfg.NewWebAppName == nil {
		cfg.NewWebAppName = naming.WebAppName
	}
	return &Runner{config: cfg}, nil
}

type appState struct {
	app  WebApp
	slot Slot
}

// Run executes a full run. Once the resource group exists it is deleted
// before Run returns, whatever the outcome, unless the settings ask for
// resources to be kept. A failure to delete it is logged and does not
// change the returned error. The report is filled in as far as the run
// got, even when an error is returned.
func (r *Runner) Run(ctx context.Context) (report Report, err error) {
	settings := r.config.Settings
	report.Location = settings.Location

	subscription, err := r.config.AppService.SubscriptionName(ctx)
	if err != nil {
		return report, errors.Annotate(err, "getting subscription")
	}
	logger.Infof("Selected subscription: %s", subscription)
	report.Subscription = subscription

	groupName, err := r.config.NewResourceGroupName(settings.ResourceGroupPrefix)
	if err != nil {
		return report, errors.Trace(err)
	}
	appNames := make([]string, settings.AppCount)
	for i := range appNames {
		if appNames[i], err = r.config.NewWebAppName(settings.AppNamePrefix, i+1); err != nil {
			return report, errors.Trace(err)
		}
	}

	if _, err := r.config.AppService.CreateResourceGroup(ctx, groupName, settings.Location); err != nil {
		logger.Infof("Did not create any resources in Azure. No clean up is necessary")
		report.Cleanup = CleanupNotNeeded
		return report, errors.Trace(err)
	}
	report.ResourceGroup = groupName
	defer func() {
		report.Cleanup = r.cleanup(ctx, groupName)
	}()

	err = r.provision(ctx, groupName, appNames, &report)
	return report, errors.Trace(err)
}

func (r *Runner) provision(ctx context.Context, group string, appNames []string, report *Report) error {
	settings := r.config.Settings
	states := make([]appState, 0, len(appNames))

	for _, name := range appNames {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Creating web app %s with master branch...", name)
		app, err := r.config.AppService.CreateWebApp(ctx, CreateWebAppParams{
			ResourceGroup:       group,
			Name:                name,
			Location:            settings.Location,
			NetFrameworkVersion: settings.NetFrameworkVersion,
			PHPVersion:          settings.PHPVersion,
		})
		if err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Created web app %s", app.Name)
		states = append(states, appState{app: app})
		report.Apps = append(report.Apps, AppReport{
			Name: app.Name,
			URL:  naming.HTTPURL(app.DefaultHostName),
		})
		r.check(ctx, &report.Apps[len(report.Apps)-1], StepCreated, app.DefaultHostName)
	}

	autoSwap := ""
	if settings.AutoSwap {
		autoSwap = config.ProductionSlot
	}
	for i := range states {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		app := states[i].app
		if settings.AutoSwap {
			logger.Infof("Creating a slot %s with auto swap turned on...", settings.SlotName)
		} else {
			logger.Infof("Creating a slot %s...", settings.SlotName)
		}
		slot, err := r.config.AppService.CreateSlot(ctx, CreateSlotParams{
			ResourceGroup:    group,
			App:              app.Name,
			Name:             settings.SlotName,
			Location:         settings.Location,
			AutoSwapSlotName: autoSwap,
		})
		if err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Created slot %s", slot.Name)
		states[i].slot = slot
		report.Apps[i].Slot = slot.Name
		report.Apps[i].SlotURL = naming.HTTPURL(slot.DefaultHostName)
	}

	for i, state := range states {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Deploying %s branch to slot %s...", settings.Branch, state.slot.Name)
		if err := r.config.AppService.ConfigureSourceControl(ctx, SourceControlParams{
			ResourceGroup: group,
			App:           state.app.Name,
			Slot:          state.slot.Name,
			RepoURL:       settings.RepoURL,
			Branch:        settings.Branch,
		}); err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Deployed %s branch to slot %s", settings.Branch, state.slot.Name)
		r.check(ctx, &report.Apps[i], StepDeployed, state.slot.DefaultHostName)
		r.check(ctx, &report.Apps[i], StepDeployed, state.app.DefaultHostName)
	}

	for i, state := range states {
		if err := ctx.Err(); err != nil {
			return errors.Trace(err)
		}
		logger.Infof("Manually swap production slot back to %s...", state.slot.Name)
		if err := r.config.AppService.SwapSlotWithProduction(ctx, group, state.app.Name, state.slot.Name); err != nil {
			if errors.Is(err, ErrSwapInProgress) {
				logger.Warningf("Web app %s is still swapping slot %s; auto swap has not finished", state.app.Name, state.slot.Name)
			}
			return errors.Trace(err)
		}
		logger.Infof("Swapped production slot back to %s", state.slot.Name)
		report.Apps[i].Swapped = true
		r.check(ctx, &report.Apps[i], StepSwapped, state.app.DefaultHostName)
	}
	return nil
}

func (r *Runner) check(ctx context.Context, app *AppReport, step, host string) {
	logger.Infof("CURLing %s...", host)
	url := naming.HTTPURL(host)
	result := r.config.Checker.CheckAddress(ctx, url)
	logger.Infof("%s", result)
	app.Checks = append(app.Checks, CheckResult{
		Step:   step,
		URL:    url,
		Result: result,
	})
}

// cleanup deletes the resource group with a context of its own, so that
// a cancelled run still tears down what it created.
func (r *Runner) cleanup(ctx context.Context, group string) string {
	settings := r.config.Settings
	if settings.KeepResources {
		logger.Infof("Keeping Resource Group: %s", group)
		return CleanupKept
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settings.CleanupTimeout)
	defer cancel()

	logger.Infof("Deleting Resource Group: %s", group)
	if err := r.config.AppService.DeleteResourceGroup(ctx, group); err != nil {
		logger.Errorf("deleting resource group %q: %v", group, err)
		return CleanupFailed
	}
	logger.Infof("Deleted Resource Group: %s", group)
	return CleanupDeleted
}
