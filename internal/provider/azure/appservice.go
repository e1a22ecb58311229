// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/juju/errors"

	"github.com/juju/webappslots/internal/naming"
	"github.com/juju/webappslots/internal/provider/azure/internal/errorutils"
	"github.com/juju/webappslots/internal/slots"
)

const (
	// createdByTag is set on every resource group created here, so
	// leftovers can be found and removed.
	createdByTag   = "created-by"
	createdByValue = "webappslots"

	// Deployment slots need at least the Standard tier.
	planSkuName = "S1"
	planSkuTier = "Standard"
)

var _ slots.AppService = (*AppService)(nil)

// SubscriptionName is part of the slots.AppService interface.
func (env *AppService) SubscriptionName(ctx context.Context) (string, error) {
	var sub armsubscriptions.Subscription
	err := env.call(ctx, fmt.Sprintf("getting subscription %q", env.subscriptionID), func() error {
		resp, err := env.subscriptions.Get(ctx, env.subscriptionID, nil)
		if err != nil {
			return err
		}
		sub = resp.Subscription
		return nil
	})
	if err != nil {
		return "", errors.Trace(err)
	}
	id := nameOr(sub.SubscriptionID, env.subscriptionID)
	if name := toValue(sub.DisplayName); name != "" {
		return fmt.Sprintf("%s (%s)", name, id), nil
	}
	return id, nil
}

// CreateResourceGroup is part of the slots.AppService interface.
func (env *AppService) CreateResourceGroup(ctx context.Context, name, location string) (slots.ResourceGroup, error) {
	logger.Debugf("creating resource group %q in %q", name, location)
	var group armresources.ResourceGroup
	err := env.call(ctx, fmt.Sprintf("creating resource group %q", name), func() error {
		resp, err := env.resourceGroups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
			Location: to.Ptr(location),
			Tags:     map[string]*string{createdByTag: to.Ptr(createdByValue)},
		}, nil)
		if err != nil {
			return err
		}
		group = resp.ResourceGroup
		return nil
	})
	if err != nil {
		return slots.ResourceGroup{}, errors.Trace(err)
	}
	return slots.ResourceGroup{
		ID:       toValue(group.ID),
		Name:     nameOr(group.Name, name),
		Location: nameOr(group.Location, location),
	}, nil
}

// DeleteResourceGroup is part of the slots.AppService interface.
// Deleting a resource group that does not exist succeeds.
func (env *AppService) DeleteResourceGroup(ctx context.Context, name string) error {
	logger.Debugf("deleting resource group %q", name)
	err := env.call(ctx, fmt.Sprintf("deleting resource group %q", name), func() error {
		poller, err := env.resourceGroups.BeginDelete(ctx, name, nil)
		if err == nil {
			_, err = poller.PollUntilDone(ctx, nil)
		}
		return err
	})
	if errorutils.IsNotFoundError(err) {
		logger.Debugf("resource group %q not found", name)
		return nil
	}
	return errors.Trace(err)
}

// CreateWebApp is part of the slots.AppService interface. The web app
// gets its own Standard tier App Service plan.
func (env *AppService) CreateWebApp(ctx context.Context, args slots.CreateWebAppParams) (slots.WebApp, error) {
	plan, err := env.createPlan(ctx, args.ResourceGroup, naming.PlanName(args.Name), args.Location)
	if err != nil {
		return slots.WebApp{}, errors.Trace(err)
	}

	siteConfig := &armappservice.SiteConfig{}
	if args.NetFrameworkVersion != "" {
		siteConfig.NetFrameworkVersion = to.Ptr(args.NetFrameworkVersion)
	}
	if args.PHPVersion != "" {
		siteConfig.PhpVersion = to.Ptr(args.PHPVersion)
	}

	logger.Debugf("creating web app %q on plan %q", args.Name, toValue(plan.ID))
	var site armappservice.Site
	err = env.call(ctx, fmt.Sprintf("creating web app %q", args.Name), func() error {
		poller, err := env.webApps.BeginCreateOrUpdate(ctx, args.ResourceGroup, args.Name, armappservice.Site{
			Location: to.Ptr(args.Location),
			Properties: &armappservice.SiteProperties{
				ServerFarmID: plan.ID,
				SiteConfig:   siteConfig,
			},
		}, nil)
		if err != nil {
			return err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return err
		}
		site = resp.Site
		return nil
	})
	if err != nil {
		return slots.WebApp{}, errors.Trace(err)
	}

	app := slots.WebApp{
		ID:       toValue(site.ID),
		Name:     nameOr(site.Name, args.Name),
		Location: nameOr(site.Location, args.Location),
		PlanID:   toValue(plan.ID),
	}
	if site.Properties != nil {
		app.DefaultHostName = toValue(site.Properties.DefaultHostName)
	}
	if app.DefaultHostName == "" {
		app.DefaultHostName = naming.AppHost(app.Name)
	}
	return app, nil
}

func (env *AppService) createPlan(ctx context.Context, resourceGroup, name, location string) (armappservice.Plan, error) {
	logger.Debugf("creating app service plan %q", name)
	var plan armappservice.Plan
	err := env.call(ctx, fmt.Sprintf("creating app service plan %q", name), func() error {
		poller, err := env.plans.BeginCreateOrUpdate(ctx, resourceGroup, name, armappservice.Plan{
			Location: to.Ptr(location),
			SKU: &armappservice.SKUDescription{
				Name:     to.Ptr(planSkuName),
				Tier:     to.Ptr(planSkuTier),
				Capacity: to.Ptr[int32](1),
			},
		}, nil)
		if err != nil {
			return err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return err
		}
		plan = resp.Plan
		return nil
	})
	if err != nil {
		return armappservice.Plan{}, errors.Trace(err)
	}
	if plan.ID == nil {
		return armappservice.Plan{}, errors.Errorf("app service plan %q has no ID", name)
	}
	return plan, nil
}

// CreateSlot is part of the slots.AppService interface.
func (env *AppService) CreateSlot(ctx context.Context, args slots.CreateSlotParams) (slots.Slot, error) {
	var siteConfig *armappservice.SiteConfig
	if args.AutoSwapSlotName != "" {
		siteConfig = &armappservice.SiteConfig{
			AutoSwapSlotName: to.Ptr(args.AutoSwapSlotName),
		}
	}

	logger.Debugf("creating slot %q of web app %q", args.Name, args.App)
	var site armappservice.Site
	err := env.call(ctx, fmt.Sprintf("creating slot %q of web app %q", args.Name, args.App), func() error {
		poller, err := env.webApps.BeginCreateOrUpdateSlot(ctx, args.ResourceGroup, args.App, args.Name, armappservice.Site{
			Location: to.Ptr(args.Location),
			Properties: &armappservice.SiteProperties{
				SiteConfig: siteConfig,
			},
		}, nil)
		if err != nil {
			return err
		}
		resp, err := poller.PollUntilDone(ctx, nil)
		if err != nil {
			return err
		}
		site = resp.Site
		return nil
	})
	if err != nil {
		return slots.Slot{}, errors.Trace(err)
	}

	slot := slots.Slot{
		ID:   toValue(site.ID),
		App:  args.App,
		Name: slotName(toValue(site.Name), args.Name),
	}
	if site.Properties != nil {
		slot.DefaultHostName = toValue(site.Properties.DefaultHostName)
	}
	if slot.DefaultHostName == "" {
		slot.DefaultHostName = naming.SlotHost(args.App, slot.Name)
	}
	return slot, nil
}

// ConfigureSourceControl is part of the slots.AppService interface.
// The repository is linked with manual integration, so no webhook is
// registered with the repository host.
func (env *AppService) ConfigureSourceControl(ctx context.Context, args slots.SourceControlParams) error {
	logger.Debugf("linking slot %q of web app %q to %s (%s)", args.Slot, args.App, args.RepoURL, args.Branch)
	err := env.call(ctx, fmt.Sprintf("configuring source control for slot %q of web app %q", args.Slot, args.App), func() error {
		poller, err := env.webApps.BeginCreateOrUpdateSourceControlSlot(ctx, args.ResourceGroup, args.App, args.Slot, armappservice.SiteSourceControl{
			Properties: &armappservice.SiteSourceControlProperties{
				RepoURL:             to.Ptr(args.RepoURL),
				Branch:              to.Ptr(args.Branch),
				IsManualIntegration: to.Ptr(true),
			},
		}, nil)
		if err != nil {
			return err
		}
		_, err = poller.PollUntilDone(ctx, nil)
		return err
	})
	return errors.Trace(err)
}

// SwapSlotWithProduction is part of the slots.AppService interface.
// Only starting the swap is retried; once ARM has accepted it, a
// failure while waiting is returned as is. A conflict, at either stage,
// satisfies errors.Is(err, slots.ErrSwapInProgress).
func (env *AppService) SwapSlotWithProduction(ctx context.Context, resourceGroup, app, slot string) error {
	what := fmt.Sprintf("swapping slot %q of web app %q with production", slot, app)
	logger.Debugf("swapping slot %q of web app %q with production", slot, app)
	var poller *runtime.Poller[armappservice.WebAppsClientSwapSlotWithProductionResponse]
	err := env.call(ctx, what, func() error {
		var err error
		poller, err = env.webApps.BeginSwapSlotWithProduction(ctx, resourceGroup, app, armappservice.CsmSlotEntity{
			TargetSlot:   to.Ptr(slot),
			PreserveVnet: to.Ptr(true),
		}, nil)
		return err
	})
	if err == nil {
		_, err = poller.PollUntilDone(ctx, nil)
		err = errors.Annotate(err, what)
	}
	if errorutils.IsConflictError(err) {
		return errors.WithType(err, slots.ErrSwapInProgress)
	}
	return errors.Trace(err)
}

// slotName returns the slot part of an ARM slot resource name, which
// has the form "<app>/<slot>".
func slotName(resourceName, fallback string) string {
	if resourceName == "" {
		return fallback
	}
	if i := strings.LastIndex(resourceName, "/"); i >= 0 {
		return resourceName[i+1:]
	}
	return resourceName
}

func nameOr(v *string, fallback string) string {
	if s := toValue(v); s != "" {
		return s
	}
	return fallback
}
