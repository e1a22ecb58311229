// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package slots

import (
	"context"

	"github.com/juju/errors"
)

// ErrSwapInProgress is the type of error returned by
// AppService.SwapSlotWithProduction while the web app is still busy
// with an earlier swap, such as one started by auto swap.
const ErrSwapInProgress = errors.ConstError("swap in progress")

//go:generate go run go.uber.org/mock/mockgen -package slots -destination appservice_mock_test.go github.com/juju/webappslots/internal/slots AppService,AddressChecker

// AppService is the part of the App Service control plane used to
// provision web apps and their deployment slots. Every method blocks
// until the remote operation has completed.
type AppService interface {
	// SubscriptionName returns the display name of the subscription
	// resources are created in.
	SubscriptionName(ctx context.Context) (string, error)

	// CreateResourceGroup creates (or updates) a resource group.
	CreateResourceGroup(ctx context.Context, name, location string) (ResourceGroup, error)

	// DeleteResourceGroup deletes a resource group and everything in it.
	DeleteResourceGroup(ctx context.Context, name string) error

	// CreateWebApp creates a web app together with the App Service
	// plan hosting it.
	CreateWebApp(ctx context.Context, args CreateWebAppParams) (WebApp, error)

	// CreateSlot creates a deployment slot for an existing web app.
	CreateSlot(ctx context.Context, args CreateSlotParams) (Slot, error)

	// ConfigureSourceControl links a deployment slot to a source
	// repository branch, which deploys the branch to the slot.
	ConfigureSourceControl(ctx context.Context, args SourceControlParams) error

	// SwapSlotWithProduction swaps a deployment slot with the
	// production slot of its web app.
	SwapSlotWithProduction(ctx context.Context, resourceGroup, app, slot string) error
}

// AddressChecker reports how an address responds. It never fails;
// problems are described in the returned text.
type AddressChecker interface {
	CheckAddress(ctx context.Context, url string) string
}

// ResourceGroup describes a created resource group.
type ResourceGroup struct {
	ID       string
	Name     string
	Location string
}

// WebApp describes a created web app.
type WebApp struct {
	ID              string
	Name            string
	Location        string
	DefaultHostName string
	PlanID          string
}

// Slot describes a created deployment slot.
type Slot struct {
	ID              string
	App             string
	Name            string
	DefaultHostName string
}

// CreateWebAppParams holds the arguments of AppService.CreateWebApp.
type CreateWebAppParams struct {
	ResourceGroup       string
	Name                string
	Location            string
	NetFrameworkVersion string
	PHPVersion          string
}

// CreateSlotParams holds the arguments of AppService.CreateSlot.
type CreateSlotParams struct {
	ResourceGroup string
	App           string
	Name          string
	Location      string

	// AutoSwapSlotName, if set, is the slot this slot is automatically
	// swapped into after each deployment.
	AutoSwapSlotName string
}

// SourceControlParams holds the arguments of
// AppService.ConfigureSourceControl.
type SourceControlParams struct {
	ResourceGroup string
	App           string
	Slot          string
	RepoURL       string
	Branch        string
}
