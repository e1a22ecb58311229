// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package azure implements slots.AppService on top of the Azure
// Resource Manager SDK.
package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v4"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/webappslots/internal/config"
)

// Logger for the Azure provider.
var logger = loggo.GetLogger("webappslots.provider.azure")

// NewCredentialFunc returns a token credential for a service principal.
type NewCredentialFunc func(creds config.Credentials, options policy.ClientOptions) (azcore.TokenCredential, error)

// ProviderConfig contains configuration for the Azure provider.
type ProviderConfig struct {
	// ClientOptions are passed to every Azure SDK client. Tests set
	// Transport to replace the HTTP client.
	ClientOptions policy.ClientOptions

	// RetryClock is used when retrying API calls due to rate-limiting.
	RetryClock clock.Clock

	// NewCredential creates the credential used to authenticate.
	NewCredential NewCredentialFunc
}

// DefaultProviderConfig returns the configuration used outside tests.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		RetryClock:    clock.WallClock,
		NewCredential: NewClientSecretCredential,
	}
}

// Validate validates the Azure provider configuration.
func (cfg ProviderConfig) Validate() error {
	if cfg.RetryClock == nil {
		return errors.NotValidf("nil RetryClock")
	}
	if cfg.NewCredential == nil {
		return errors.NotValidf("nil NewCredential")
	}
	return nil
}

// NewClientSecretCredential authenticates as a service principal with
// a client secret.
func NewClientSecretCredential(creds config.Credentials, options policy.ClientOptions) (azcore.TokenCredential, error) {
	cred, err := azidentity.NewClientSecretCredential(
		creds.TenantID, creds.ClientID, creds.ClientSecret,
		&azidentity.ClientSecretCredentialOptions{ClientOptions: options},
	)
	if err != nil {
		return nil, errors.Annotate(err, "creating client secret credential")
	}
	return cred, nil
}

// AppService manages App Service resources in one subscription.
type AppService struct {
	subscriptionID string
	clock          clock.Clock

	subscriptions  *armsubscriptions.Client
	resourceGroups *armresources.ResourceGroupsClient
	plans          *armappservice.PlansClient
	webApps        *armappservice.WebAppsClient
}

// Open authenticates with creds and returns an AppService bound to the
// credential's subscription. No request is made until a method is called.
func Open(ctx context.Context, cfg ProviderConfig, creds config.Credentials) (*AppService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating provider configuration")
	}
	if err := creds.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	logger.Debugf("opening subscription %q as client %q", creds.SubscriptionID, creds.ClientID)

	credential, err := cfg.NewCredential(creds, cfg.ClientOptions)
	if err != nil {
		return nil, errors.Trace(err)
	}
	opts := &arm.ClientOptions{ClientOptions: cfg.ClientOptions}

	env := &AppService{
		subscriptionID: creds.SubscriptionID,
		clock:          cfg.RetryClock,
	}
	if env.subscriptions, err = armsubscriptions.NewClient(credential, opts); err != nil {
		return nil, errors.Annotate(err, "creating subscriptions client")
	}
	if env.resourceGroups, err = armresources.NewResourceGroupsClient(creds.SubscriptionID, credential, opts); err != nil {
		return nil, errors.Annotate(err, "creating resource groups client")
	}
	if env.plans, err = armappservice.NewPlansClient(creds.SubscriptionID, credential, opts); err != nil {
		return nil, errors.Annotate(err, "creating app service plans client")
	}
	if env.webApps, err = armappservice.NewWebAppsClient(creds.SubscriptionID, credential, opts); err != nil {
		return nil, errors.Annotate(err, "creating web apps client")
	}
	return env, nil
}
