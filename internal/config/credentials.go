// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/juju/errors"
)

// Environment variables holding the service principal used to
// authenticate against Azure Resource Manager.
const (
	ClientIDEnvKey       = "CLIENT_ID"
	ClientSecretEnvKey   = "CLIENT_SECRET"
	TenantIDEnvKey       = "TENANT_ID"
	SubscriptionIDEnvKey = "SUBSCRIPTION_ID"
)

// Credentials identify a service principal and the subscription it
// operates on.
type Credentials struct {
	ClientID       string
	ClientSecret   string
	TenantID       string
	SubscriptionID string
}

// CredentialsFromEnv reads credentials using getenv, typically os.Getenv.
func CredentialsFromEnv(getenv func(string) string) (Credentials, error) {
	creds := Credentials{
		ClientID:       getenv(ClientIDEnvKey),
		ClientSecret:   getenv(ClientSecretEnvKey),
		TenantID:       getenv(TenantIDEnvKey),
		SubscriptionID: getenv(SubscriptionIDEnvKey),
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, errors.Trace(err)
	}
	return creds, nil
}

// Validate ensures every credential attribute is set.
func (c Credentials) Validate() error {
	for _, attr := range []struct {
		key, value string
	}{
		{ClientIDEnvKey, c.ClientID},
		{ClientSecretEnvKey, c.ClientSecret},
		{TenantIDEnvKey, c.TenantID},
		{SubscriptionIDEnvKey, c.SubscriptionID},
	} {
		if attr.value == "" {
			return errors.NotValidf("empty $%s", attr.key)
		}
	}
	return nil
}
