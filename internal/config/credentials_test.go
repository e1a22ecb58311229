// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"os"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/webappslots/internal/config"
)

type credentialsSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&credentialsSuite{})

func (s *credentialsSuite) TestCredentialsFromEnv(c *gc.C) {
	s.PatchEnvironment("CLIENT_ID", "client")
	s.PatchEnvironment("CLIENT_SECRET", "secret")
	s.PatchEnvironment("TENANT_ID", "tenant")
	s.PatchEnvironment("SUBSCRIPTION_ID", "subscription")

	creds, err := config.CredentialsFromEnv(os.Getenv)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(creds, jc.DeepEquals, config.Credentials{
		ClientID:       "client",
		ClientSecret:   "secret",
		TenantID:       "tenant",
		SubscriptionID: "subscription",
	})
}

func (s *credentialsSuite) TestCredentialsMissing(c *gc.C) {
	env := map[string]string{
		"CLIENT_ID":     "client",
		"CLIENT_SECRET": "secret",
		"TENANT_ID":     "tenant",
	}
	_, err := config.CredentialsFromEnv(func(key string) string { return env[key] })
	c.Assert(err, jc.Satisfies, errors.IsNotValid)
	c.Assert(err, gc.ErrorMatches, `empty \$SUBSCRIPTION_ID not valid`)
}
