// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"github.com/juju/webappslots/internal/provider/azure/internal/errorutils"
)

// IsAuthorisationFailure reports whether err was caused by Azure
// rejecting the service principal, either while issuing a token or
// because it lacks a role on the subscription.
func IsAuthorisationFailure(err error) bool {
	return errorutils.IsAuthorisationFailure(err)
}
