// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package errorutils classifies errors returned by Azure Resource
// Manager.
package errorutils

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/juju/errors"
)

// StatusCode returns the HTTP status code of the ARM response that
// caused err, or zero if err did not come from an ARM response.
func StatusCode(err error) int {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}

// IsNotFoundError reports whether err is a 404 response.
func IsNotFoundError(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// IsConflictError reports whether err is a 409 response.
func IsConflictError(err error) bool {
	return StatusCode(err) == http.StatusConflict
}

// IsTooManyRequestsError reports whether err is a 429 response.
func IsTooManyRequestsError(err error) bool {
	return StatusCode(err) == http.StatusTooManyRequests
}

// IsAuthorisationFailure reports whether err means the credential was
// rejected or lacks permission.
func IsAuthorisationFailure(err error) bool {
	var authErr *azidentity.AuthenticationFailedError
	if errors.As(err, &authErr) {
		return true
	}
	switch StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	}
	return false
}
