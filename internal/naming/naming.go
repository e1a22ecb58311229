// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package naming generates the names and host names used for the
// resources created by webappslots.
package naming

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/utils/v4"
)

const (
	// HostSuffix is the DNS suffix App Service assigns to every web app
	// and deployment slot.
	HostSuffix = ".azurewebsites.net"

	// ResourceGroupNameMax is the maximum length of a resource group name.
	ResourceGroupNameMax = 90

	// WebAppNameMax is the maximum length of a web app name.
	WebAppNameMax = 60

	// HostLabelMax is the maximum length of a DNS label. A slot host
	// name puts the app and slot names in one label.
	HostLabelMax = 63

	// randomLength is the number of random characters appended to
	// generated names.
	randomLength = 8
)

var nameRunes = append(append([]rune{}, utils.LowerAlpha...), utils.Digits...)

// RandomName returns prefix followed by randomLength random lowercase
// alphanumeric characters.
func RandomName(prefix string) string {
	return prefix + utils.RandomString(randomLength, nameRunes)
}

// ResourceGroupName returns a random resource group name with the
// given prefix.
func ResourceGroupName(prefix string) (string, error) {
	name := RandomName(prefix)
	if len(name) > ResourceGroupNameMax {
		return "", errors.NotValidf("resource group prefix %q (too long)", prefix)
	}
	return name, nil
}

// WebAppName returns a random, DNS friendly web app name for the n'th
// (1-based) app.
func WebAppName(prefix string, n int) (string, error) {
	name := strings.ToLower(RandomName(fmt.Sprintf("%s%d-", prefix, n)))
	if len(name) > WebAppNameMax {
		return "", errors.NotValidf("web app prefix %q (too long)", prefix)
	}
	return name, nil
}

// CheckSlotHost checks that the host name of the given slot fits in
// one DNS label for every app named by WebAppName with prefix, up to
// the n'th app.
func CheckSlotHost(prefix string, n int, slot string) error {
	longest := len(fmt.Sprintf("%s%d-", prefix, n)) + randomLength
	if label := longest + 1 + len(slot); label > HostLabelMax {
		return errors.NotValidf("slot name %q (host name label of %d characters, maximum %d)", slot, label, HostLabelMax)
	}
	return nil
}

// PlanName returns the name of the App Service plan hosting the web app.
func PlanName(app string) string {
	return app + "-plan"
}

// AppHost returns the default host name of a web app.
func AppHost(app string) string {
	return app + HostSuffix
}

// SlotHost returns the default host name of a deployment slot.
func SlotHost(app, slot string) string {
	return app + "-" + slot + HostSuffix
}

// HTTPURL returns the plain http URL for a host name, as used when
// checking that an app responds.
func HTTPURL(host string) string {
	return "http://" + host
}
