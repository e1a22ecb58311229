// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds the settings that drive a slot management run.
// Settings come from an optional YAML file and command line overrides,
// and are validated with juju/schema.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/schema"
	"gopkg.in/yaml.v2"

	"github.com/juju/webappslots/internal/naming"
)

var logger = loggo.GetLogger("webappslots.config")

const (
	LocationKey            = "location"
	AppCountKey            = "app-count"
	SlotNameKey            = "slot-name"
	RepoURLKey             = "repo-url"
	BranchKey              = "branch"
	ResourceGroupPrefixKey = "resource-group-prefix"
	AppNamePrefixKey       = "app-name-prefix"
	AutoSwapKey            = "auto-swap"
	NetFrameworkVersionKey = "net-framework-version"
	PHPVersionKey          = "php-version"
	CheckTimeoutKey        = "check-timeout"
	CleanupTimeoutKey      = "cleanup-timeout"
	KeepResourcesKey       = "keep-resources"

	// ProductionSlot is the name App Service uses for the production
	// slot of every web app.
	ProductionSlot = "production"

	// MaxAppCount bounds the number of web apps created by one run.
	MaxAppCount = 10
)

var configFields = schema.Fields{
	LocationKey:            schema.String(),
	AppCountKey:            schema.ForceInt(),
	SlotNameKey:            schema.String(),
	RepoURLKey:             schema.String(),
	BranchKey:              schema.String(),
	ResourceGroupPrefixKey: schema.String(),
	AppNamePrefixKey:       schema.String(),
	AutoSwapKey:            schema.Bool(),
	NetFrameworkVersionKey: schema.String(),
	PHPVersionKey:          schema.String(),
	CheckTimeoutKey:        schema.TimeDuration(),
	CleanupTimeoutKey:      schema.TimeDuration(),
	KeepResourcesKey:       schema.Bool(),
}

var configDefaults = schema.Defaults{
	LocationKey:            "eastus",
	AppCountKey:            3,
	SlotNameKey:            "staging",
	RepoURLKey:             "https://github.com/jianghaolu/azure-site-test.git",
	BranchKey:              "staging",
	ResourceGroupPrefixKey: "rg1NEMV_",
	AppNamePrefixKey:       "webapp",
	AutoSwapKey:            true,
	NetFrameworkVersionKey: "v4.0",
	PHPVersionKey:          "",
	CheckTimeoutKey:        "30s",
	CleanupTimeoutKey:      "15m",
	KeepResourcesKey:       false,
}

var configChecker = schema.StrictFieldMap(configFields, configDefaults)

// Config is a validated set of run settings.
type Config struct {
	Location            string
	AppCount            int
	SlotName            string
	RepoURL             string
	Branch              string
	ResourceGroupPrefix string
	AppNamePrefix       string

	// AutoSwap configures each staging slot to swap into production
	// once a deployment to it completes.
	AutoSwap bool

	NetFrameworkVersion string
	PHPVersion          string

	// CheckTimeout bounds each address check.
	CheckTimeout time.Duration

	// CleanupTimeout bounds the deletion of the resource group, which
	// runs even after the run itself was cancelled.
	CleanupTimeout time.Duration

	// KeepResources skips deleting the resource group at the end.
	KeepResources bool
}

// Parse parses raw settings from YAML.
func Parse(data []byte) (map[string]interface{}, error) {
	attrs := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Annotate(err, "parsing settings")
	}
	return attrs, nil
}

// New coerces attrs, fills in defaults and validates the result.
func New(attrs map[string]interface{}) (*Config, error) {
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	coerced, err := configChecker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Annotate(err, "validating settings")
	}
	valid := coerced.(map[string]interface{})

	cfg := &Config{
		Location:            canonicalLocation(valid[LocationKey].(string)),
		AppCount:            intValue(valid[AppCountKey]),
		SlotName:            valid[SlotNameKey].(string),
		RepoURL:             valid[RepoURLKey].(string),
		Branch:              valid[BranchKey].(string),
		ResourceGroupPrefix: valid[ResourceGroupPrefixKey].(string),
		AppNamePrefix:       valid[AppNamePrefixKey].(string),
		AutoSwap:            valid[AutoSwapKey].(bool),
		NetFrameworkVersion: valid[NetFrameworkVersionKey].(string),
		PHPVersion:          valid[PHPVersionKey].(string),
		CheckTimeout:        durationValue(valid[CheckTimeoutKey]),
		CleanupTimeout:      durationValue(valid[CleanupTimeoutKey]),
		KeepResources:       valid[KeepResourcesKey].(bool),
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// Validate checks the settings are usable.
func (cfg *Config) Validate() error {
	if cfg.Location == "" {
		return errors.NotValidf("empty %s", LocationKey)
	}
	if cfg.AppCount < 1 || cfg.AppCount > MaxAppCount {
		return errors.NotValidf("%s %d (expected 1 to %d)", AppCountKey, cfg.AppCount, MaxAppCount)
	}
	if cfg.SlotName == "" {
		return errors.NotValidf("empty %s", SlotNameKey)
	}
	if strings.EqualFold(cfg.SlotName, ProductionSlot) {
		return errors.NotValidf("%s %q (reserved)", SlotNameKey, cfg.SlotName)
	}
	if err := validateRepoURL(cfg.RepoURL); err != nil {
		return errors.Trace(err)
	}
	if cfg.Branch == "" {
		return errors.NotValidf("empty %s", BranchKey)
	}
	if _, err := naming.ResourceGroupName(cfg.ResourceGroupPrefix); err != nil {
		return errors.Trace(err)
	}
	if cfg.AppNamePrefix == "" {
		return errors.NotValidf("empty %s", AppNamePrefixKey)
	}
	if _, err := naming.WebAppName(cfg.AppNamePrefix, cfg.AppCount); err != nil {
		return errors.Trace(err)
	}
	if err := naming.CheckSlotHost(cfg.AppNamePrefix, cfg.AppCount, cfg.SlotName); err != nil {
		return errors.Trace(err)
	}
	if cfg.CheckTimeout <= 0 {
		return errors.NotValidf("%s %v", CheckTimeoutKey, cfg.CheckTimeout)
	}
	if cfg.CleanupTimeout <= 0 {
		return errors.NotValidf("%s %v", CleanupTimeoutKey, cfg.CleanupTimeout)
	}
	return nil
}

func validateRepoURL(raw string) error {
	if raw == "" {
		return errors.NotValidf("empty %s", RepoURLKey)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.NewNotValid(err, fmt.Sprintf("%s %q", RepoURLKey, raw))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.NotValidf("%s %q (expected an absolute http or https URL)", RepoURLKey, raw)
	}
	return nil
}

// canonicalLocation returns the canonicalized location string. ARM does
// not accept embedded whitespace, so "East US" becomes "eastus".
func canonicalLocation(s string) string {
	canonical := strings.ToLower(strings.Replace(s, " ", "", -1))
	if canonical != s {
		logger.Debugf("using location %q for %q", canonical, s)
	}
	return canonical
}

func intValue(v interface{}) int {
	switch v := v.(type) {
	case int64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func durationValue(v interface{}) time.Duration {
	switch v := v.(type) {
	case time.Duration:
		return v
	case string:
		d, _ := time.ParseDuration(v)
		return d
	case int64:
		return time.Duration(v)
	case int:
		return time.Duration(v)
	}
	return 0
}
