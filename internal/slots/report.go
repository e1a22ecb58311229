// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package slots

// Cleanup outcomes recorded in a Report.
const (
	CleanupNotNeeded = "not-needed"
	CleanupDeleted   = "deleted"
	CleanupKept      = "kept"
	CleanupFailed    = "failed"
)

// Report summarises what a run created and observed.
type Report struct {
	Subscription  string      `yaml:"subscription" json:"subscription"`
	ResourceGroup string      `yaml:"resource-group,omitempty" json:"resource-group,omitempty"`
	Location      string      `yaml:"location" json:"location"`
	Apps          []AppReport `yaml:"apps,omitempty" json:"apps,omitempty"`
	Cleanup       string      `yaml:"cleanup" json:"cleanup"`
}

// AppReport describes one web app and its deployment slot.
type AppReport struct {
	Name    string        `yaml:"name" json:"name"`
	URL     string        `yaml:"url" json:"url"`
	Slot    string        `yaml:"slot,omitempty" json:"slot,omitempty"`
	SlotURL string        `yaml:"slot-url,omitempty" json:"slot-url,omitempty"`
	Swapped bool          `yaml:"swapped" json:"swapped"`
	Checks  []CheckResult `yaml:"checks,omitempty" json:"checks,omitempty"`
}

// CheckResult records an address check made after a step.
type CheckResult struct {
	Step   string `yaml:"step" json:"step"`
	URL    string `yaml:"url" json:"url"`
	Result string `yaml:"result" json:"result"`
}

// Steps after which addresses are checked.
const (
	StepCreated  = "created"
	StepDeployed = "deployed"
	StepSwapped  = "swapped"
)
