// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"bytes"

	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/webappslots/cmd/webappslots/commands"
	"github.com/juju/webappslots/internal/slots"
)

type formatterSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&formatterSuite{})

func (s *formatterSuite) TestFormatTabular(c *gc.C) {
	var buf bytes.Buffer
	err := commands.FormatReportTabular(&buf, slots.Report{
		Subscription:  "sub",
		ResourceGroup: "rg",
		Location:      "eastus",
		Cleanup:       slots.CleanupKept,
		Apps: []slots.AppReport{{
			Name:    "webapp1-abc",
			URL:     "http://webapp1-abc.azurewebsites.net",
			Slot:    "staging",
			SlotURL: "http://webapp1-abc-staging.azurewebsites.net",
			Swapped: true,
			Checks: []slots.CheckResult{
				{Step: slots.StepCreated, URL: "http://webapp1-abc.azurewebsites.net", Result: "200: hello"},
				{Step: slots.StepSwapped, URL: "http://webapp1-abc.azurewebsites.net", Result: "503: busy"},
			},
		}, {
			Name: "webapp2-def",
			URL:  "http://webapp2-def.azurewebsites.net",
		}},
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(buf.String(), gc.Equals, `
Subscription:   sub
Resource group: rg
Location:       eastus
Cleanup:        kept

App          URL                                   Slot     Slot URL                                      Swapped  Last check
webapp1-abc  http://webapp1-abc.azurewebsites.net  staging  http://webapp1-abc-staging.azurewebsites.net  true     503
webapp2-def  http://webapp2-def.azurewebsites.net  -        -                                             false    -
`[1:])
}

func (s *formatterSuite) TestFormatTabularWrongType(c *gc.C) {
	err := commands.FormatReportTabular(&bytes.Buffer{}, "nope")
	c.Assert(err, gc.ErrorMatches, "expected value of type slots.Report, got string")
}
