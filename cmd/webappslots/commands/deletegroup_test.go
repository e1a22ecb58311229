// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands_test

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/webappslots/cmd/webappslots/commands"
)

type deleteGroupSuite struct {
	testing.IsolationSuite

	appService *fakeAppService
}

var _ = gc.Suite(&deleteGroupSuite{})

func (s *deleteGroupSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.appService = &fakeAppService{}
}

func (s *deleteGroupSuite) TestInit(c *gc.C) {
	for i, test := range []struct {
		args []string
		err  string
	}{{
		args: nil,
		err:  "no resource group specified",
	}, {
		args: []string{"rg", "extra"},
		err:  `unrecognized args: \["extra"\]`,
	}} {
		c.Logf("test %d: %v", i, test.args)
		_, err := cmdtesting.RunCommand(c, commands.NewDeleteGroupCommandForTest(fakeEnv, s.appService.open), test.args...)
		c.Check(err, gc.ErrorMatches, test.err)
	}
	s.appService.CheckNoCalls(c)
}

func (s *deleteGroupSuite) TestRun(c *gc.C) {
	ctx, err := cmdtesting.RunCommand(c, commands.NewDeleteGroupCommandForTest(fakeEnv, s.appService.open), "rg1NEMV_abc")
	c.Assert(err, jc.ErrorIsNil)
	s.appService.CheckCallNames(c, "Open", "DeleteResourceGroup")
	s.appService.CheckCall(c, 1, "DeleteResourceGroup", "rg1NEMV_abc")
	c.Assert(cmdtesting.Stderr(ctx), jc.Contains, "Deleted Resource Group: rg1NEMV_abc\n")
}

func (s *deleteGroupSuite) TestRunFailure(c *gc.C) {
	s.appService.SetErrors(nil, errors.New("scope locked"))
	_, err := cmdtesting.RunCommand(c, commands.NewDeleteGroupCommandForTest(fakeEnv, s.appService.open), "rg1NEMV_abc")
	c.Assert(err, gc.ErrorMatches, "scope locked")
}

func (s *deleteGroupSuite) TestRunRejectedCredentials(c *gc.C) {
	s.appService.SetErrors(nil, &azcore.ResponseError{StatusCode: http.StatusUnauthorized})
	_, err := cmdtesting.RunCommand(c, commands.NewDeleteGroupCommandForTest(fakeEnv, s.appService.open), "rg1NEMV_abc")
	c.Assert(err, gc.ErrorMatches, `(?s)Azure rejected the service principal; .*`)
}
