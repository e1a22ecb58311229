// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

//go:build !windows

package commands_test

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/juju/webappslots/cmd/webappslots/commands"
)

type interruptSuite struct {
	testing.IsolationSuite

	// guard stops a signal that arrives after the command has
	// stopped listening from killing the test binary.
	guard chan os.Signal
}

var _ = gc.Suite(&interruptSuite{})

func (s *interruptSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.guard = make(chan os.Signal, 4)
	signal.Notify(s.guard, syscall.SIGINT, syscall.SIGTERM)
}

func (s *interruptSuite) TearDownTest(c *gc.C) {
	signal.Stop(s.guard)
	s.IsolationSuite.TearDownTest(c)
}

func (s *interruptSuite) TestSignalCancelsContext(c *gc.C) {
	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		c.Logf("signal %v", sig)
		ctx := cmdtesting.Context(c)
		stdCtx, stop := commands.InterruptibleContext(ctx)
		c.Assert(syscall.Kill(os.Getpid(), sig), jc.ErrorIsNil)
		select {
		case <-stdCtx.Done():
		case <-time.After(testing.LongWait):
			c.Fatalf("context not cancelled by %v", sig)
		}
		stop()
		c.Check(cmdtesting.Stderr(ctx), gc.Equals, fmt.Sprintf("Caught %v, cleaning up...\n", sig))
	}
}

func (s *interruptSuite) TestStopCancelsContext(c *gc.C) {
	ctx := cmdtesting.Context(c)
	stdCtx, stop := commands.InterruptibleContext(ctx)
	c.Assert(stdCtx.Err(), jc.ErrorIsNil)
	stop()
	c.Assert(stdCtx.Err(), gc.Equals, context.Canceled)
	c.Assert(cmdtesting.Stderr(ctx), gc.Equals, "")
}

func (s *interruptSuite) TestManageSlotsTerminatedCleansUp(c *gc.C) {
	appService := &fakeAppService{}
	appService.onCreateResourceGroup = func(ctx context.Context) {
		if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
			c.Errorf("sending SIGTERM: %v", err)
			return
		}
		select {
		case <-ctx.Done():
		case <-time.After(testing.LongWait):
			c.Errorf("context not cancelled by SIGTERM")
		}
	}
	checker := &fakeChecker{}

	ctx, err := cmdtesting.RunCommand(c,
		commands.NewManageSlotsCommandForTest(fakeEnv, appService.open, checker.new),
		"--apps", "2", "--format", "yaml",
	)
	c.Assert(err, gc.ErrorMatches, ".*context canceled")

	appService.CheckCallNames(c,
		"Open",
		"SubscriptionName",
		"CreateResourceGroup",
		"DeleteResourceGroup",
	)
	group := appService.Calls()[2].Args[0]
	appService.CheckCall(c, 3, "DeleteResourceGroup", group)
	c.Assert(cmdtesting.Stdout(ctx), jc.Contains, "cleanup: deleted\n")
	c.Assert(cmdtesting.Stderr(ctx), jc.Contains, "Caught terminated, cleaning up...\n")
}
