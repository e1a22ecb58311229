// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"
	"github.com/juju/utils/v4/arch"
	"github.com/juju/version/v2"
)

// Current is the current version of the webappslots tools.
var Current = version.MustParse("1.0.0")

const (
	// LoggingConfigEnvKey holds the logging configuration used when no
	// logging flags are given.
	LoggingConfigEnvKey = "WEBAPPSLOTS_LOGGING_CONFIG"

	// StartupLoggingConfigEnvKey holds the logging configuration used
	// before command line flags are parsed.
	StartupLoggingConfigEnvKey = "WEBAPPSLOTS_STARTUP_LOGGING_CONFIG"

	// defaultLoggingConfig shows progress messages, which are logged
	// at INFO.
	defaultLoggingConfig = "<root>=INFO"
)

func init() {
	// If the environment key is empty, ConfigureLoggers returns nil and does
	// nothing.
	err := loggo.ConfigureLoggers(os.Getenv(StartupLoggingConfigEnvKey))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR parsing %s: %s\n\n", StartupLoggingConfigEnvKey, err)
	}
}

var logger = loggo.GetLogger("webappslots.cmd")

// NewSuperCommand is like cmd.NewSuperCommand but it adds
// webappslots-specific functionality:
//   - The default logging configuration is taken from the environment;
//   - The version is configured to the current version;
//   - The command emits a log message when a command runs.
func NewSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.Log = &cmd.Log{
		DefaultConfig: LoggingConfig(os.Getenv),
	}
	current := version.Binary{
		Number:  Current,
		Release: runtime.GOOS,
		Arch:    arch.HostArch(),
	}
	// cmd.SuperCommandParams only takes the version as a string.
	p.Version = current.String()
	p.NotifyRun = runNotifier
	return cmd.NewSuperCommand(p)
}

// LoggingConfig returns the logging configuration to use when none is
// given on the command line.
func LoggingConfig(getenv func(string) string) string {
	if config := getenv(LoggingConfigEnvKey); config != "" {
		return config
	}
	return defaultLoggingConfig
}

func runNotifier(name string) {
	logger.Debugf("running %s [%s %s %s]", name, Current, runtime.Compiler, runtime.Version())
}
