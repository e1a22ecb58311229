// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/juju/ansiterm"
	"github.com/juju/errors"

	"github.com/juju/webappslots/internal/slots"
)

// formatReportTabular writes a slots.Report as a table of web apps
// followed by a summary of the resource group.
func formatReportTabular(writer io.Writer, value interface{}) error {
	report, ok := value.(slots.Report)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", report, value)
	}

	tw := ansiterm.NewTabWriter(writer, 0, 1, 1, ' ', 0)
	fmt.Fprintf(tw, "Subscription:\t%s\n", report.Subscription)
	fmt.Fprintf(tw, "Resource group:\t%s\n", valueOrDash(report.ResourceGroup))
	fmt.Fprintf(tw, "Location:\t%s\n", report.Location)
	fmt.Fprintf(tw, "Cleanup:\t%s\n", valueOrDash(report.Cleanup))
	if err := tw.Flush(); err != nil {
		return errors.Trace(err)
	}
	if len(report.Apps) == 0 {
		return nil
	}

	fmt.Fprintln(writer)
	tw = ansiterm.NewTabWriter(writer, 0, 1, 2, ' ', 0)
	fmt.Fprintln(tw, "App\tURL\tSlot\tSlot URL\tSwapped\tLast check")
	for _, app := range report.Apps {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			app.Name,
			app.URL,
			valueOrDash(app.Slot),
			valueOrDash(app.SlotURL),
			app.Swapped,
			lastCheck(app.Checks),
		)
	}
	return errors.Trace(tw.Flush())
}

func lastCheck(checks []slots.CheckResult) string {
	if len(checks) == 0 {
		return "-"
	}
	result := checks[len(checks)-1].Result
	// Keep the table on one line per app.
	if i := strings.IndexByte(result, ':'); i > 0 {
		result = result[:i]
	}
	return result
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
