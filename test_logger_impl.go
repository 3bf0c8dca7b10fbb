package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/framework"

	"github.com/fatih/color"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failColor.Fprintf(c.Out, "  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s\n", id)
	} else {
		skipColor.Fprintf(c.Out, "  SKIPPED: %s (%s)\n", id, reason)
	}
}

// PrintResults writes the summary at the end of a run.
func PrintResults(out io.Writer, results framework.Results) {
	skipped := len(results.Skipped())
	if results.OK() {
		passColor.Fprintf(out, "All tests passed (%d run, %d skipped)\n", len(results.Tests)-skipped, skipped)
		return
	}
	failColor.Fprintf(out, "FAILED TESTS (%d of %d):\n", len(results.Failures), len(results.Tests)-skipped)
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  %s\n", f.TestID)
	}
}
