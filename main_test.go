package main

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/launchdarkly/tls-interop-tests/config"
	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/framework"
	"github.com/launchdarkly/tls-interop-tests/logging"
	"github.com/launchdarkly/tls-interop-tests/providers"

	"github.com/fatih/color"
	helpers "github.com/launchdarkly/go-test-helpers/v2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func parseParams(t *testing.T, args ...string) *commandParams {
	params := &commandParams{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	params.addFlags(fs)
	require.NoError(t, fs.Parse(args))
	return params
}

func TestRunConfigFlagsOverrideFile(t *testing.T) {
	t.Setenv(config.S2NProviderVersionVar, "from-env")
	t.Setenv(config.S2NFIPSModeVar, "true")
	t.Setenv(config.OpenSSL102InstallDirVar, "/env/openssl")

	helpers.WithTempFile(func(path string) {
		require.NoError(t, os.WriteFile(path, []byte("environment:\n  s2n_provider_version: from-file\n"), 0600))

		params := parseParams(t, "--config", path, "--fips=false")
		cfg, err := params.runConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.Environment.S2NProviderVersion)
		require.NotNil(t, cfg.Environment.FIPSMode)
		assert.False(t, *cfg.Environment.FIPSMode)
		assert.Equal(t, "/env/openssl", cfg.Environment.OpenSSL102InstallDir)

		params = parseParams(t, "--config", path, "--s2n-provider-version", "awslc", "--openssl-1.0.2-dir", "/flag/openssl")
		cfg, err = params.runConfig()
		require.NoError(t, err)
		assert.Equal(t, "awslc", cfg.Environment.S2NProviderVersion)
		assert.True(t, *cfg.Environment.FIPSMode)
		assert.Equal(t, "/flag/openssl", cfg.Environment.OpenSSL102InstallDir)
	})
}

func TestRunConfigBadFile(t *testing.T) {
	params := parseParams(t, "--config", "/nonexistent/run.yaml")
	_, err := params.runConfig()
	assert.Error(t, err)
}

func TestFilterFlags(t *testing.T) {
	params := parseParams(t, "--run", "s2n", "--skip", "gnutls")
	assert.True(t, params.filters.AsFilter(framework.TestID{Path: []string{"cases", "s2n-openssl"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"cases", "s2n-gnutls"}}))
	assert.False(t, params.filters.AsFilter(framework.TestID{Path: []string{"cases", "openssl-openssl"}}))
}

func TestConsoleTestLogger(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	id := framework.TestID{Path: []string{"cases", "a"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("line one\nline two"))
	logger.TestFinished(id, true, framework.CapturedOutput{{Message: "command: s2nc"}})
	logger.TestSkipped(id, "unsupported")

	out := buf.String()
	assert.Contains(t, out, "[cases/a]\n")
	assert.Contains(t, out, "  line one\n  line two\n")
	assert.Contains(t, out, "  FAILED: cases/a\n")
	assert.Contains(t, out, "    DEBUG [")
	assert.Contains(t, out, "command: s2nc")
	assert.Contains(t, out, "  SKIPPED: cases/a (unsupported)\n")
}

func TestConsoleTestLoggerHidesDebugOutputOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	logger.TestFinished(framework.TestID{Path: []string{"x"}}, false, framework.CapturedOutput{{Message: "hidden"}})
	assert.Empty(t, buf.String())
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"providers", "env", "command", "plan"})
	assert.NotNil(t, root.PersistentFlags().Lookup("openssl-1.0.2-dir"))
}

func TestPrintResults(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	ok := framework.Results{Tests: []framework.TestResult{
		{TestID: framework.TestID{Path: []string{"a"}}},
		{TestID: framework.TestID{Path: []string{"b"}}, Skipped: true},
	}}
	PrintResults(&buf, ok)
	assert.Equal(t, "All tests passed (1 run, 1 skipped)\n", buf.String())

	buf.Reset()
	failed := framework.TestResult{TestID: framework.TestID{Path: []string{"c"}}}
	PrintResults(&buf, framework.Results{Tests: []framework.TestResult{failed}, Failures: []framework.TestResult{failed}})
	assert.Equal(t, "FAILED TESTS (1 of 1):\n  c\n", buf.String())
}

func TestWarnRequiredUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewZapLoggerFrom(zap.New(core))
	unavailable := map[string]error{
		"openssl":       errors.New("openssl not found"),
		"openssl-1.0.2": errors.New("no install dir"),
	}

	warnRequiredUnavailable(logger, []string{"openssl", "s2n"}, unavailable)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].Message, "openssl not found")
	assert.Equal(t, "openssl", entries[0].ContextMap()["provider"])
}

func TestUnavailableProviders(t *testing.T) {
	unavailable := unavailableProviders(providers.NewRegistry(environment.Snapshot{}))
	assert.Len(t, unavailable, 2)
	assert.Contains(t, unavailable, "openssl")
	assert.Contains(t, unavailable, "openssl-1.0.2")
}
