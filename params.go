package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/launchdarkly/tls-interop-tests/config"
	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/framework"

	"github.com/spf13/pflag"
)

const discoveryTimeout = time.Second * 10

type commandParams struct {
	configFile         string
	filters            framework.RegexFilters
	debug              bool
	debugAll           bool
	s2nProviderVersion string
	fips               bool
	openSSL102Dir      string
	openSSLCommand     string

	// flags is consulted to tell explicitly set values from defaults.
	flags *pflag.FlagSet
}

func (c *commandParams) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "YAML run file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")
	fs.StringVar(&c.s2nProviderVersion, "s2n-provider-version", "",
		"libcrypto s2n was built with, e.g. openssl-3.0 or awslc (default $"+config.S2NProviderVersionVar+")")
	fs.BoolVar(&c.fips, "fips", false, "s2n is running in FIPS mode (default $"+config.S2NFIPSModeVar+")")
	fs.StringVar(&c.openSSL102Dir, "openssl-1.0.2-dir", "",
		"OpenSSL 1.0.2 install directory, for SSLv3 (default $"+config.OpenSSL102InstallDirVar+")")
	fs.StringVar(&c.openSSLCommand, "openssl-command", "", "openssl executable to query for its version")
	c.flags = fs
}

// runConfig layers the run file, then explicitly set flags, then environment variables for
// anything still unset.
func (c *commandParams) runConfig() (config.RunConfig, error) {
	cfg := config.Default()
	if c.configFile != "" {
		var err error
		if cfg, err = config.Load(c.configFile); err != nil {
			return config.RunConfig{}, err
		}
	}
	if c.s2nProviderVersion != "" {
		cfg.Environment.S2NProviderVersion = c.s2nProviderVersion
	}
	if c.flags != nil && c.flags.Changed("fips") {
		fips := c.fips
		cfg.Environment.FIPSMode = &fips
	}
	if c.openSSL102Dir != "" {
		cfg.Environment.OpenSSL102InstallDir = c.openSSL102Dir
	}
	if c.openSSLCommand != "" {
		cfg.Environment.OpenSSLCommand = c.openSSLCommand
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return config.RunConfig{}, err
	}
	return cfg, nil
}

func (c *commandParams) discover(ctx context.Context, cfg config.RunConfig) (environment.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, discoveryTimeout)
	defer cancel()
	env, err := environment.Discover(ctx, cfg.EnvironmentOptions())
	if err != nil {
		return environment.Snapshot{}, fmt.Errorf("could not discover test environment: %w", err)
	}
	return env, nil
}
