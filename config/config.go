// Package config loads the YAML run file: what the environment looks like, where the
// certificates are, and which client/server provider pairs to plan.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/launchdarkly/tls-interop-tests/environment"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted when the run file and command line leave a value unset.
const (
	S2NProviderVersionVar   = "S2N_PROVIDER_VERSION"
	S2NFIPSModeVar          = "S2N_FIPS_MODE"
	OpenSSL102InstallDirVar = "OPENSSL_1_0_2_INSTALL_DIR"
)

const (
	DefaultHost         = "localhost"
	DefaultBasePort     = 8000
	DefaultReadyTimeout = 5 * time.Second
)

type EnvironmentConfig struct {
	S2NProviderVersion   string `yaml:"s2n_provider_version"`
	FIPSMode             *bool  `yaml:"fips_mode"`
	OpenSSL102InstallDir string `yaml:"openssl_1_0_2_install_dir"`
	OpenSSLCommand       string `yaml:"openssl_command"`
}

// RunConfig is the contents of a run file after defaults have been applied.
type RunConfig struct {
	Environment  EnvironmentConfig `yaml:"environment"`
	CertDir      string            `yaml:"cert_dir"`
	Host         string            `yaml:"host"`
	BasePort     int               `yaml:"base_port"`
	ReadyTimeout time.Duration     `yaml:"ready_timeout"`
	Cases        []Case            `yaml:"cases"`
}

// Default returns the configuration used when there is no run file.
func Default() RunConfig {
	return RunConfig{
		Host:         DefaultHost,
		BasePort:     DefaultBasePort,
		ReadyTimeout: DefaultReadyTimeout,
	}
}

// Load reads a run file and layers it over Default.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("error reading config from %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML run file contents and layers them over Default. Unknown keys are
// rejected so that typos don't silently change a run.
func Parse(data []byte) (RunConfig, error) {
	var overlay RunConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&overlay); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, err
	}
	cfg := merge(Default(), overlay)
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

func merge(base, overlay RunConfig) RunConfig {
	merged := base
	if overlay.Environment.S2NProviderVersion != "" {
		merged.Environment.S2NProviderVersion = overlay.Environment.S2NProviderVersion
	}
	if overlay.Environment.FIPSMode != nil {
		merged.Environment.FIPSMode = overlay.Environment.FIPSMode
	}
	if overlay.Environment.OpenSSL102InstallDir != "" {
		merged.Environment.OpenSSL102InstallDir = overlay.Environment.OpenSSL102InstallDir
	}
	if overlay.Environment.OpenSSLCommand != "" {
		merged.Environment.OpenSSLCommand = overlay.Environment.OpenSSLCommand
	}
	if overlay.CertDir != "" {
		merged.CertDir = overlay.CertDir
	}
	if overlay.Host != "" {
		merged.Host = overlay.Host
	}
	if overlay.BasePort != 0 {
		merged.BasePort = overlay.BasePort
	}
	if overlay.ReadyTimeout != 0 {
		merged.ReadyTimeout = overlay.ReadyTimeout
	}
	merged.Cases = append(append([]Case(nil), base.Cases...), overlay.Cases...)
	return merged
}

// Validate checks the parts of the configuration that don't depend on any provider.
func (c RunConfig) Validate() error {
	if c.BasePort <= 0 || c.BasePort > 65535 {
		return fmt.Errorf("base_port must be between 1 and 65535, got %d", c.BasePort)
	}
	if c.ReadyTimeout < 0 {
		return fmt.Errorf("ready_timeout must not be negative, got %s", c.ReadyTimeout)
	}
	names := make(map[string]bool)
	for i, tc := range c.Cases {
		if err := tc.validate(); err != nil {
			return fmt.Errorf("case %d: %w", i+1, err)
		}
		name := tc.DisplayName()
		if names[name] {
			return fmt.Errorf("case %d: duplicate case name %q", i+1, name)
		}
		names[name] = true
	}
	return nil
}

// ApplyEnv fills environment settings that are still unset from environment variables.
// lookup is normally os.LookupEnv.
func (c *RunConfig) ApplyEnv(lookup func(string) (string, bool)) error {
	if c.Environment.S2NProviderVersion == "" {
		if v, ok := lookup(S2NProviderVersionVar); ok {
			c.Environment.S2NProviderVersion = v
		}
	}
	if c.Environment.FIPSMode == nil {
		if v, ok := lookup(S2NFIPSModeVar); ok && v != "" {
			fips, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid %s value %q: %w", S2NFIPSModeVar, v, err)
			}
			c.Environment.FIPSMode = &fips
		}
	}
	if c.Environment.OpenSSL102InstallDir == "" {
		if v, ok := lookup(OpenSSL102InstallDirVar); ok {
			c.Environment.OpenSSL102InstallDir = v
		}
	}
	return nil
}

// EnvironmentOptions converts the environment settings into discovery options.
func (c RunConfig) EnvironmentOptions() environment.Options {
	opts := environment.Options{
		S2NProviderVersion: c.Environment.S2NProviderVersion,
		OpenSSLCommand:     c.Environment.OpenSSLCommand,
	}
	if c.Environment.FIPSMode != nil {
		opts.FIPSMode = *c.Environment.FIPSMode
	}
	if c.Environment.OpenSSL102InstallDir != "" {
		opts.OpenSSL102InstallDir = ldvalue.NewOptionalString(c.Environment.OpenSSL102InstallDir)
	}
	return opts
}
