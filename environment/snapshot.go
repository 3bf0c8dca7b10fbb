// Package environment describes the parts of the test host that change how providers behave:
// which libcrypto s2n was built against, whether FIPS mode is on, and which OpenSSL command-line
// tools are installed.
//
// A Snapshot is discovered once per test run and never changes afterward. Capability checks
// receive it as a parameter instead of reading global state, so they can be tested with any
// combination of versions.
package environment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrEnvironmentDiscovery is the error category for a missing or unusable external tool.
var ErrEnvironmentDiscovery = errors.New("environment discovery failed")

// DiscoveryError describes a tool that is required for this run but is missing or reported a
// version we can't use. It is fatal to the whole test run.
type DiscoveryError struct {
	Tool string
	Err  error
}

func (e DiscoveryError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrEnvironmentDiscovery, e.Tool, e.Err)
}

func (e DiscoveryError) Unwrap() error { return e.Err }

func (e DiscoveryError) Is(target error) bool { return target == ErrEnvironmentDiscovery }

// ToolVersion is the parsed output of a tool's version command. The zero value means the tool
// was not found.
type ToolVersion struct {
	// Provider is the product name reported by the tool, e.g. "OpenSSL" or "LibreSSL".
	Provider string
	// Raw is the version command's trimmed output.
	Raw     string
	Version *version.Version
}

// IsDefined reports whether the tool was found.
func (t ToolVersion) IsDefined() bool { return t.Version != nil }

// HasPrefix reports whether the version's leading segments equal the given numbers, so that
// HasPrefix(3, 0) matches 3.0.8 but not 3.1.0.
func (t ToolVersion) HasPrefix(segments ...int) bool {
	if t.Version == nil {
		return false
	}
	actual := t.Version.Segments()
	for i, s := range segments {
		if i >= len(actual) || actual[i] != s {
			return false
		}
	}
	return true
}

// AtLeast reports whether the version is the same as or newer than min, e.g. "1.1". Letter
// suffixes are ignored, since go-version would sort 1.1.0l before 1.1.0.
func (t ToolVersion) AtLeast(min string) bool {
	if t.Version == nil {
		return false
	}
	return t.Version.Core().GreaterThanOrEqual(version.Must(version.NewVersion(min)))
}

func (t ToolVersion) String() string {
	if t.Version == nil {
		return "<not found>"
	}
	return t.Provider + " " + t.Version.Original()
}

// ParseToolVersion parses output like "OpenSSL 3.0.8 7 Feb 2023" into its product name and
// version. OpenSSL letter suffixes like "1.1.1w" are accepted.
func ParseToolVersion(output string) (ToolVersion, error) {
	raw := strings.TrimSpace(output)
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return ToolVersion{}, fmt.Errorf("unrecognized version output %q", raw)
	}
	v, err := version.NewVersion(fields[1])
	if err != nil {
		return ToolVersion{}, fmt.Errorf("unrecognized version %q: %w", fields[1], err)
	}
	return ToolVersion{Provider: fields[0], Raw: raw, Version: v}, nil
}

// Snapshot is the immutable description of the test environment.
type Snapshot struct {
	// S2NProviderVersion names the libcrypto s2n was built with, e.g. "openssl-3.0-fips" or
	// "awslc". Capability rules match substrings of it.
	S2NProviderVersion string

	FIPSMode bool

	// OpenSSL is the version of the openssl command-line tool on the PATH.
	OpenSSL ToolVersion

	// OpenSSL102InstallDir is where OpenSSL 1.0.2 is installed, for SSLv3 tests.
	OpenSSL102InstallDir ldvalue.OptionalString
}

// S2NLibcryptoContains reports whether the s2n libcrypto name contains any of the given
// substrings.
func (s Snapshot) S2NLibcryptoContains(substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s.S2NProviderVersion, sub) {
			return true
		}
	}
	return false
}

func (s Snapshot) String() string {
	dir := "<unset>"
	if s.OpenSSL102InstallDir.IsDefined() {
		dir = s.OpenSSL102InstallDir.StringValue()
	}
	return fmt.Sprintf("s2n libcrypto=%q fips=%t openssl=%s openssl-1.0.2-dir=%s",
		s.S2NProviderVersion, s.FIPSMode, s.OpenSSL, dir)
}
