package providers

import (
	"errors"
	"fmt"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"
)

var (
	// ErrConfiguration means the configuration is malformed, or the caller asked for a
	// command the provider was never able to run. It is a failure of the test case.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupportedCombination means a capability check failed. The test case should be skipped.
	ErrUnsupportedCombination = errors.New("unsupported combination")

	// ErrUnsupportedMode means the provider has no client or no server implementation. The test
	// case should be skipped.
	ErrUnsupportedMode = errors.New("unsupported mode")

	// ErrEnvironmentDiscovery is fatal to the whole run.
	ErrEnvironmentDiscovery = environment.ErrEnvironmentDiscovery
)

// EnvironmentDiscoveryError is returned by Registry.Resolve when a provider's tool is missing.
type EnvironmentDiscoveryError = environment.DiscoveryError

type ConfigurationError struct {
	Provider string
	Reason   string
	Err      error
}

func (e ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s for provider %q: %s", ErrConfiguration, e.Provider, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e ConfigurationError) Unwrap() error { return e.Err }

func (e ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// UnsupportedCombinationError names the first element of a configuration that the provider
// can't attempt.
type UnsupportedCombinationError struct {
	Provider string
	Element  string
	Value    string
}

func (e UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("%s: provider %q does not support %s %s", ErrUnsupportedCombination, e.Provider, e.Element, e.Value)
}

func (e UnsupportedCombinationError) Is(target error) bool { return target == ErrUnsupportedCombination }

type UnsupportedModeError struct {
	Provider string
	Mode     tlsdef.Mode
}

func (e UnsupportedModeError) Error() string {
	return fmt.Sprintf("%s: provider %q has no %s implementation", ErrUnsupportedMode, e.Provider, e.Mode)
}

func (e UnsupportedModeError) Is(target error) bool { return target == ErrUnsupportedMode }

// IsSkip reports whether err means "not applicable" rather than "failed". A configuration
// error is never a skip, even when it wraps a capability failure.
func IsSkip(err error) bool {
	if err == nil || errors.Is(err, ErrConfiguration) {
		return false
	}
	return errors.Is(err, ErrUnsupportedMode) || errors.Is(err, ErrUnsupportedCombination)
}

func configurationError(p Provider, reason string, err error) error {
	return ConfigurationError{Provider: p.ID(), Reason: reason, Err: err}
}
