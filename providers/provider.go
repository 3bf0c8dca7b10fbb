// Package providers knows how to drive each TLS implementation under test. For every provider
// it answers two questions about an abstract tlsdef.Configuration: can the provider attempt it
// at all in this environment, and if so, what exact command line runs it.
//
// The set of providers is closed. Each one implements Provider, and callers look them up by ID
// through a Registry.
package providers

import (
	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Provider IDs.
const (
	S2NID       = "s2n"
	OpenSSLID   = "openssl"
	SSLv3ID     = "openssl-1.0.2"
	GnuTLSID    = "gnutls"
	BoringSSLID = "boringssl"
	JavaSSLID   = "javassl"
	TcpdumpID   = "tcpdump"
)

// Provider is one TLS implementation. All methods are pure functions of their arguments.
//
// The capability methods default to true; each provider lists only its exceptions.
type Provider interface {
	ID() string

	SupportsMode(mode tlsdef.Mode) bool
	SupportsProtocol(env environment.Snapshot, protocol tlsdef.Protocol) bool
	// SupportsCipher is asked about each cipher together with the configured curve, if any.
	SupportsCipher(env environment.Snapshot, cipher tlsdef.Cipher, curve *tlsdef.Curve) bool
	SupportsCurve(env environment.Snapshot, curve tlsdef.Curve) bool
	SupportsSignature(env environment.Snapshot, signature tlsdef.Signature) bool
	SupportsCertificate(env environment.Snapshot, cert tlsdef.Certificate) bool

	// Traits describes how the process runner should talk to this provider.
	Traits(mode tlsdef.Mode) Traits

	// ReadinessMarker is the output substring that means the process is ready. Undefined means
	// the process is ready as soon as its command exists.
	ReadinessMarker(mode tlsdef.Mode) ldvalue.OptionalString

	// checkEnvironment reports an EnvironmentDiscoveryError if a required tool is missing.
	checkEnvironment(env environment.Snapshot) error

	// synthesize builds the command, without extra flags, for a configuration that has
	// already passed Check.
	synthesize(env environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error)
}

// Traits are per-provider details the process runner needs beyond the command itself.
type Traits struct {
	// ExpectStderr is true if the provider writes to stderr even when it succeeds.
	ExpectStderr bool

	// SendWithNewline is true if data written to the provider's stdin must end in a newline.
	SendWithNewline bool

	// SendMarker is the last thing a client prints before it can accept input.
	SendMarker ldvalue.OptionalString
}

type synthesized struct {
	args commandBuilder
	// name is the command's display name when it isn't the executable.
	name string
	env  map[string]string
}

// permissive supplies the default capability answers. Providers embed it and override
// the methods they have exclusions for.
type permissive struct{}

func (permissive) SupportsMode(tlsdef.Mode) bool { return true }

func (permissive) SupportsProtocol(environment.Snapshot, tlsdef.Protocol) bool { return true }

func (permissive) SupportsCipher(environment.Snapshot, tlsdef.Cipher, *tlsdef.Curve) bool {
	return true
}

func (permissive) SupportsCurve(environment.Snapshot, tlsdef.Curve) bool { return true }

func (permissive) SupportsSignature(environment.Snapshot, tlsdef.Signature) bool { return true }

func (permissive) SupportsCertificate(environment.Snapshot, tlsdef.Certificate) bool { return true }

func (permissive) checkEnvironment(environment.Snapshot) error { return nil }

func clientSendMarker(mode tlsdef.Mode, marker string) ldvalue.OptionalString {
	if mode == tlsdef.Client {
		return ldvalue.NewOptionalString(marker)
	}
	return ldvalue.OptionalString{}
}

func serverReadinessMarker(mode tlsdef.Mode, marker string) ldvalue.OptionalString {
	if mode == tlsdef.Server {
		return ldvalue.NewOptionalString(marker)
	}
	return ldvalue.OptionalString{}
}
