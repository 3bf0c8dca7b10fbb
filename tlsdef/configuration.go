package tlsdef

import (
	"errors"
	"strconv"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Configuration describes one desired TLS exchange for one side of a connection. It is
// built by whatever enumerates the test cases and is treated as immutable afterward.
//
// Optional values are either ldvalue optionals or nil pointers, so that "not specified"
// is never confused with "specified as empty".
type Configuration struct {
	Mode Mode
	Host string
	Port int

	Protocol    *Protocol
	Cipher      CipherSpec
	Curve       *Curve
	Signature   *Signature
	Certificate *Certificate

	TrustStore   ldvalue.OptionalString
	Key          ldvalue.OptionalString
	OCSPResponse ldvalue.OptionalString
	ServerName   ldvalue.OptionalString

	RecordSize           ldvalue.OptionalInt
	ReconnectsBeforeExit ldvalue.OptionalInt

	UseClientAuth    bool
	UseSessionTicket bool
	Insecure         bool
	Reconnect        bool
	Echo             bool
	Verbose          bool
	EnableClientOCSP bool
	VerifyHostname   bool

	// UseMainlineBuild selects the mainline ("head") build of a provider instead of
	// the release build, for providers that ship both.
	UseMainlineBuild bool

	// ExtraFlags are appended verbatim after every other argument.
	ExtraFlags []string

	// EnvOverrides are environment variables to set for the provider process.
	EnvOverrides map[string]string
}

// PortString returns the port as a command-line token.
func (c Configuration) PortString() string {
	return strconv.Itoa(c.Port)
}

// CertPath returns the certificate file path, if a certificate was configured.
func (c Configuration) CertPath() ldvalue.OptionalString {
	if c.Certificate == nil || c.Certificate.CertPath == "" {
		return ldvalue.OptionalString{}
	}
	return ldvalue.NewOptionalString(c.Certificate.CertPath)
}

// KeyPath returns the private key path: the explicit Key if set, otherwise the key that
// belongs to the configured certificate.
func (c Configuration) KeyPath() ldvalue.OptionalString {
	if c.Key.IsDefined() {
		return c.Key
	}
	if c.Certificate == nil || c.Certificate.KeyPath == "" {
		return ldvalue.OptionalString{}
	}
	return ldvalue.NewOptionalString(c.Certificate.KeyPath)
}

// IsProtocol reports whether a protocol was configured and equals p.
func (c Configuration) IsProtocol(p Protocol) bool {
	return c.Protocol != nil && *c.Protocol == p
}

// Validate checks that the configuration is internally consistent. It does not consult
// any provider.
func (c Configuration) Validate() error {
	if c.Mode != Client && c.Mode != Server {
		return errors.New("mode must be client or server")
	}
	if c.Mode == Client && c.Host == "" {
		return errors.New("client configuration requires a host")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	return c.Cipher.Validate()
}
