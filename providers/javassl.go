package providers

import (
	"strings"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// TLS 1.0 and 1.1 are disabled in current JDKs.
var javaSSLUnsupportedProtocols = protocolSet(tlsdef.SSLv3, tlsdef.TLS10, tlsdef.TLS11)

// javaSSLProvider drives the SSLSocketClient test program. There is no server.
type javaSSLProvider struct {
	permissive
}

func (javaSSLProvider) ID() string { return JavaSSLID }

func (javaSSLProvider) SupportsMode(mode tlsdef.Mode) bool { return mode == tlsdef.Client }

func (javaSSLProvider) SupportsProtocol(_ environment.Snapshot, protocol tlsdef.Protocol) bool {
	return !javaSSLUnsupportedProtocols.ContainsOne(protocol)
}

func (javaSSLProvider) SupportsCipher(_ environment.Snapshot, cipher tlsdef.Cipher, _ *tlsdef.Curve) bool {
	return !strings.Contains(cipher.Name, "CHACHA20")
}

func (javaSSLProvider) Traits(mode tlsdef.Mode) Traits {
	return Traits{SendMarker: clientSendMarker(mode, "Starting handshake")}
}

func (javaSSLProvider) ReadinessMarker(tlsdef.Mode) ldvalue.OptionalString {
	return ldvalue.OptionalString{}
}

// synthesize produces positional arguments: port, trust material, IANA cipher name, protocol.
func (p javaSSLProvider) synthesize(_ environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	if cfg.Cipher.IsList() {
		return synthesized{}, configurationError(p, "SSLSocketClient accepts a single cipher", nil)
	}
	b := commandBuilder{"java", "-classpath", "bin", "SSLSocketClient", cfg.PortString()}
	if cfg.TrustStore.IsDefined() {
		b.add(cfg.TrustStore.StringValue())
	} else if cfg.CertPath().IsDefined() {
		b.add(cfg.CertPath().StringValue())
	}
	if c, ok := cfg.Cipher.Single(); ok && c.IANAName.IsDefined() {
		b.add(c.IANAName.StringValue())
	}
	if cfg.Protocol != nil {
		b.add(cfg.Protocol.Name)
	}
	return synthesized{args: b}, nil
}
