package providers

import (
	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var boringSSLCurves = mapset.NewSet(
	tlsdef.P256.Name,
	tlsdef.P384.Name,
	tlsdef.P521.Name,
	tlsdef.SecP256r1Kyber768Draft00.Name,
	tlsdef.X25519Kyber768Draft00.Name,
)

// boringSSLProvider drives "bssl s_client" and "bssl s_server".
type boringSSLProvider struct {
	permissive
}

func (boringSSLProvider) ID() string { return BoringSSLID }

func (p boringSSLProvider) SupportsCipher(env environment.Snapshot, _ tlsdef.Cipher, curve *tlsdef.Curve) bool {
	return curve == nil || p.SupportsCurve(env, *curve)
}

func (boringSSLProvider) SupportsCurve(_ environment.Snapshot, curve tlsdef.Curve) bool {
	return curve != tlsdef.X25519
}

func (boringSSLProvider) Traits(mode tlsdef.Mode) Traits {
	return Traits{SendMarker: clientSendMarker(mode, "Cert issuer:")}
}

// ReadinessMarker is always undefined: bssl s_server prints nothing we can wait for.
func (boringSSLProvider) ReadinessMarker(tlsdef.Mode) ldvalue.OptionalString {
	return ldvalue.OptionalString{}
}

func (boringSSLProvider) synthesize(_ environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	var b commandBuilder
	if cfg.Mode == tlsdef.Client {
		b = commandBuilder{"bssl", "s_client", "-connect", cfg.Host + ":" + cfg.PortString()}
	} else {
		b = commandBuilder{"bssl", "s_server", "-accept", cfg.PortString()}
	}
	b.addOptional("-cert", cfg.CertPath())
	b.addOptional("-key", cfg.KeyPath())
	if cfg.Mode == tlsdef.Client {
		if c, ok := cfg.Cipher.Single(); ok && c == tlsdef.TLS_CHACHA20_POLY1305_SHA256 {
			b.add("-cipher", "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256")
		}
	}
	if cfg.Curve != nil && boringSSLCurves.ContainsOne(cfg.Curve.Name) {
		b.add("-curves", cfg.Curve.Name)
	}
	return synthesized{args: b}, nil
}
