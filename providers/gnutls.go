package providers

import (
	"strconv"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	gnuTLSCipherPriorities = map[string]string{
		tlsdef.DHE_RSA_AES128_SHA.Name:            "DHE-RSA:+AES-128-CBC:+SHA1",
		tlsdef.DHE_RSA_AES256_SHA.Name:            "DHE-RSA:+AES-256-CBC:+SHA1",
		tlsdef.DHE_RSA_AES128_SHA256.Name:         "DHE-RSA:+AES-128-CBC:+SHA256",
		tlsdef.DHE_RSA_AES256_SHA256.Name:         "DHE-RSA:+AES-256-CBC:+SHA256",
		tlsdef.DHE_RSA_AES128_GCM_SHA256.Name:     "DHE-RSA:+AES-128-GCM:+AEAD",
		tlsdef.DHE_RSA_AES256_GCM_SHA384.Name:     "DHE-RSA:+AES-256-GCM:+AEAD",
		tlsdef.DHE_RSA_CHACHA20_POLY1305.Name:     "DHE-RSA:+CHACHA20-POLY1305:+AEAD",
		tlsdef.AES128_SHA.Name:                    "RSA:+AES-128-CBC:+SHA1",
		tlsdef.AES256_SHA.Name:                    "RSA:+AES-256-CBC:+SHA1",
		tlsdef.AES128_SHA256.Name:                 "RSA:+AES-128-CBC:+SHA256",
		tlsdef.AES256_SHA256.Name:                 "RSA:+AES-256-CBC:+SHA256",
		tlsdef.AES128_GCM_SHA256.Name:             "RSA:+AES-128-GCM:+AEAD",
		tlsdef.AES256_GCM_SHA384.Name:             "RSA:+AES-256-GCM:+AEAD",
		tlsdef.ECDHE_ECDSA_AES128_SHA.Name:        "ECDHE-ECDSA:+AES-128-CBC:+SHA1",
		tlsdef.ECDHE_ECDSA_AES256_SHA.Name:        "ECDHE-ECDSA:+AES-256-CBC:+SHA1",
		tlsdef.ECDHE_ECDSA_AES128_SHA256.Name:     "ECDHE-ECDSA:+AES-128-CBC:+SHA256",
		tlsdef.ECDHE_ECDSA_AES256_SHA384.Name:     "ECDHE-ECDSA:+AES-256-CBC:+SHA384",
		tlsdef.ECDHE_ECDSA_AES128_GCM_SHA256.Name: "ECDHE-ECDSA:+AES-128-GCM:+AEAD",
		tlsdef.ECDHE_ECDSA_AES256_GCM_SHA384.Name: "ECDHE-ECDSA:+AES-256-GCM:+AEAD",
		tlsdef.ECDHE_RSA_AES128_SHA.Name:          "ECDHE-RSA:+AES-128-CBC:+SHA1",
		tlsdef.ECDHE_RSA_AES256_SHA.Name:          "ECDHE-RSA:+AES-256-CBC:+SHA1",
		tlsdef.ECDHE_RSA_AES128_SHA256.Name:       "ECDHE-RSA:+AES-128-CBC:+SHA256",
		tlsdef.ECDHE_RSA_AES256_SHA384.Name:       "ECDHE-RSA:+AES-256-CBC:+SHA384",
		tlsdef.ECDHE_RSA_AES128_GCM_SHA256.Name:   "ECDHE-RSA:+AES-128-GCM:+AEAD",
		tlsdef.ECDHE_RSA_AES256_GCM_SHA384.Name:   "ECDHE-RSA:+AES-256-GCM:+AEAD",
		tlsdef.ECDHE_RSA_CHACHA20_POLY1305.Name:   "ECDHE-RSA:+CHACHA20-POLY1305:+AEAD",
	}

	gnuTLSProtocolPriorities = map[tlsdef.Protocol]string{
		tlsdef.TLS10: "VERS-TLS1.0",
		tlsdef.TLS11: "VERS-TLS1.1",
		tlsdef.TLS12: "VERS-TLS1.2",
		tlsdef.TLS13: "VERS-TLS1.3",
	}

	gnuTLSCurvePriorities = map[string]string{
		tlsdef.P256.Name:   "CURVE-SECP256R1",
		tlsdef.P384.Name:   "CURVE-SECP384R1",
		tlsdef.P521.Name:   "CURVE-SECP521R1",
		tlsdef.X25519.Name: "CURVE-X25519",
	}

	gnuTLSSignaturePriorities = map[string]string{
		tlsdef.RSA_SHA1.Name:   "SIGN-RSA-SHA1",
		tlsdef.RSA_SHA256.Name: "SIGN-RSA-SHA256",
		tlsdef.RSA_SHA384.Name: "SIGN-RSA-SHA384",
		tlsdef.RSA_SHA512.Name: "SIGN-RSA-SHA512",
	}
)

// gnuTLSProvider drives gnutls-cli and gnutls-serv. It supports exactly the protocols,
// ciphers and signatures that have a priority string token.
type gnuTLSProvider struct {
	permissive
}

func (gnuTLSProvider) ID() string { return GnuTLSID }

func (gnuTLSProvider) SupportsProtocol(_ environment.Snapshot, protocol tlsdef.Protocol) bool {
	_, ok := gnuTLSProtocolPriorities[protocol]
	return ok
}

func (gnuTLSProvider) SupportsCipher(_ environment.Snapshot, cipher tlsdef.Cipher, _ *tlsdef.Curve) bool {
	_, ok := gnuTLSCipherPriorities[cipher.Name]
	return ok
}

func (gnuTLSProvider) SupportsSignature(_ environment.Snapshot, signature tlsdef.Signature) bool {
	_, ok := gnuTLSSignaturePriorities[signature.Name]
	return ok
}

func (gnuTLSProvider) Traits(mode tlsdef.Mode) Traits {
	return Traits{
		ExpectStderr:    true,
		SendWithNewline: true,
		SendMarker:      clientSendMarker(mode, "Simple Client Mode:"),
	}
}

func (gnuTLSProvider) ReadinessMarker(mode tlsdef.Mode) ldvalue.OptionalString {
	return serverReadinessMarker(mode, "Echo Server listening on")
}

func (p gnuTLSProvider) synthesize(_ environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	if cfg.Mode == tlsdef.Client {
		return synthesized{args: p.client(cfg)}, nil
	}
	return synthesized{args: p.server(cfg)}, nil
}

func (gnuTLSProvider) client(cfg tlsdef.Configuration) commandBuilder {
	b := commandBuilder{"gnutls-cli", "--port", cfg.PortString(), cfg.Host}
	// Most GnuTLS tests expect verbose output.
	b.add("--verbose")
	if cfg.CertPath().IsDefined() && cfg.KeyPath().IsDefined() {
		b.add("--x509certfile", cfg.CertPath().StringValue())
		b.add("--x509keyfile", cfg.KeyPath().StringValue())
	}
	b.add("--priority", gnuTLSPriority(cfg))
	b.addIf(cfg.Insecure, "--insecure")
	b.addIf(cfg.EnableClientOCSP, "--ocsp")
	if cfg.RecordSize.IsDefined() {
		b.add("--recordsize", strconv.Itoa(cfg.RecordSize.IntValue()))
	}
	return b
}

func (gnuTLSProvider) server(cfg tlsdef.Configuration) commandBuilder {
	b := commandBuilder{"gnutls-serv", "--port=" + cfg.PortString(), "--echo"}
	b.addOptional("--x509certfile", cfg.CertPath())
	b.addOptional("--x509keyfile", cfg.KeyPath())
	b.add("--priority", gnuTLSPriority(cfg))
	if c, ok := cfg.Cipher.Single(); ok {
		b.addOptional("--dhparams", c.Parameters)
	}
	b.addOptional("--ocsp-response", cfg.OCSPResponse)
	b.addIf(cfg.UseClientAuth, "--require-client-cert")
	return b
}

// gnuTLSPriority builds a priority string that enables only what the configuration asks for,
// and everything in a category the configuration leaves unset.
func gnuTLSPriority(cfg tlsdef.Configuration) string {
	parts := []string{"NONE"}

	if cfg.Protocol != nil {
		parts = append(parts, gnuTLSProtocolPriorities[*cfg.Protocol])
	} else {
		parts = append(parts, "VERS-ALL")
	}

	var cipherParts []string
	for _, c := range cfg.Cipher.Ciphers() {
		cipherParts = append(cipherParts, gnuTLSCipherPriorities[c.Name])
	}
	if len(cipherParts) != 0 {
		parts = append(parts, cipherParts...)
	} else {
		parts = append(parts, "KX-ALL", "CIPHER-ALL", "MAC-ALL")
	}

	if curve, ok := gnuTLSCurvePriority(cfg); ok {
		parts = append(parts, curve)
	} else {
		parts = append(parts, "GROUP-ALL")
	}

	if cfg.Signature != nil {
		parts = append(parts, gnuTLSSignaturePriorities[cfg.Signature.Name])
	} else {
		parts = append(parts, "SIGN-ALL")
	}

	parts = append(parts, "COMP-NULL")

	// The test RSA certificates have no digital signature key usage. %COMPAT lets GnuTLS use
	// them as client certificates, and %DEBUG_ALLOW_KEY_USAGE_VIOLATIONS as server certificates.
	return strings.Join(parts, ":+") + ":%COMPAT:%DEBUG_ALLOW_KEY_USAGE_VIOLATIONS"
}

func gnuTLSCurvePriority(cfg tlsdef.Configuration) (string, bool) {
	if cfg.Curve == nil {
		return "", false
	}
	s, ok := gnuTLSCurvePriorities[cfg.Curve.Name]
	return s, ok
}
