package providers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	s2nPolicyAll      = "test_all"
	s2nPolicyAllTLS12 = "test_all_tls12"
)

var (
	// RSA-PSS is unavailable with openssl-1.0, and disabled with libressl and boringssl
	// because of configuration issues.
	s2nPSSUnsupported = denylist("libressl", "boringssl", "openssl-1.0")

	s2nCipherRules = []cipherRule{
		{fragment: "CHACHA20", libcrypto: denylist("openssl-1.0.2", "libressl")},
		{fragment: "RC4", libcrypto: denylist("openssl-3")},
	}

	s2nRSA1024Unsupported = denylist("openssl-3.0-fips")
)

// s2nProvider drives s2nc and s2nd.
type s2nProvider struct {
	permissive
}

func (s2nProvider) ID() string { return S2NID }

func (s2nProvider) SupportsProtocol(env environment.Snapshot, protocol tlsdef.Protocol) bool {
	if protocol == tlsdef.TLS13 && s2nPSSUnsupported.matches(env) {
		return false
	}
	// SSLv3 can only be negotiated in FIPS mode with AWS-LC.
	if protocol == tlsdef.SSLv3 && env.FIPSMode && !env.S2NLibcryptoContains("awslc") {
		return false
	}
	return true
}

func (s2nProvider) SupportsCipher(env environment.Snapshot, cipher tlsdef.Cipher, _ *tlsdef.Curve) bool {
	for _, r := range s2nCipherRules {
		if r.excludes(env, cipher) {
			return false
		}
	}
	return true
}

func (s2nProvider) SupportsSignature(env environment.Snapshot, signature tlsdef.Signature) bool {
	return !(signature == tlsdef.RSA_PSS_RSAE_SHA256 && s2nPSSUnsupported.matches(env))
}

func (s2nProvider) SupportsCertificate(env environment.Snapshot, cert tlsdef.Certificate) bool {
	if cert.Algorithm == "RSAPSS" && s2nPSSUnsupported.matches(env) {
		return false
	}
	if strings.Contains(cert.Name, "RSA_1024") && s2nRSA1024Unsupported.matches(env) {
		return false
	}
	return true
}

func (s2nProvider) Traits(mode tlsdef.Mode) Traits {
	return Traits{SendWithNewline: true, SendMarker: clientSendMarker(mode, "s2n is ready")}
}

func (s2nProvider) ReadinessMarker(mode tlsdef.Mode) ldvalue.OptionalString {
	return serverReadinessMarker(mode, "Listening on")
}

func (p s2nProvider) synthesize(env environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	policy, err := p.securityPolicy(cfg)
	if err != nil {
		return synthesized{}, err
	}
	if cfg.Mode == tlsdef.Client {
		return synthesized{args: p.client(env, cfg, policy)}, nil
	}
	if cfg.Host == "" {
		return synthesized{}, configurationError(p, "s2nd requires a host", nil)
	}
	return synthesized{args: p.server(env, cfg, policy)}, nil
}

// securityPolicy picks the -c argument: a cipher that is itself an s2n policy wins, otherwise
// the test_all bucket for TLS 1.3 or the test_all_tls12 bucket for everything else.
func (p s2nProvider) securityPolicy(cfg tlsdef.Configuration) (string, error) {
	if cfg.Cipher.IsList() {
		return "", configurationError(p, "s2n takes a security policy, not a cipher list",
			errors.New(cfg.Cipher.String()))
	}
	if c, ok := cfg.Cipher.Single(); ok && c.S2NPolicy {
		return c.Name, nil
	}
	if cfg.IsProtocol(tlsdef.TLS13) {
		return s2nPolicyAll, nil
	}
	return s2nPolicyAllTLS12, nil
}

func (s2nProvider) client(env environment.Snapshot, cfg tlsdef.Configuration, policy string) commandBuilder {
	var b commandBuilder
	if cfg.UseMainlineBuild {
		b.add("s2nc_head")
	} else {
		b.add("s2nc")
	}
	b.add("--non-blocking")
	// A client that reconnects can't wait for echoed data.
	b.addIf(cfg.Echo && !cfg.Reconnect, "-e")
	b.addIf(!cfg.UseSessionTicket, "-T")
	addTrust(&b, cfg, "--insecure", "-f")
	b.addIf(cfg.Reconnect, "-r")
	b.add("-c", policy)
	if cfg.UseClientAuth {
		b.addOptional("--key", cfg.KeyPath())
		b.addOptional("--cert", cfg.CertPath())
	}
	b.addIf(env.FIPSMode, "--enter-fips-mode")
	b.addIf(cfg.EnableClientOCSP, "--status")
	b.add(cfg.Host, cfg.PortString())
	return b
}

func (s2nProvider) server(env environment.Snapshot, cfg tlsdef.Configuration, policy string) commandBuilder {
	var b commandBuilder
	if cfg.UseMainlineBuild {
		b.add("s2nd_head")
	} else {
		b.add("s2nd")
	}
	b.add("-X", "--self-service-blinding", "--non-blocking")
	b.addOptional("--key", cfg.KeyPath())
	b.addOptional("--cert", cfg.CertPath())
	addTrust(&b, cfg, "--insecure", "-t")
	b.add("-c", policy)
	b.addIf(!cfg.Echo, "-n")
	b.addIf(cfg.UseClientAuth, "-m")
	b.addIf(!cfg.UseSessionTicket, "-T")
	if cfg.ReconnectsBeforeExit.IsDefined() {
		b.add("--max-conns=" + strconv.Itoa(cfg.ReconnectsBeforeExit.IntValue()))
	}
	b.addIf(env.FIPSMode, "--enter-fips-mode")
	b.addOptional("--ocsp", cfg.OCSPResponse)
	b.add(cfg.Host, cfg.PortString())
	return b
}

// addTrust adds the trust material flags. Insecure suppresses everything else, and a trust
// store is preferred over the certificate.
func addTrust(b *commandBuilder, cfg tlsdef.Configuration, insecureFlag, trustFlag string) {
	switch {
	case cfg.Insecure:
		b.add(insecureFlag)
	case cfg.TrustStore.IsDefined():
		b.add(trustFlag, cfg.TrustStore.StringValue())
	case cfg.CertPath().IsDefined():
		b.add(trustFlag, cfg.CertPath().StringValue())
	}
}
