package providers

import (
	"errors"
	"path/filepath"
	"strconv"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const openSSLMinimumVersion = "1.1"

var (
	openSSL11Unsupported = protocolSet(tlsdef.SSLv3)
	openSSL30Unsupported = protocolSet(tlsdef.SSLv3, tlsdef.TLS10, tlsdef.TLS11)

	// OpenSSL 3's default security level refuses 1024-bit RSA keys.
	openSSL3UnsupportedCerts = certificateNameSet(
		tlsdef.RSA_1024_SHA256, tlsdef.RSA_1024_SHA384, tlsdef.RSA_1024_SHA512)

	openSSLProtocolFlags = map[tlsdef.Protocol]string{
		tlsdef.TLS13: "-tls1_3",
		tlsdef.TLS12: "-tls1_2",
		tlsdef.TLS11: "-tls1_1",
		tlsdef.TLS10: "-tls1",
		tlsdef.SSLv3: "-ssl3",
	}
)

// openSSLProvider drives "openssl s_client" and "openssl s_server". With legacy set it runs the
// OpenSSL 1.0.2 build instead of the installed one, which is only used for SSLv3.
type openSSLProvider struct {
	permissive
	legacy bool
}

func (p openSSLProvider) ID() string {
	if p.legacy {
		return SSLv3ID
	}
	return OpenSSLID
}

func (p openSSLProvider) checkEnvironment(env environment.Snapshot) error {
	if p.legacy {
		if !env.OpenSSL102InstallDir.IsDefined() {
			return EnvironmentDiscoveryError{Tool: SSLv3ID, Err: errors.New("OpenSSL 1.0.2 install directory is not set")}
		}
		return nil
	}
	if !env.OpenSSL.IsDefined() {
		return EnvironmentDiscoveryError{Tool: "openssl", Err: errors.New("openssl is not installed")}
	}
	if !env.OpenSSL.AtLeast(openSSLMinimumVersion) {
		return EnvironmentDiscoveryError{
			Tool: "openssl",
			Err:  errors.New("found " + env.OpenSSL.String() + ", expected at least " + openSSLMinimumVersion),
		}
	}
	return nil
}

func (p openSSLProvider) SupportsProtocol(env environment.Snapshot, protocol tlsdef.Protocol) bool {
	if p.legacy {
		return protocol == tlsdef.SSLv3
	}
	var unsupported mapset.Set[tlsdef.Protocol]
	switch {
	case env.OpenSSL.HasPrefix(1, 1):
		unsupported = openSSL11Unsupported
	case env.OpenSSL.HasPrefix(3, 0):
		unsupported = openSSL30Unsupported
	default:
		return true
	}
	return !unsupported.ContainsOne(protocol)
}

func (openSSLProvider) SupportsCertificate(env environment.Snapshot, cert tlsdef.Certificate) bool {
	if env.OpenSSL.AtLeast("3.0") {
		return !openSSL3UnsupportedCerts.ContainsOne(cert.Name)
	}
	return true
}

func (openSSLProvider) Traits(mode tlsdef.Mode) Traits {
	return Traits{ExpectStderr: true, SendMarker: clientSendMarker(mode, "Verify return code")}
}

func (openSSLProvider) ReadinessMarker(mode tlsdef.Mode) ldvalue.OptionalString {
	return serverReadinessMarker(mode, "ACCEPT")
}

func (p openSSLProvider) synthesize(env environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	var s synthesized
	if cfg.Mode == tlsdef.Client {
		s = synthesized{args: p.client(cfg), name: "s_client"}
	} else {
		s = synthesized{args: p.server(cfg), name: "s_server"}
	}
	if p.legacy {
		dir := env.OpenSSL102InstallDir.StringValue()
		s.env = map[string]string{
			"PATH":            filepath.Join(dir, "bin"),
			"LD_LIBRARY_PATH": filepath.Join(dir, "lib"),
		}
	}
	return s, nil
}

func (openSSLProvider) client(cfg tlsdef.Configuration) commandBuilder {
	b := commandBuilder{"openssl", "s_client", "-connect", cfg.Host + ":" + cfg.PortString()}
	b.addIf(cfg.Verbose, "-debug")
	b.add("-tlsextdebug", "-state")
	b.addOptional("-key", cfg.KeyPath())
	addOpenSSLProtocol(&b, cfg)
	addOpenSSLCiphers(&b, cfg)
	addOpenSSLCurve(&b, cfg)
	if cfg.UseClientAuth {
		b.addOptional("-key", cfg.KeyPath())
		b.addOptional("-cert", cfg.CertPath())
	}
	b.addIf(cfg.Reconnect, "-reconnect")
	if cfg.ServerName.IsDefined() {
		b.add("-servername", cfg.ServerName.StringValue())
		b.addIf(cfg.VerifyHostname, "-verify_hostname", cfg.ServerName.StringValue())
	}
	b.addIf(cfg.EnableClientOCSP, "-status")
	addOpenSSLSignature(&b, cfg)
	if cfg.RecordSize.IsDefined() {
		b.add("-max_send_frag", strconv.Itoa(cfg.RecordSize.IntValue()))
	}
	return b
}

func (openSSLProvider) server(cfg tlsdef.Configuration) commandBuilder {
	b := commandBuilder{"openssl", "s_server", "-accept", cfg.PortString()}
	// Exit after the first connection unless told otherwise.
	naccept := 1
	if cfg.ReconnectsBeforeExit.IsDefined() {
		naccept = cfg.ReconnectsBeforeExit.IntValue()
	}
	b.add("-naccept", strconv.Itoa(naccept))
	b.addIf(cfg.Verbose, "-debug")
	b.add("-tlsextdebug", "-state")
	b.addOptional("-cert", cfg.CertPath())
	b.addOptional("-key", cfg.KeyPath())
	addOpenSSLProtocol(&b, cfg)
	addOpenSSLCiphers(&b, cfg)
	if c, ok := cfg.Cipher.Single(); ok {
		b.addOptional("-dhparam", c.Parameters)
	}
	addOpenSSLCurve(&b, cfg)
	// "-Verify" rather than "-verify" so that a client certificate is required.
	b.addIf(cfg.UseClientAuth, "-Verify", "1")
	b.addOptional("-status_file", cfg.OCSPResponse)
	addOpenSSLSignature(&b, cfg)
	return b
}

func addOpenSSLProtocol(b *commandBuilder, cfg tlsdef.Configuration) {
	if cfg.Protocol != nil {
		if flag, ok := openSSLProtocolFlags[*cfg.Protocol]; ok {
			b.add(flag)
		}
	}
}

// addOpenSSLCiphers uses -ciphersuites for TLS 1.3 ciphers and -cipher for the rest, with
// lists joined by colons.
func addOpenSSLCiphers(b *commandBuilder, cfg tlsdef.Configuration) {
	if !cfg.Cipher.IsDefined() {
		return
	}
	if cfg.Cipher.TLS13Only() {
		b.add("-ciphersuites", cfg.Cipher.Join(":"))
	} else {
		b.add("-cipher", cfg.Cipher.Join(":"))
	}
}

func addOpenSSLCurve(b *commandBuilder, cfg tlsdef.Configuration) {
	if cfg.Curve != nil {
		b.add("-curves", cfg.Curve.Name)
	}
}

func addOpenSSLSignature(b *commandBuilder, cfg tlsdef.Configuration) {
	if cfg.Signature != nil {
		b.add("-sigalgs", cfg.Signature.Name)
	}
}
