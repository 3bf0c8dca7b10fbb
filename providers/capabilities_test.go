package providers

import (
	"testing"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"github.com/stretchr/testify/assert"
)

func TestS2NSignaturePSSDependsOnLibcrypto(t *testing.T) {
	p := s2nProvider{}
	assert.False(t, p.SupportsSignature(s2nEnv("openssl-1.0", false), tlsdef.RSA_PSS_RSAE_SHA256))
	assert.False(t, p.SupportsSignature(s2nEnv("openssl-1.0.2-fips", false), tlsdef.RSA_PSS_RSAE_SHA256))
	assert.False(t, p.SupportsSignature(s2nEnv("libressl", false), tlsdef.RSA_PSS_RSAE_SHA256))
	assert.False(t, p.SupportsSignature(s2nEnv("boringssl", false), tlsdef.RSA_PSS_RSAE_SHA256))
	assert.True(t, p.SupportsSignature(s2nEnv("openssl-3.0", false), tlsdef.RSA_PSS_RSAE_SHA256))
	assert.True(t, p.SupportsSignature(s2nEnv("openssl-1.0", false), tlsdef.RSA_SHA256))
}

func TestS2NTLS13RequiresPSS(t *testing.T) {
	p := s2nProvider{}
	assert.False(t, p.SupportsProtocol(s2nEnv("openssl-1.0.2", false), tlsdef.TLS13))
	assert.True(t, p.SupportsProtocol(s2nEnv("openssl-1.0.2", false), tlsdef.TLS12))
	assert.True(t, p.SupportsProtocol(s2nEnv("awslc", false), tlsdef.TLS13))
}

func TestS2NSSLv3InFIPSModeRequiresAWSLC(t *testing.T) {
	p := s2nProvider{}
	assert.False(t, p.SupportsProtocol(s2nEnv("openssl-3.0-fips", true), tlsdef.SSLv3))
	assert.False(t, p.SupportsProtocol(s2nEnv("openssl-1.1.1", true), tlsdef.SSLv3))
	assert.True(t, p.SupportsProtocol(s2nEnv("awslc-fips", true), tlsdef.SSLv3))
	assert.True(t, p.SupportsProtocol(s2nEnv("openssl-3.0", false), tlsdef.SSLv3))

	// The FIPS rule doesn't replace the others: TLS 1.3 is still excluded without PSS.
	assert.False(t, p.SupportsProtocol(s2nEnv("openssl-1.0.2-fips", true), tlsdef.TLS13))
	assert.True(t, p.SupportsProtocol(s2nEnv("openssl-3.0-fips", true), tlsdef.TLS13))
}

func TestS2NCipherExclusions(t *testing.T) {
	p := s2nProvider{}
	chacha := tlsdef.ECDHE_RSA_CHACHA20_POLY1305
	rc4 := tlsdef.ECDHE_RSA_RC4_SHA

	assert.False(t, p.SupportsCipher(s2nEnv("openssl-1.0.2", false), chacha, nil))
	assert.False(t, p.SupportsCipher(s2nEnv("libressl", false), chacha, nil))
	assert.True(t, p.SupportsCipher(s2nEnv("openssl-3.0", false), chacha, nil))

	assert.False(t, p.SupportsCipher(s2nEnv("openssl-3.0.7", false), rc4, nil))
	assert.True(t, p.SupportsCipher(s2nEnv("openssl-1.1.1", false), rc4, nil))

	assert.True(t, p.SupportsCipher(s2nEnv("openssl-1.0.2", false), tlsdef.AES128_SHA, nil))
}

func TestS2NCertificateExclusions(t *testing.T) {
	p := s2nProvider{}
	assert.False(t, p.SupportsCertificate(s2nEnv("openssl-1.0.2", false), tlsdef.RSA_PSS_2048_SHA256))
	assert.True(t, p.SupportsCertificate(s2nEnv("openssl-3.0", false), tlsdef.RSA_PSS_2048_SHA256))
	assert.False(t, p.SupportsCertificate(s2nEnv("openssl-3.0-fips", true), tlsdef.RSA_1024_SHA256))
	assert.True(t, p.SupportsCertificate(s2nEnv("openssl-3.0", false), tlsdef.RSA_1024_SHA256))
	assert.True(t, p.SupportsCertificate(s2nEnv("openssl-3.0-fips", true), tlsdef.RSA_2048_SHA256))
}

func TestOpenSSLProtocolsByVersion(t *testing.T) {
	p := openSSLProvider{}
	v111 := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 1.1.1w  11 Sep 2023")}
	v30 := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 3.0.8 7 Feb 2023")}
	v31 := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 3.1.4 24 Oct 2023")}

	assert.False(t, p.SupportsProtocol(v111, tlsdef.SSLv3))
	assert.True(t, p.SupportsProtocol(v111, tlsdef.TLS10))
	assert.True(t, p.SupportsProtocol(v111, tlsdef.TLS13))

	for _, proto := range []tlsdef.Protocol{tlsdef.SSLv3, tlsdef.TLS10, tlsdef.TLS11} {
		assert.False(t, p.SupportsProtocol(v30, proto), proto.Name)
	}
	assert.True(t, p.SupportsProtocol(v30, tlsdef.TLS12))
	assert.True(t, p.SupportsProtocol(v30, tlsdef.TLS13))

	for _, proto := range tlsdef.AllProtocols {
		assert.True(t, p.SupportsProtocol(v31, proto), proto.Name)
	}
}

func TestOpenSSLCertificatesByVersion(t *testing.T) {
	p := openSSLProvider{}
	v111 := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 1.1.1w  11 Sep 2023")}
	v30 := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 3.0.8 7 Feb 2023")}

	for _, c := range []tlsdef.Certificate{tlsdef.RSA_1024_SHA256, tlsdef.RSA_1024_SHA384, tlsdef.RSA_1024_SHA512} {
		assert.False(t, p.SupportsCertificate(v30, c), c.Name)
		assert.True(t, p.SupportsCertificate(v111, c), c.Name)
	}
	assert.True(t, p.SupportsCertificate(v30, tlsdef.RSA_2048_SHA256))
}

func TestOpenSSLCiphersAndSignaturesArePermissive(t *testing.T) {
	p := openSSLProvider{}
	env := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 3.0.8 7 Feb 2023")}
	for _, c := range tlsdef.AllCiphers {
		assert.True(t, p.SupportsCipher(env, c, nil), c.Name)
	}
	for _, s := range tlsdef.AllSignatures {
		assert.True(t, p.SupportsSignature(env, s), s.Name)
	}
}

func TestLegacyOpenSSLOnlySupportsSSLv3(t *testing.T) {
	p := openSSLProvider{legacy: true}
	for _, proto := range tlsdef.AllProtocols {
		assert.Equal(t, proto == tlsdef.SSLv3, p.SupportsProtocol(environment.Snapshot{}, proto), proto.Name)
	}
}

func TestGnuTLSSupportsOnlyMappedElements(t *testing.T) {
	p := gnuTLSProvider{}
	env := environment.Snapshot{}

	assert.False(t, p.SupportsProtocol(env, tlsdef.SSLv3))
	for _, proto := range []tlsdef.Protocol{tlsdef.TLS10, tlsdef.TLS11, tlsdef.TLS12, tlsdef.TLS13} {
		assert.True(t, p.SupportsProtocol(env, proto), proto.Name)
	}

	assert.True(t, p.SupportsCipher(env, tlsdef.ECDHE_RSA_AES128_GCM_SHA256, nil))
	assert.False(t, p.SupportsCipher(env, tlsdef.TLS_AES_128_GCM_SHA256, nil))
	assert.False(t, p.SupportsCipher(env, tlsdef.ECDHE_ECDSA_CHACHA20_POLY1305, nil))

	assert.True(t, p.SupportsSignature(env, tlsdef.RSA_SHA256))
	assert.False(t, p.SupportsSignature(env, tlsdef.ECDSA_SHA256))
	assert.False(t, p.SupportsSignature(env, tlsdef.RSA_PSS_RSAE_SHA256))
}

func TestBoringSSLRejectsX25519(t *testing.T) {
	p := boringSSLProvider{}
	env := environment.Snapshot{}
	assert.False(t, p.SupportsCurve(env, tlsdef.X25519))
	assert.True(t, p.SupportsCurve(env, tlsdef.P256))
	assert.False(t, p.SupportsCipher(env, tlsdef.AES128_SHA, curvePtr(tlsdef.X25519)))
	assert.True(t, p.SupportsCipher(env, tlsdef.AES128_SHA, curvePtr(tlsdef.P384)))
	assert.True(t, p.SupportsCipher(env, tlsdef.AES128_SHA, nil))
}

func TestJavaSSLExclusions(t *testing.T) {
	p := javaSSLProvider{}
	env := environment.Snapshot{}
	assert.False(t, p.SupportsProtocol(env, tlsdef.SSLv3))
	assert.False(t, p.SupportsProtocol(env, tlsdef.TLS10))
	assert.False(t, p.SupportsProtocol(env, tlsdef.TLS11))
	assert.True(t, p.SupportsProtocol(env, tlsdef.TLS12))
	assert.True(t, p.SupportsProtocol(env, tlsdef.TLS13))
	assert.False(t, p.SupportsCipher(env, tlsdef.TLS_CHACHA20_POLY1305_SHA256, nil))
	assert.True(t, p.SupportsCipher(env, tlsdef.TLS_AES_128_GCM_SHA256, nil))
	assert.False(t, p.SupportsMode(tlsdef.Server))
	assert.True(t, p.SupportsMode(tlsdef.Client))
}

func TestCheckReportsFirstUnsupportedElement(t *testing.T) {
	env := s2nEnv("openssl-1.0.2", false)
	cfg := clientConfig()
	cfg.Cipher = tlsdef.SingleCipher(tlsdef.ECDHE_RSA_CHACHA20_POLY1305)
	cfg.Signature = signaturePtr(tlsdef.RSA_PSS_RSAE_SHA256)

	err := Check(s2nProvider{}, env, cfg)
	assert.Equal(t, UnsupportedCombinationError{Provider: S2NID, Element: "cipher", Value: "ECDHE-RSA-CHACHA20-POLY1305"}, err)
	assert.True(t, IsSkip(err))

	cfg.Cipher = tlsdef.CipherSpec{}
	err = Check(s2nProvider{}, env, cfg)
	assert.Equal(t, UnsupportedCombinationError{Provider: S2NID, Element: "signature", Value: "rsa_pss_rsae_sha256"}, err)

	cfg.Signature = nil
	assert.NoError(t, Check(s2nProvider{}, env, cfg))
}

func TestCheckChecksEveryCipherInList(t *testing.T) {
	cfg := clientConfig()
	cfg.Cipher = tlsdef.CipherList(tlsdef.ECDHE_RSA_AES128_GCM_SHA256, tlsdef.ECDHE_RSA_CHACHA20_POLY1305)
	err := Check(javaSSLProvider{}, environment.Snapshot{}, cfg)
	assert.Equal(t, UnsupportedCombinationError{Provider: JavaSSLID, Element: "cipher", Value: "ECDHE-RSA-CHACHA20-POLY1305"}, err)
}

func TestCheckUnsupportedMode(t *testing.T) {
	err := Check(tcpdumpProvider{}, environment.Snapshot{}, serverConfig())
	assert.Equal(t, UnsupportedModeError{Provider: TcpdumpID, Mode: tlsdef.Server}, err)
	assert.True(t, IsSkip(err))
}
