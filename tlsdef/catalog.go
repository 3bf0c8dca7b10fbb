package tlsdef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const dhParamsPath = "../pems/dhparams_2048.pem"

func cipher(name string, minVersion Protocol, openssl111, fips bool, iana string) Cipher {
	return Cipher{
		Name:       name,
		MinVersion: minVersion,
		OpenSSL111: openssl111,
		FIPS:       fips,
		IANAName:   ldvalue.NewOptionalString(iana),
	}
}

func dheCipher(name string, minVersion Protocol, openssl111, fips bool, iana string) Cipher {
	c := cipher(name, minVersion, openssl111, fips, iana)
	c.Parameters = ldvalue.NewOptionalString(dhParamsPath)
	return c
}

func s2nPolicy(name string, minVersion Protocol, pq bool) Cipher {
	return Cipher{Name: name, MinVersion: minVersion, S2NPolicy: true, PQ: pq}
}

// Ciphers known to the test suites.
var (
	DHE_RSA_AES128_SHA            = dheCipher("DHE-RSA-AES128-SHA", SSLv3, true, false, "TLS_DHE_RSA_WITH_AES_128_CBC_SHA")
	DHE_RSA_AES256_SHA            = dheCipher("DHE-RSA-AES256-SHA", SSLv3, true, false, "TLS_DHE_RSA_WITH_AES_256_CBC_SHA")
	DHE_RSA_AES128_SHA256         = dheCipher("DHE-RSA-AES128-SHA256", TLS12, true, true, "TLS_DHE_RSA_WITH_AES_128_CBC_SHA256")
	DHE_RSA_AES256_SHA256         = dheCipher("DHE-RSA-AES256-SHA256", TLS12, true, true, "TLS_DHE_RSA_WITH_AES_256_CBC_SHA256")
	DHE_RSA_AES128_GCM_SHA256     = dheCipher("DHE-RSA-AES128-GCM-SHA256", TLS12, true, true, "TLS_DHE_RSA_WITH_AES_128_GCM_SHA256")
	DHE_RSA_AES256_GCM_SHA384     = dheCipher("DHE-RSA-AES256-GCM-SHA384", TLS12, true, true, "TLS_DHE_RSA_WITH_AES_256_GCM_SHA384")
	DHE_RSA_CHACHA20_POLY1305     = dheCipher("DHE-RSA-CHACHA20-POLY1305", TLS12, true, false, "TLS_DHE_RSA_WITH_CHACHA20_POLY1305_SHA256")
	AES128_SHA                    = cipher("AES128-SHA", SSLv3, true, true, "TLS_RSA_WITH_AES_128_CBC_SHA")
	AES256_SHA                    = cipher("AES256-SHA", SSLv3, true, true, "TLS_RSA_WITH_AES_256_CBC_SHA")
	AES128_SHA256                 = cipher("AES128-SHA256", TLS12, true, true, "TLS_RSA_WITH_AES_128_CBC_SHA256")
	AES256_SHA256                 = cipher("AES256-SHA256", TLS12, true, true, "TLS_RSA_WITH_AES_256_CBC_SHA256")
	AES128_GCM_SHA256             = cipher("AES128-GCM-SHA256", TLS12, true, true, "TLS_RSA_WITH_AES_128_GCM_SHA256")
	AES256_GCM_SHA384             = cipher("AES256-GCM-SHA384", TLS12, true, true, "TLS_RSA_WITH_AES_256_GCM_SHA384")
	ECDHE_ECDSA_AES128_SHA        = cipher("ECDHE-ECDSA-AES128-SHA", SSLv3, true, false, "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA")
	ECDHE_ECDSA_AES256_SHA        = cipher("ECDHE-ECDSA-AES256-SHA", SSLv3, true, false, "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA")
	ECDHE_ECDSA_AES128_SHA256     = cipher("ECDHE-ECDSA-AES128-SHA256", TLS12, true, true, "TLS_ECDHE_ECDSA_WITH_AES_128_CBC_SHA256")
	ECDHE_ECDSA_AES256_SHA384     = cipher("ECDHE-ECDSA-AES256-SHA384", TLS12, true, true, "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA384")
	ECDHE_ECDSA_AES128_GCM_SHA256 = cipher("ECDHE-ECDSA-AES128-GCM-SHA256", TLS12, true, true, "TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256")
	ECDHE_ECDSA_AES256_GCM_SHA384 = cipher("ECDHE-ECDSA-AES256-GCM-SHA384", TLS12, true, true, "TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384")
	ECDHE_ECDSA_CHACHA20_POLY1305 = cipher("ECDHE-ECDSA-CHACHA20-POLY1305", TLS12, true, false, "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256")
	ECDHE_RSA_AES128_SHA          = cipher("ECDHE-RSA-AES128-SHA", SSLv3, true, false, "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA")
	ECDHE_RSA_AES256_SHA          = cipher("ECDHE-RSA-AES256-SHA", SSLv3, true, false, "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA")
	ECDHE_RSA_AES128_SHA256       = cipher("ECDHE-RSA-AES128-SHA256", TLS12, true, true, "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA256")
	ECDHE_RSA_AES256_SHA384       = cipher("ECDHE-RSA-AES256-SHA384", TLS12, true, true, "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA384")
	ECDHE_RSA_AES128_GCM_SHA256   = cipher("ECDHE-RSA-AES128-GCM-SHA256", TLS12, true, true, "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256")
	ECDHE_RSA_AES256_GCM_SHA384   = cipher("ECDHE-RSA-AES256-GCM-SHA384", TLS12, true, true, "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384")
	ECDHE_RSA_CHACHA20_POLY1305   = cipher("ECDHE-RSA-CHACHA20-POLY1305", TLS12, true, false, "TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256")
	ECDHE_RSA_RC4_SHA             = cipher("ECDHE-RSA-RC4-SHA", SSLv3, false, false, "TLS_ECDHE_RSA_WITH_RC4_128_SHA")

	TLS_AES_128_GCM_SHA256       = cipher("TLS_AES_128_GCM_SHA256", TLS13, true, true, "TLS_AES_128_GCM_SHA256")
	TLS_AES_256_GCM_SHA384       = cipher("TLS_AES_256_GCM_SHA384", TLS13, true, true, "TLS_AES_256_GCM_SHA384")
	TLS_CHACHA20_POLY1305_SHA256 = cipher("TLS_CHACHA20_POLY1305_SHA256", TLS13, true, false, "TLS_CHACHA20_POLY1305_SHA256")

	KMS_TLS_1_0_2018_10      = s2nPolicy("KMS-TLS-1-0-2018-10", TLS10, false)
	PQ_TLS_1_0_2020_12       = s2nPolicy("PQ-TLS-1-0-2020-12", TLS10, true)
	SECURITY_POLICY_20210816 = s2nPolicy("20210816", TLS12, false)
	DEFAULT_TLS13            = s2nPolicy("default_tls13", TLS10, false)
)

// AllCiphers lists every cipher in the catalog.
var AllCiphers = []Cipher{
	DHE_RSA_AES128_SHA, DHE_RSA_AES256_SHA, DHE_RSA_AES128_SHA256, DHE_RSA_AES256_SHA256,
	DHE_RSA_AES128_GCM_SHA256, DHE_RSA_AES256_GCM_SHA384, DHE_RSA_CHACHA20_POLY1305,
	AES128_SHA, AES256_SHA, AES128_SHA256, AES256_SHA256, AES128_GCM_SHA256, AES256_GCM_SHA384,
	ECDHE_ECDSA_AES128_SHA, ECDHE_ECDSA_AES256_SHA, ECDHE_ECDSA_AES128_SHA256, ECDHE_ECDSA_AES256_SHA384,
	ECDHE_ECDSA_AES128_GCM_SHA256, ECDHE_ECDSA_AES256_GCM_SHA384, ECDHE_ECDSA_CHACHA20_POLY1305,
	ECDHE_RSA_AES128_SHA, ECDHE_RSA_AES256_SHA, ECDHE_RSA_AES128_SHA256, ECDHE_RSA_AES256_SHA384,
	ECDHE_RSA_AES128_GCM_SHA256, ECDHE_RSA_AES256_GCM_SHA384, ECDHE_RSA_CHACHA20_POLY1305,
	ECDHE_RSA_RC4_SHA,
	TLS_AES_128_GCM_SHA256, TLS_AES_256_GCM_SHA384, TLS_CHACHA20_POLY1305_SHA256,
	KMS_TLS_1_0_2018_10, PQ_TLS_1_0_2020_12, SECURITY_POLICY_20210816, DEFAULT_TLS13,
}

// Curves known to the test suites.
var (
	P256                     = Curve{Name: "P-256"}
	P384                     = Curve{Name: "P-384"}
	P521                     = Curve{Name: "P-521"}
	X25519                   = Curve{Name: "X25519"}
	SecP256r1Kyber768Draft00 = Curve{Name: "SecP256r1Kyber768Draft00"}
	X25519Kyber768Draft00    = Curve{Name: "X25519Kyber768Draft00"}
)

var AllCurves = []Curve{P256, P384, P521, X25519, SecP256r1Kyber768Draft00, X25519Kyber768Draft00}

// Signature schemes known to the test suites.
var (
	RSA_SHA1            = Signature{Name: "RSA+SHA1", Algorithm: "RSA", Digest: "SHA1", MinProtocol: SSLv3}
	RSA_SHA224          = Signature{Name: "RSA+SHA224", Algorithm: "RSA", Digest: "SHA224", MinProtocol: TLS12}
	RSA_SHA256          = Signature{Name: "RSA+SHA256", Algorithm: "RSA", Digest: "SHA256", MinProtocol: TLS12}
	RSA_SHA384          = Signature{Name: "RSA+SHA384", Algorithm: "RSA", Digest: "SHA384", MinProtocol: TLS12}
	RSA_SHA512          = Signature{Name: "RSA+SHA512", Algorithm: "RSA", Digest: "SHA512", MinProtocol: TLS12}
	ECDSA_SHA256        = Signature{Name: "ECDSA+SHA256", Algorithm: "EC", Digest: "SHA256", MinProtocol: TLS12}
	ECDSA_SHA384        = Signature{Name: "ECDSA+SHA384", Algorithm: "EC", Digest: "SHA384", MinProtocol: TLS12}
	RSA_PSS_RSAE_SHA256 = Signature{Name: "rsa_pss_rsae_sha256", Algorithm: "RSA-PSS-RSAE", Digest: "SHA256", MinProtocol: TLS12}
	RSA_PSS_PSS_SHA256  = Signature{Name: "rsa_pss_pss_sha256", Algorithm: "RSA-PSS-PSS", Digest: "SHA256", MinProtocol: TLS13}
)

var AllSignatures = []Signature{
	RSA_SHA1, RSA_SHA224, RSA_SHA256, RSA_SHA384, RSA_SHA512,
	ECDSA_SHA256, ECDSA_SHA384, RSA_PSS_RSAE_SHA256, RSA_PSS_PSS_SHA256,
}

func certificate(name, algorithm string, keySize int, prefix string) Certificate {
	return Certificate{
		Name:      name,
		Algorithm: algorithm,
		KeySize:   keySize,
		CertPath:  "../pems/" + prefix + "_cert.pem",
		KeyPath:   "../pems/" + prefix + "_key.pem",
	}
}

// Certificates known to the test suites.
var (
	RSA_1024_SHA256     = certificate("RSA_1024_SHA256", "RSA", 1024, "rsa_1024_sha256_client")
	RSA_1024_SHA384     = certificate("RSA_1024_SHA384", "RSA", 1024, "rsa_1024_sha384_client")
	RSA_1024_SHA512     = certificate("RSA_1024_SHA512", "RSA", 1024, "rsa_1024_sha512_client")
	RSA_2048_SHA256     = certificate("RSA_2048_SHA256", "RSA", 2048, "rsa_2048_sha256_client")
	RSA_2048_SHA384     = certificate("RSA_2048_SHA384", "RSA", 2048, "rsa_2048_sha384_client")
	RSA_3072_SHA256     = certificate("RSA_3072_SHA256", "RSA", 3072, "rsa_3072_sha256_client")
	RSA_4096_SHA512     = certificate("RSA_4096_SHA512", "RSA", 4096, "rsa_4096_sha512_client")
	RSA_PSS_2048_SHA256 = certificate("RSA_PSS_2048_SHA256", "RSAPSS", 2048, "localhost_rsa_pss_2048_sha256")
	ECDSA_256           = certificate("ECDSA_256", "EC", 256, "ecdsa_p256_pkcs1")
	ECDSA_384           = certificate("ECDSA_384", "EC", 384, "localhost_ecdsa_p384")
)

var AllCertificates = []Certificate{
	RSA_1024_SHA256, RSA_1024_SHA384, RSA_1024_SHA512, RSA_2048_SHA256, RSA_2048_SHA384,
	RSA_3072_SHA256, RSA_4096_SHA512, RSA_PSS_2048_SHA256, ECDSA_256, ECDSA_384,
}

// CipherByName finds a catalog cipher by its Name.
func CipherByName(name string) (Cipher, bool) {
	for _, c := range AllCiphers {
		if c.Name == name {
			return c, true
		}
	}
	return Cipher{}, false
}

func CurveByName(name string) (Curve, bool) {
	for _, c := range AllCurves {
		if c.Name == name {
			return c, true
		}
	}
	return Curve{}, false
}

func SignatureByName(name string) (Signature, bool) {
	for _, s := range AllSignatures {
		if s.Name == name {
			return s, true
		}
	}
	return Signature{}, false
}

func CertificateByName(name string) (Certificate, bool) {
	for _, c := range AllCertificates {
		if c.Name == name {
			return c, true
		}
	}
	return Certificate{}, false
}
