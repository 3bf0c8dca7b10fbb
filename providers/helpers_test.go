package providers

import (
	"testing"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const legacyDir = "/opt/openssl-1.0.2"

func opensslVersion(t *testing.T, output string) environment.ToolVersion {
	v, err := environment.ParseToolVersion(output)
	require.NoError(t, err)
	return v
}

// testEnv has every tool available, with OpenSSL 3.0 and a libcrypto that no s2n rule excludes.
func testEnv(t *testing.T) environment.Snapshot {
	return environment.Snapshot{
		S2NProviderVersion:   "openssl-3.0",
		OpenSSL:              opensslVersion(t, "OpenSSL 3.0.8 7 Feb 2023"),
		OpenSSL102InstallDir: ldvalue.NewOptionalString(legacyDir),
	}
}

func s2nEnv(libcrypto string, fips bool) environment.Snapshot {
	return environment.Snapshot{S2NProviderVersion: libcrypto, FIPSMode: fips}
}

func protocolPtr(p tlsdef.Protocol) *tlsdef.Protocol { return &p }

func curvePtr(c tlsdef.Curve) *tlsdef.Curve { return &c }

func signaturePtr(s tlsdef.Signature) *tlsdef.Signature { return &s }

func certPtr(c tlsdef.Certificate) *tlsdef.Certificate { return &c }

func clientConfig() tlsdef.Configuration {
	return tlsdef.Configuration{Mode: tlsdef.Client, Host: "localhost", Port: 8000}
}

func serverConfig() tlsdef.Configuration {
	return tlsdef.Configuration{Mode: tlsdef.Server, Host: "localhost", Port: 8000}
}

func mustResolve(t *testing.T, env environment.Snapshot, id string) Provider {
	p, err := NewRegistry(env).Resolve(id)
	require.NoError(t, err)
	return p
}

func mustSynthesize(t *testing.T, p Provider, env environment.Snapshot, cfg tlsdef.Configuration) Invocation {
	inv, err := Synthesize(p, env, cfg)
	require.NoError(t, err)
	return inv
}
