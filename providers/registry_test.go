package providers

import (
	"errors"
	"testing"
	"time"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/readiness"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry(environment.Snapshot{})
	assert.Equal(t, []string{"boringssl", "gnutls", "javassl", "openssl", "openssl-1.0.2", "s2n", "tcpdump"}, r.IDs())
}

func TestResolveUnknownProvider(t *testing.T) {
	_, err := NewRegistry(testEnv(t)).Resolve("wolfssl")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, IsSkip(err))

	var ce ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "wolfssl", ce.Provider)
}

func TestResolveReturnsProviderWithMatchingID(t *testing.T) {
	r := NewRegistry(testEnv(t))
	for _, id := range r.IDs() {
		p, err := r.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID())
	}
}

func TestResolveOpenSSLRequiresInstalledTool(t *testing.T) {
	_, err := NewRegistry(environment.Snapshot{}).Resolve(OpenSSLID)
	assert.True(t, errors.Is(err, ErrEnvironmentDiscovery))

	var de EnvironmentDiscoveryError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "openssl", de.Tool)
}

func TestResolveOpenSSLRequiresVersion11(t *testing.T) {
	env := environment.Snapshot{OpenSSL: opensslVersion(t, "OpenSSL 1.0.2u  20 Dec 2019")}
	_, err := NewRegistry(env).Resolve(OpenSSLID)
	assert.True(t, errors.Is(err, ErrEnvironmentDiscovery))

	env.OpenSSL = opensslVersion(t, "OpenSSL 1.1.0l  10 Sep 2019")
	_, err = NewRegistry(env).Resolve(OpenSSLID)
	assert.NoError(t, err)
}

func TestResolveLegacyOpenSSLRequiresInstallDir(t *testing.T) {
	env := testEnv(t)
	_, err := NewRegistry(env).Resolve(SSLv3ID)
	assert.NoError(t, err)

	env.OpenSSL102InstallDir = ldvalue.OptionalString{}
	_, err = NewRegistry(env).Resolve(SSLv3ID)
	assert.True(t, errors.Is(err, ErrEnvironmentDiscovery))
}

func TestProvidersWithoutToolRequirementsAlwaysResolve(t *testing.T) {
	r := NewRegistry(environment.Snapshot{})
	for _, id := range []string{S2NID, GnuTLSID, BoringSSLID, JavaSSLID, TcpdumpID} {
		_, err := r.Resolve(id)
		assert.NoError(t, err, id)
	}
}

func TestRegistryCheck(t *testing.T) {
	r := NewRegistry(environment.Snapshot{S2NProviderVersion: "openssl-1.0.2"})
	cfg := clientConfig()
	cfg.Signature = signaturePtr(tlsdef.RSA_PSS_RSAE_SHA256)
	err := r.Check(S2NID, cfg)
	assert.True(t, IsSkip(err))

	assert.True(t, errors.Is(r.Check("nope", cfg), ErrConfiguration))
}

func TestNewInstanceClientIsReadyImmediately(t *testing.T) {
	r := NewRegistry(testEnv(t))
	inst, err := r.NewInstance(S2NID, clientConfig())
	require.NoError(t, err)
	assert.Equal(t, tlsdef.Client, inst.Mode())
	assert.True(t, inst.Readiness.IsReady())
	assert.Equal(t, readiness.OutcomeReady, inst.WaitUntilReady(0))
}

func TestNewInstanceServerWaitsForMarker(t *testing.T) {
	r := NewRegistry(testEnv(t))
	inst, err := r.NewInstance(OpenSSLID, serverConfig())
	require.NoError(t, err)
	assert.False(t, inst.Readiness.IsReady())
	assert.Equal(t, "ACCEPT", inst.Readiness.Marker().StringValue())
	assert.Equal(t, readiness.OutcomeTimedOut, inst.WaitUntilReady(0))

	go inst.Readiness.ObserveLine("ACCEPT")
	assert.Equal(t, readiness.OutcomeReady, inst.WaitUntilReady(5*time.Second))
}

func TestNewInstanceTcpdumpClientWaitsForMarker(t *testing.T) {
	inst, err := NewRegistry(environment.Snapshot{}).NewInstance(TcpdumpID, clientConfig())
	require.NoError(t, err)
	assert.False(t, inst.Readiness.IsReady())
}

func TestNewInstanceBoringSSLServerIsReadyImmediately(t *testing.T) {
	inst, err := NewRegistry(environment.Snapshot{}).NewInstance(BoringSSLID, serverConfig())
	require.NoError(t, err)
	assert.True(t, inst.Readiness.IsReady())
}

func TestInstancesDoNotShareReadiness(t *testing.T) {
	r := NewRegistry(testEnv(t))
	a, err := r.NewInstance(S2NID, serverConfig())
	require.NoError(t, err)
	b, err := r.NewInstance(S2NID, serverConfig())
	require.NoError(t, err)
	a.Readiness.MarkReady()
	assert.True(t, a.Readiness.IsReady())
	assert.False(t, b.Readiness.IsReady())
}

func TestNewInstanceReturnsSkipForUnsupportedMode(t *testing.T) {
	_, err := NewRegistry(environment.Snapshot{}).NewInstance(JavaSSLID, serverConfig())
	assert.True(t, IsSkip(err))
}

func TestInstanceString(t *testing.T) {
	inst, err := NewRegistry(environment.Snapshot{}).NewInstance(TcpdumpID, clientConfig())
	require.NoError(t, err)
	assert.Equal(t, "tcpdump client: tcpdump -l -c 10 -i lo -nn -B 1024 'dst port 8000'", inst.String())
}
