package providers

import (
	"strings"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	mapset "github.com/deckarep/golang-set/v2"
)

// libcryptoDenylist matches an s2n libcrypto name that contains any of its entries as a
// substring, so "openssl-1.0" matches "openssl-1.0.2-fips".
type libcryptoDenylist struct {
	entries mapset.Set[string]
}

func denylist(entries ...string) libcryptoDenylist {
	return libcryptoDenylist{entries: mapset.NewSet(entries...)}
}

func (d libcryptoDenylist) matches(env environment.Snapshot) bool {
	return env.S2NLibcryptoContains(d.entries.ToSlice()...)
}

// cipherRule excludes ciphers whose name contains a fragment, like "CHACHA20", when the
// libcrypto is on a denylist.
type cipherRule struct {
	fragment  string
	libcrypto libcryptoDenylist
}

func (r cipherRule) excludes(env environment.Snapshot, c tlsdef.Cipher) bool {
	return strings.Contains(c.Name, r.fragment) && r.libcrypto.matches(env)
}

func protocolSet(protocols ...tlsdef.Protocol) mapset.Set[tlsdef.Protocol] {
	return mapset.NewSet(protocols...)
}

func certificateNameSet(certs ...tlsdef.Certificate) mapset.Set[string] {
	s := mapset.NewSet[string]()
	for _, c := range certs {
		s.Add(c.Name)
	}
	return s
}
