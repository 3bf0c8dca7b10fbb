package providers

import (
	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// tcpdumpProvider isn't a TLS implementation. It watches the first few packets sent to a
// port, for tests that inspect record sizes on the wire. Everything but the port is fixed.
type tcpdumpProvider struct {
	permissive
}

func (tcpdumpProvider) ID() string { return TcpdumpID }

func (tcpdumpProvider) SupportsMode(mode tlsdef.Mode) bool { return mode == tlsdef.Client }

func (tcpdumpProvider) Traits(tlsdef.Mode) Traits { return Traits{} }

func (tcpdumpProvider) ReadinessMarker(mode tlsdef.Mode) ldvalue.OptionalString {
	if mode == tlsdef.Client {
		return ldvalue.NewOptionalString("listening on lo")
	}
	return ldvalue.OptionalString{}
}

func (tcpdumpProvider) synthesize(_ environment.Snapshot, cfg tlsdef.Configuration) (synthesized, error) {
	b := commandBuilder{
		"tcpdump",
		"-l",       // line buffered
		"-c", "10", // enough packets to see a large record, and still exit before the timeout
		"-i", "lo",
		"-nn",
		"-B", "1024",
		"dst port " + cfg.PortString(),
	}
	return synthesized{args: b}, nil
}
