package tlsdef

import "fmt"

// Mode says whether a provider instance acts as the TLS client or the TLS server.
type Mode string

const (
	Client Mode = "client"
	Server Mode = "server"
)

// ParseMode converts "client" or "server" into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Client, Server:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q (expected %q or %q)", s, Client, Server)
}

// Protocol is a TLS or SSL protocol version. Value is the record-layer minor
// version number, so protocols order naturally by Value.
type Protocol struct {
	Name  string
	Value int
}

func (p Protocol) String() string { return p.Name }

// AtLeast reports whether p is the same as or newer than other.
func (p Protocol) AtLeast(other Protocol) bool {
	return p.Value >= other.Value
}

var (
	SSLv3 = Protocol{Name: "SSLv3", Value: 30}
	TLS10 = Protocol{Name: "TLSv1.0", Value: 31}
	TLS11 = Protocol{Name: "TLSv1.1", Value: 32}
	TLS12 = Protocol{Name: "TLSv1.2", Value: 33}
	TLS13 = Protocol{Name: "TLSv1.3", Value: 34}
)

// OldestProtocol and NewestProtocol bound the versions any provider is asked to negotiate.
var (
	OldestProtocol = SSLv3
	NewestProtocol = TLS13
)

// AllProtocols lists every protocol from oldest to newest.
var AllProtocols = []Protocol{SSLv3, TLS10, TLS11, TLS12, TLS13}

// ProtocolByName finds a protocol by its name, e.g. "TLSv1.2".
func ProtocolByName(name string) (Protocol, bool) {
	for _, p := range AllProtocols {
		if p.Name == name {
			return p, true
		}
	}
	return Protocol{}, false
}
