package tlsdef

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrMixedCipherList is returned by CipherSpec.Validate when a cipher list combines
// TLS 1.3 ciphers with ciphers for older protocols.
var ErrMixedCipherList = errors.New("cannot combine ciphers for TLS1.3 or above with older ciphers")

// ErrEmptyCipherList is returned by CipherSpec.Validate for a list with no ciphers.
var ErrEmptyCipherList = errors.New("cipher list is empty")

// Cipher describes a cipher suite, or for s2n a named security policy.
type Cipher struct {
	// Name is the OpenSSL-style name ("ECDHE-RSA-AES128-GCM-SHA256", "TLS_AES_128_GCM_SHA256"),
	// or the policy name if S2NPolicy is true.
	Name string

	// MinVersion is the oldest protocol the cipher can be negotiated with.
	MinVersion Protocol

	OpenSSL111 bool
	FIPS       bool

	// Parameters is the path of a DH parameters file, for DHE ciphers.
	Parameters ldvalue.OptionalString

	// IANAName is the standard name used by providers like Java that don't accept OpenSSL names.
	IANAName ldvalue.OptionalString

	// S2NPolicy means Name can be passed to s2n as a security policy.
	S2NPolicy bool

	PQ bool
}

func (c Cipher) String() string { return c.Name }

// TLS13Only reports whether the cipher can only be used with TLS 1.3 or above.
func (c Cipher) TLS13Only() bool {
	return c.MinVersion.AtLeast(TLS13)
}

// CipherSpec is an optional cipher selection: unset, a single cipher, or an ordered
// list of ciphers. The zero value is unset.
type CipherSpec struct {
	ciphers []Cipher
	list    bool
}

// SingleCipher selects exactly one cipher.
func SingleCipher(c Cipher) CipherSpec {
	return CipherSpec{ciphers: []Cipher{c}}
}

// CipherList selects an ordered list of ciphers. The order is preserved in every
// command line built from it.
func CipherList(ciphers ...Cipher) CipherSpec {
	return CipherSpec{ciphers: append([]Cipher(nil), ciphers...), list: true}
}

func (s CipherSpec) IsDefined() bool { return len(s.ciphers) != 0 }

// IsList is true if the CipherSpec was created with CipherList, even if the list has one element.
func (s CipherSpec) IsList() bool { return s.list }

// Ciphers returns a copy of the selected ciphers.
func (s CipherSpec) Ciphers() []Cipher {
	return append([]Cipher(nil), s.ciphers...)
}

// Single returns the cipher if s holds exactly one cipher and is not a list.
func (s CipherSpec) Single() (Cipher, bool) {
	if s.list || len(s.ciphers) != 1 {
		return Cipher{}, false
	}
	return s.ciphers[0], true
}

// TLS13Only is true if every selected cipher is a TLS 1.3 cipher. Validate guarantees
// that a list does not mix the two kinds.
func (s CipherSpec) TLS13Only() bool {
	return s.IsDefined() && s.ciphers[0].TLS13Only()
}

// Names returns the cipher names in order.
func (s CipherSpec) Names() []string {
	names := make([]string, 0, len(s.ciphers))
	for _, c := range s.ciphers {
		names = append(names, c.Name)
	}
	return names
}

// Join returns the cipher names joined with the given delimiter.
func (s CipherSpec) Join(delimiter string) string {
	return strings.Join(s.Names(), delimiter)
}

func (s CipherSpec) String() string {
	if !s.IsDefined() {
		return "<unset>"
	}
	if !s.list {
		return s.ciphers[0].Name
	}
	return "[" + s.Join(",") + "]"
}

// Validate rejects an empty list, and a list that mixes TLS 1.3 ciphers with older ones.
// A mixed list is never split or reordered.
func (s CipherSpec) Validate() error {
	if s.list && len(s.ciphers) == 0 {
		return ErrEmptyCipherList
	}
	if len(s.ciphers) < 2 {
		return nil
	}
	tls13 := s.ciphers[0].TLS13Only()
	for _, c := range s.ciphers[1:] {
		if c.TLS13Only() != tls13 {
			return fmt.Errorf("%w: %s", ErrMixedCipherList, s)
		}
	}
	return nil
}
