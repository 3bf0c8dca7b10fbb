package tlsdef

import "path/filepath"

// Curve is a named group used for key exchange.
type Curve struct {
	Name string
}

func (c Curve) String() string { return c.Name }

// Signature is a signature scheme. Name is the form accepted by OpenSSL's -sigalgs.
type Signature struct {
	Name        string
	Algorithm   string
	Digest      string
	MinProtocol Protocol
}

func (s Signature) String() string { return s.Name }

// Certificate is a test certificate and its private key. The paths are passed through to
// providers unchanged; nothing here reads them.
type Certificate struct {
	Name      string
	Algorithm string // "RSA", "RSAPSS" or "EC"
	KeySize   int
	CertPath  string
	KeyPath   string
}

func (c Certificate) String() string { return c.Name }

// InDirectory returns a copy of the certificate with both paths placed under dir.
func (c Certificate) InDirectory(dir string) Certificate {
	if dir == "" {
		return c
	}
	c.CertPath = filepath.Join(dir, filepath.Base(c.CertPath))
	c.KeyPath = filepath.Join(dir, filepath.Base(c.KeyPath))
	return c
}
