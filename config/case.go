package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Case is one planned interop exchange between a client provider and a server provider.
// Elements are referred to by their catalog names, e.g. protocol "TLSv1.2" or certificate
// "RSA_2048_SHA256".
type Case struct {
	Name   string `yaml:"name"`
	Client string `yaml:"client"`
	Server string `yaml:"server"`
	Port   int    `yaml:"port"`

	Protocol    string   `yaml:"protocol"`
	Cipher      string   `yaml:"cipher"`
	Ciphers     []string `yaml:"ciphers"`
	Curve       string   `yaml:"curve"`
	Signature   string   `yaml:"signature"`
	Certificate string   `yaml:"certificate"`

	Insecure         bool   `yaml:"insecure"`
	ClientAuth       bool   `yaml:"client_auth"`
	UseSessionTicket bool   `yaml:"session_ticket"`
	ServerName       string `yaml:"server_name"`

	ClientFlags []string `yaml:"client_flags"`
	ServerFlags []string `yaml:"server_flags"`
}

// DisplayName is the case's name, or one made from its providers and elements.
func (c Case) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	parts := []string{c.Client, c.Server}
	for _, p := range []string{c.Protocol, c.Cipher, strings.Join(c.Ciphers, ":"), c.Curve, c.Signature, c.Certificate} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-")
}

func (c Case) validate() error {
	if c.Client == "" || c.Server == "" {
		return errors.New("client and server providers are required")
	}
	if c.Cipher != "" && len(c.Ciphers) != 0 {
		return errors.New("cipher and ciphers cannot both be set")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	_, err := c.elements("")
	return err
}

type caseElements struct {
	protocol    *tlsdef.Protocol
	cipher      tlsdef.CipherSpec
	curve       *tlsdef.Curve
	signature   *tlsdef.Signature
	certificate *tlsdef.Certificate
}

func (c Case) elements(certDir string) (caseElements, error) {
	var e caseElements
	if c.Protocol != "" {
		p, ok := tlsdef.ProtocolByName(c.Protocol)
		if !ok {
			return e, fmt.Errorf("unknown protocol %q", c.Protocol)
		}
		e.protocol = &p
	}
	names := c.Ciphers
	if c.Cipher != "" {
		names = []string{c.Cipher}
	}
	var ciphers []tlsdef.Cipher
	for _, name := range names {
		cipher, ok := tlsdef.CipherByName(name)
		if !ok {
			return e, fmt.Errorf("unknown cipher %q", name)
		}
		ciphers = append(ciphers, cipher)
	}
	if c.Cipher != "" {
		e.cipher = tlsdef.SingleCipher(ciphers[0])
	} else if len(ciphers) != 0 {
		e.cipher = tlsdef.CipherList(ciphers...)
	}
	if c.Curve != "" {
		curve, ok := tlsdef.CurveByName(c.Curve)
		if !ok {
			return e, fmt.Errorf("unknown curve %q", c.Curve)
		}
		e.curve = &curve
	}
	if c.Signature != "" {
		sig, ok := tlsdef.SignatureByName(c.Signature)
		if !ok {
			return e, fmt.Errorf("unknown signature %q", c.Signature)
		}
		e.signature = &sig
	}
	if c.Certificate != "" {
		cert, ok := tlsdef.CertificateByName(c.Certificate)
		if !ok {
			return e, fmt.Errorf("unknown certificate %q", c.Certificate)
		}
		cert = cert.InDirectory(certDir)
		e.certificate = &cert
	}
	return e, nil
}

// Configurations builds the client and server configurations for the case at position
// index in run.Cases. The server presents the certificate and the client trusts it, unless
// the client is insecure. With client authentication both sides present and trust it.
func (c Case) Configurations(run RunConfig, index int) (client, server tlsdef.Configuration, err error) {
	e, err := c.elements(run.CertDir)
	if err != nil {
		return client, server, fmt.Errorf("case %q: %w", c.DisplayName(), err)
	}
	port := c.Port
	if port == 0 {
		port = run.BasePort + index
	}

	base := tlsdef.Configuration{
		Host:             run.Host,
		Port:             port,
		Protocol:         e.protocol,
		Cipher:           e.cipher,
		Curve:            e.curve,
		Signature:        e.signature,
		UseSessionTicket: c.UseSessionTicket,
		UseClientAuth:    c.ClientAuth,
	}

	server = base
	server.Mode = tlsdef.Server
	server.Certificate = e.certificate
	server.ExtraFlags = append([]string(nil), c.ServerFlags...)

	client = base
	client.Mode = tlsdef.Client
	client.Insecure = c.Insecure
	client.ExtraFlags = append([]string(nil), c.ClientFlags...)
	if c.ServerName != "" {
		client.ServerName = ldvalue.NewOptionalString(c.ServerName)
	}
	if e.certificate != nil {
		if !c.Insecure {
			client.TrustStore = ldvalue.NewOptionalString(e.certificate.CertPath)
		}
		if c.ClientAuth {
			client.Certificate = e.certificate
			server.TrustStore = ldvalue.NewOptionalString(e.certificate.CertPath)
		}
	}
	return client, server, nil
}
