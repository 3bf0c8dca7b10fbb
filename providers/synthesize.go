package providers

import (
	"sort"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Invocation is everything the process runner needs to start one provider process.
type Invocation struct {
	Provider string
	Mode     tlsdef.Mode
	Command  Command

	// Env holds environment variables to set for the process, on top of the runner's own.
	Env map[string]string

	Traits          Traits
	ReadinessMarker ldvalue.OptionalString

	name string
}

// Name is how the command is identified in logs. It is usually the executable, but for
// multi-tool binaries like openssl it is the subcommand.
func (i Invocation) Name() string {
	if i.name != "" {
		return i.name
	}
	return i.Command.Executable()
}

// EnvList returns Env as sorted NAME=value pairs, the form os/exec expects.
func (i Invocation) EnvList() []string {
	ret := make([]string, 0, len(i.Env))
	for k, v := range i.Env {
		ret = append(ret, k+"="+v)
	}
	sort.Strings(ret)
	return ret
}

// Check reports whether the provider can attempt the configuration. It returns nil, an
// UnsupportedModeError, or an UnsupportedCombinationError for the first unsupported element
// in the order mode, protocol, cipher, curve, signature, certificate.
func Check(p Provider, env environment.Snapshot, cfg tlsdef.Configuration) error {
	if !p.SupportsMode(cfg.Mode) {
		return UnsupportedModeError{Provider: p.ID(), Mode: cfg.Mode}
	}
	unsupported := func(element, value string) error {
		return UnsupportedCombinationError{Provider: p.ID(), Element: element, Value: value}
	}
	if cfg.Protocol != nil && !p.SupportsProtocol(env, *cfg.Protocol) {
		return unsupported("protocol", cfg.Protocol.Name)
	}
	for _, c := range cfg.Cipher.Ciphers() {
		if !p.SupportsCipher(env, c, cfg.Curve) {
			return unsupported("cipher", c.Name)
		}
	}
	if cfg.Curve != nil && !p.SupportsCurve(env, *cfg.Curve) {
		return unsupported("curve", cfg.Curve.Name)
	}
	if cfg.Signature != nil && !p.SupportsSignature(env, *cfg.Signature) {
		return unsupported("signature", cfg.Signature.Name)
	}
	if cfg.Certificate != nil && !p.SupportsCertificate(env, *cfg.Certificate) {
		return unsupported("certificate", cfg.Certificate.Name)
	}
	return nil
}

// Synthesize builds the command that runs the provider for the configuration.
//
// The result is the same every time for the same inputs. ExtraFlags are always the last
// tokens. Asking for a command the provider can't run is a ConfigurationError, since callers
// are expected to use Check first; the only skip-worthy error returned is UnsupportedModeError.
func Synthesize(p Provider, env environment.Snapshot, cfg tlsdef.Configuration) (Invocation, error) {
	if !p.SupportsMode(cfg.Mode) {
		return Invocation{}, UnsupportedModeError{Provider: p.ID(), Mode: cfg.Mode}
	}
	if err := cfg.Validate(); err != nil {
		return Invocation{}, configurationError(p, "invalid configuration", err)
	}
	if err := Check(p, env, cfg); err != nil {
		return Invocation{}, configurationError(p, "command requested for a combination that failed the capability check", err)
	}

	s, err := p.synthesize(env, cfg)
	if err != nil {
		return Invocation{}, err
	}
	s.args.add(cfg.ExtraFlags...)

	var envVars map[string]string
	if len(cfg.EnvOverrides) != 0 || len(s.env) != 0 {
		envVars = make(map[string]string, len(cfg.EnvOverrides)+len(s.env))
		for k, v := range cfg.EnvOverrides {
			envVars[k] = v
		}
		for k, v := range s.env {
			envVars[k] = v
		}
	}

	return Invocation{
		Provider:        p.ID(),
		Mode:            cfg.Mode,
		Command:         s.args.command(),
		Env:             envVars,
		Traits:          p.Traits(cfg.Mode),
		ReadinessMarker: p.ReadinessMarker(cfg.Mode),
		name:            s.name,
	}, nil
}
