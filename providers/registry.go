package providers

import (
	"errors"
	"sort"
	"strings"

	"github.com/launchdarkly/tls-interop-tests/environment"
	"github.com/launchdarkly/tls-interop-tests/readiness"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"
)

// Registry looks up providers by ID. It holds the environment snapshot for the run, and is
// safe for concurrent use since nothing in it changes after NewRegistry returns.
type Registry struct {
	env       environment.Snapshot
	providers map[string]Provider
}

// NewRegistry creates a Registry containing every known provider.
func NewRegistry(env environment.Snapshot) *Registry {
	r := &Registry{env: env, providers: make(map[string]Provider)}
	for _, p := range []Provider{
		s2nProvider{},
		openSSLProvider{},
		openSSLProvider{legacy: true},
		gnuTLSProvider{},
		boringSSLProvider{},
		javaSSLProvider{},
		tcpdumpProvider{},
	} {
		r.providers[p.ID()] = p
	}
	return r
}

func (r *Registry) Environment() environment.Snapshot {
	return r.env
}

// IDs returns every provider ID in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.providers))
	for id := range r.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolve returns the provider with the given ID. An unknown ID is a ConfigurationError; a
// provider whose tool is missing or too old is an EnvironmentDiscoveryError.
func (r *Registry) Resolve(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, ConfigurationError{Provider: id, Reason: "unknown provider", Err: errors.New("known providers are " + strings.Join(r.IDs(), ", "))}
	}
	if err := p.checkEnvironment(r.env); err != nil {
		return nil, err
	}
	return p, nil
}

// Check resolves the provider and checks whether it can attempt the configuration.
func (r *Registry) Check(id string, cfg tlsdef.Configuration) error {
	p, err := r.Resolve(id)
	if err != nil {
		return err
	}
	return Check(p, r.env, cfg)
}

// NewInstance resolves the provider, synthesizes its command, and creates the readiness
// coordinator for the process. A provider with no readiness marker, which includes most
// clients, is ready as soon as its command exists.
func (r *Registry) NewInstance(id string, cfg tlsdef.Configuration) (*Instance, error) {
	p, err := r.Resolve(id)
	if err != nil {
		return nil, err
	}
	inv, err := Synthesize(p, r.env, cfg)
	if err != nil {
		return nil, err
	}
	return &Instance{
		Provider:   p,
		Config:     cfg,
		Invocation: inv,
		Readiness:  readiness.New(inv.ReadinessMarker),
	}, nil
}
