package interoptests

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/launchdarkly/tls-interop-tests/config"
	"github.com/launchdarkly/tls-interop-tests/framework"
	"github.com/launchdarkly/tls-interop-tests/providers"
	"github.com/launchdarkly/tls-interop-tests/readiness"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/require"
)

// PlannedCase is a case that passed capability checks and synthesis.
type PlannedCase struct {
	ID     framework.TestID
	Server *providers.Instance
	Client *providers.Instance

	// ReadyTimeout is how long a runner should wait for each instance to become ready.
	ReadyTimeout time.Duration
}

// Plan collects the cases a suite run produced. It is safe for concurrent use.
type Plan struct {
	cases []PlannedCase
	lock  sync.Mutex
}

func (p *Plan) add(pc PlannedCase) {
	p.lock.Lock()
	p.cases = append(p.cases, pc)
	p.lock.Unlock()
}

// Cases returns the planned cases in the order they were run.
func (p *Plan) Cases() []PlannedCase {
	p.lock.Lock()
	defer p.lock.Unlock()
	return append([]PlannedCase(nil), p.cases...)
}

// RunTestSuite runs every case in run against registry. Unsupported combinations are
// skipped, configuration errors fail the case, and everything else is added to the
// returned Plan.
func RunTestSuite(
	registry *providers.Registry,
	run config.RunConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) (framework.Results, *Plan) {
	plan := &Plan{}
	results := framework.Run(filter, testLogger, func(c *framework.Context) {
		c.Run("providers", func(c *framework.Context) {
			DoProviderTests(c, registry, RequiredProviders(run))
		})
		c.Run("cases", func(c *framework.Context) {
			for i, tc := range run.Cases {
				i, tc := i, tc
				c.Run(tc.DisplayName(), func(c *framework.Context) {
					doCase(c, registry, run, i, tc, plan)
				})
			}
		})
	})
	return results, plan
}

// RequiredProviders returns the sorted IDs of every provider named by a case in run.
func RequiredProviders(run config.RunConfig) []string {
	ids := mapset.NewSet[string]()
	for _, tc := range run.Cases {
		ids.Add(tc.Client)
		ids.Add(tc.Server)
	}
	ret := ids.ToSlice()
	sort.Strings(ret)
	return ret
}

// DoProviderTests checks that each of the given providers can be used in this environment.
func DoProviderTests(c *framework.Context, registry *providers.Registry, ids []string) {
	for _, id := range ids {
		id := id
		c.Run(id, func(c *framework.Context) {
			p, err := registry.Resolve(id)
			require.NoError(c, err)
			c.Debug("resolved %s (environment: %s)", p.ID(), registry.Environment())
		})
	}
}

func doCase(c *framework.Context, registry *providers.Registry, run config.RunConfig, index int, tc config.Case, plan *Plan) {
	clientCfg, serverCfg, err := tc.Configurations(run, index)
	require.NoError(c, err)

	if err := registry.Check(tc.Server, serverCfg); providers.IsSkip(err) {
		c.SkipWithReason(err.Error())
	}
	if err := registry.Check(tc.Client, clientCfg); providers.IsSkip(err) {
		c.SkipWithReason(err.Error())
	}

	server := newInstance(c, registry, tc.Server, serverCfg)
	client := newInstance(c, registry, tc.Client, clientCfg)

	// Nothing is started in a dry run, so only instances without a marker can become ready.
	for _, inst := range []*providers.Instance{server, client} {
		if !inst.Readiness.Marker().IsDefined() {
			require.Equal(c, readiness.OutcomeReady, inst.WaitUntilReady(run.ReadyTimeout),
				"%s without a readiness marker should be ready at synthesis", inst)
		}
	}

	plan.add(PlannedCase{ID: c.ID(), Server: server, Client: client, ReadyTimeout: run.ReadyTimeout})
}

func newInstance(c *framework.Context, registry *providers.Registry, id string, cfg tlsdef.Configuration) *providers.Instance {
	inst, err := registry.NewInstance(id, cfg)
	if providers.IsSkip(err) {
		c.SkipWithReason(err.Error())
	}
	require.NoError(c, err)

	logger := framework.LoggerWithPrefix(c.DebugLogger(), fmt.Sprintf("[%s %s] ", id, cfg.Mode))
	logger.Printf("command: %s", inst.Invocation.Command)
	if env := inst.Invocation.EnvList(); len(env) != 0 {
		logger.Printf("environment: %v", env)
	}
	if marker := inst.Readiness.Marker(); marker.IsDefined() {
		logger.Printf("ready when output contains %q", marker.StringValue())
	}
	return inst
}
