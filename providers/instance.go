package providers

import (
	"time"

	"github.com/launchdarkly/tls-interop-tests/readiness"
	"github.com/launchdarkly/tls-interop-tests/tlsdef"
)

// Instance is one provider process for one configuration. It is owned by a single test case.
type Instance struct {
	Provider   Provider
	Config     tlsdef.Configuration
	Invocation Invocation
	Readiness  *readiness.Coordinator
}

func (i *Instance) Mode() tlsdef.Mode {
	return i.Config.Mode
}

// WaitUntilReady is a shortcut for Readiness.WaitUntilReady.
func (i *Instance) WaitUntilReady(timeout time.Duration) readiness.Outcome {
	return i.Readiness.WaitUntilReady(timeout)
}

func (i *Instance) String() string {
	return i.Provider.ID() + " " + string(i.Config.Mode) + ": " + i.Invocation.Command.String()
}
