// Package readiness coordinates the start of a client process with the server process it
// connects to. A Coordinator starts Unready and becomes Ready exactly once, either when the
// process prints its marker or when a caller marks it ready explicitly.
package readiness

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ErrReadinessTimeout is returned by Outcome.Err when a wait timed out.
var ErrReadinessTimeout = errors.New("timed out waiting for process to become ready")

// State is the readiness state of one process.
type State int

const (
	Unready State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "unready"
}

// Outcome is the result of waiting for readiness.
type Outcome int

const (
	OutcomeReady Outcome = iota
	OutcomeTimedOut
)

func (o Outcome) String() string {
	if o == OutcomeReady {
		return "ready"
	}
	return "timed out"
}

// Err returns nil for OutcomeReady and ErrReadinessTimeout otherwise.
func (o Outcome) Err() error {
	if o == OutcomeReady {
		return nil
	}
	return ErrReadinessTimeout
}

// Coordinator holds the readiness state of one process. It is safe for concurrent use by one
// notifier and any number of waiters.
type Coordinator struct {
	marker  ldvalue.OptionalString
	ready   bool
	readyCh chan struct{}
	lock    sync.Mutex
}

// New creates a Coordinator. If marker is undefined there is nothing to wait for, so the
// Coordinator starts Ready.
func New(marker ldvalue.OptionalString) *Coordinator {
	c := &Coordinator{marker: marker, readyCh: make(chan struct{})}
	if !marker.IsDefined() {
		c.ready = true
		close(c.readyCh)
	}
	return c
}

// Marker returns the output substring that signals readiness, if any.
func (c *Coordinator) Marker() ldvalue.OptionalString {
	return c.marker
}

// MarkReady moves the Coordinator to Ready and wakes all waiters. Calling it again has no effect.
func (c *Coordinator) MarkReady() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.ready {
		return
	}
	c.ready = true
	close(c.readyCh)
}

func (c *Coordinator) IsReady() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.ready
}

func (c *Coordinator) State() State {
	if c.IsReady() {
		return Ready
	}
	return Unready
}

// Done returns a channel that is closed once the Coordinator is Ready.
func (c *Coordinator) Done() <-chan struct{} {
	return c.readyCh
}

// WaitUntilReady blocks until the Coordinator is Ready or the timeout elapses. A timeout of
// zero or less checks the state without blocking.
func (c *Coordinator) WaitUntilReady(timeout time.Duration) Outcome {
	if c.IsReady() {
		return OutcomeReady
	}
	if timeout <= 0 {
		return OutcomeTimedOut
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c.readyCh:
		return OutcomeReady
	case <-timer.C:
		// MarkReady may have run at the same moment the timer fired.
		if c.IsReady() {
			return OutcomeReady
		}
		return OutcomeTimedOut
	}
}

// WaitUntilReadyContext is like WaitUntilReady but waits until the context is done.
func (c *Coordinator) WaitUntilReadyContext(ctx context.Context) Outcome {
	select {
	case <-c.readyCh:
		return OutcomeReady
	case <-ctx.Done():
		if c.IsReady() {
			return OutcomeReady
		}
		return OutcomeTimedOut
	}
}

// ObserveLine marks the Coordinator ready if the line contains the marker. It returns true if
// the Coordinator is Ready afterward.
func (c *Coordinator) ObserveLine(line string) bool {
	if c.marker.IsDefined() && strings.Contains(line, c.marker.StringValue()) {
		c.MarkReady()
		return true
	}
	return c.IsReady()
}

// MaxLineLength is the longest output line Watch can read. Providers dump certificates and
// handshake traces that can exceed bufio's default limit.
const MaxLineLength = 4 * 1024 * 1024

// LineObserver is called by Watch for every line read, after readiness has been updated.
type LineObserver func(line string)

// Watch reads r line by line until EOF, passing each line to ObserveLine and then to each
// observer. It returns the first read error other than EOF.
func (c *Coordinator) Watch(r io.Reader, observers ...LineObserver) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineLength)
	for scanner.Scan() {
		line := scanner.Text()
		c.ObserveLine(line)
		for _, o := range observers {
			o(line)
		}
	}
	return scanner.Err()
}
