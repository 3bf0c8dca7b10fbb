package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "start "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String()+": "+err.Error())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	status := "ok"
	if failed {
		status = "failed"
	}
	r.events = append(r.events, "finish "+id.String()+" "+status)
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skip "+id.String()+" "+reason)
}

func TestRunPassingTests(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("b", func(c *Context) {})
		})
	})
	assert.True(t, results.OK())
	require.Len(t, results.Tests, 2)
	assert.Equal(t, "a/b", results.Tests[0].TestID.String())
	assert.Equal(t, "a", results.Tests[1].TestID.String())
	assert.Equal(t, []string{"start a", "start a/b", "finish a/b ok", "finish a ok"}, logger.events)
}

func TestErrorfFailsWithoutStopping(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			c.Errorf("bad %d", 1)
			reached = true
		})
	})
	assert.True(t, reached)
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "bad 1", results.Failures[0].Errors[0].Error())
}

func TestRequireAssertionStopsTest(t *testing.T) {
	reached := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) {
			require.Equal(c, 1, 2)
			reached = true
		})
	})
	assert.False(t, reached)
	assert.False(t, results.OK())
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) { c.FailNow() })
	})
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestUnexpectedPanicIsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("x", func(c *Context) { panic("boom") })
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
}

func TestSkipWithReason(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("x", func(c *Context) { c.SkipWithReason("not supported") })
	})
	assert.True(t, results.OK())
	require.Len(t, results.Skipped(), 1)
	assert.Contains(t, logger.events, "skip x not supported")
}

func TestFilterExcludesTests(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("^a/skipme$"))
	ran := map[string]bool{}
	results := Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Run("skipme", func(c *Context) { ran["skipme"] = true })
			c.Run("keep", func(c *Context) { ran["keep"] = true })
		})
	})
	assert.Equal(t, map[string]bool{"keep": true}, ran)
	require.Len(t, results.Skipped(), 1)
	assert.Equal(t, "a/skipme", results.Skipped()[0].TestID.String())
}

func TestDebugOutputIsPerTest(t *testing.T) {
	var outputs []CapturedOutput
	logger := &capturingTestLogger{onFinish: func(o CapturedOutput) { outputs = append(outputs, o) }}
	Run(nil, logger, func(c *Context) {
		c.Run("x", func(c *Context) { c.Debug("hello %s", "x") })
		c.Run("y", func(c *Context) { c.DebugLogger().Printf("hello y") })
	})
	require.Len(t, outputs, 2)
	require.Len(t, outputs[0], 1)
	assert.Equal(t, "hello x", outputs[0][0].Message)
	assert.Equal(t, "hello y", outputs[1][0].Message)
}

func TestSiblingIDsDoNotShareBackingArray(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 4)}
	parent.Path[0] = "p"
	a := parent.Plus("a")
	b := parent.Plus("b")
	assert.Equal(t, "p/a", a.String())
	assert.Equal(t, "p/b", b.String())
}

func TestRegexList(t *testing.T) {
	var r RegexList
	assert.False(t, r.IsDefined())
	require.NoError(t, r.Set("s2n"))
	require.NoError(t, r.Set("^gnutls"))
	assert.True(t, r.IsDefined())
	assert.True(t, r.AnyMatch("client s2n"))
	assert.False(t, r.AnyMatch("openssl/gnutls"))
	assert.Equal(t, `"s2n" or "^gnutls"`, r.String())
	assert.Equal(t, "regex", r.Type())

	err := r.Set("(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid regex")
}

type capturingTestLogger struct {
	nullTestLogger
	onFinish func(CapturedOutput)
}

func (c *capturingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	c.onFinish(debugOutput)
}
