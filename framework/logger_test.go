package framework

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapturingLogger(t *testing.T) {
	var l CapturingLogger
	l.Printf("a=%d", 1)
	l.Printf("b")
	out := l.Output()
	require.Len(t, out, 2)
	assert.Equal(t, "a=1", out[0].Message)

	var buf bytes.Buffer
	out.Dump(&buf, "  DEBUG ")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  DEBUG ["))
	assert.True(t, strings.HasSuffix(lines[1], "] b"))
}

func TestLoggerWithPrefix(t *testing.T) {
	var l CapturingLogger
	LoggerWithPrefix(&l, "[s2n server] ").Printf("ready after %d lines", 3)
	assert.Equal(t, "[s2n server] ready after 3 lines", l.Output()[0].Message)

	LoggerWithPrefix(nil, "x").Printf("discarded")
}

func TestReformatErrorIndentsContinuationLines(t *testing.T) {
	err := errors.New("first\nsecond")
	assert.Equal(t, "first\n  second", reformatError(err).Error())
	single := errors.New("only")
	assert.Equal(t, single, reformatError(single))
}

func TestPrintFilterDescription(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{}, nil)
	assert.Empty(t, buf.String())

	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("s2n"))
	PrintFilterDescription(&buf, filters, map[string]error{
		"openssl":       errors.New("not found"),
		"openssl-1.0.2": errors.New("no install dir"),
	})
	out := buf.String()
	assert.Contains(t, out, `skip any not matching "s2n"`)
	assert.NotContains(t, out, "skip any matching")
	assert.Less(t, strings.Index(out, "openssl: not found"), strings.Index(out, "openssl-1.0.2: no install dir"))
}
