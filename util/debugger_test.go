package util

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestDebuggerWrapsLongFrames(t *testing.T) {
	out := &bytes.Buffer{}
	d := &StderrDebugger{Out: out}

	d.Incoming([]byte(strings.Repeat("a", 100)))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "<<< "+strings.Repeat("a", 75), lines[0])
	assert.Equal(t, "    "+strings.Repeat("a", 25), lines[1])
}

func TestDebuggerTruncates(t *testing.T) {
	out := &bytes.Buffer{}
	d := &StderrDebugger{Out: out, Truncate: true}

	d.Outgoing([]byte(strings.Repeat("b", 10000)))

	assert.Less(t, out.Len(), 1000)
	assert.Contains(t, out.String(), "…")
}

func TestDebuggerRedactsToken(t *testing.T) {
	out := &bytes.Buffer{}
	d := &StderrDebugger{Out: out, Token: "s3cret"}

	d.Outgoing([]byte(`{"op":2,"d":{"token":"s3cret"}}`))
	d.Error(errors.New("bad token s3cret"))

	assert.NotContains(t, out.String(), "s3cret")
	assert.Contains(t, out.String(), "ERR bad token [redacted]")
}
