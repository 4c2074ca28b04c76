package util

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHandlerFiltersAndFormats(t *testing.T) {
	out := &bytes.Buffer{}
	log := slog.New(NewColorHandler(out, slog.LevelInfo)).With("component", "cord")

	log.Debug("hidden")
	log.Warn("heartbeat not acknowledged", "interval", "1s")
	log.WithGroup("gw").Info("operational", "session", "abc")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WRN heartbeat not acknowledged component=cord interval=1s")
	assert.Contains(t, lines[1], "INF operational component=cord gw.session=abc")
}
