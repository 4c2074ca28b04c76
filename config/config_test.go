package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	cord "github.com/WatchBeam/cord/v2"
	"github.com/WatchBeam/cord/v2/model"
	"github.com/WatchBeam/cord/v2/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const full = `
token: ${CORD_TEST_TOKEN}
gateway:
  url: wss://gateway.example.com
  api_version: 10
  intents: [guilds, guild_messages, message_content]
  shard: [1, 4]
  large_threshold: 100
  compress: false
  timeout: 5s
  presence:
    status: idle
    activity: the logs
    type: 3
cache:
  enabled: true
  max_messages: 50
logging:
  level: debug
  format: json
debug:
  frames: true
  truncate: true
`

func TestLoadExpandsEnvAndConverts(t *testing.T) {
	t.Setenv("CORD_TEST_TOKEN", "s3cret")
	path := filepath.Join(t.TempDir(), "cord.yaml")
	require.NoError(t, os.WriteFile(path, []byte(full), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Token)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)

	opts, store := cfg.Options(cfg.Logger(&bytes.Buffer{}))
	assert.Equal(t, model.IntentGuilds|model.IntentGuildMessages|model.IntentMessageContent, opts.Intents)
	assert.Equal(t, &[2]int{1, 4}, opts.Shard)
	assert.Equal(t, 100, opts.LargeThreshold)
	assert.True(t, opts.DisableCompression)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, cord.StaticGateway("wss://gateway.example.com"), opts.Gateway)

	require.NotNil(t, opts.Presence)
	assert.Equal(t, model.StatusIdle, opts.Presence.Status)
	assert.Equal(t, []*model.Activity{{Name: "the logs", Type: model.ActivityWatching}}, opts.Presence.Activities)

	require.NotNil(t, store)
	assert.Equal(t, opts.Cache, store)
	assert.IsType(t, &util.StderrDebugger{}, opts.Debugger)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("token: abc\ngateway:\n  api_url: https://discord.com/api/v10/\n"))
	require.NoError(t, err)

	opts, store := cfg.Options(nil)
	assert.Nil(t, store)
	assert.Nil(t, opts.Cache)
	assert.Nil(t, opts.Debugger)
	assert.Equal(t, model.IntentsDefault, opts.Intents)
	assert.False(t, opts.DisableCompression)

	gw, ok := opts.Gateway.(cord.HTTPGatewayRetriever)
	require.True(t, ok)
	assert.Equal(t, "https://discord.com/api/v10", gw.BaseURL)
	assert.Equal(t, "abc", gw.Token)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"missing token":  "gateway: {}",
		"bad intent":     "token: a\ngateway:\n  intents: [guild_mesages]",
		"shard size":     "token: a\ngateway:\n  shard: [1]",
		"shard range":    "token: a\ngateway:\n  shard: [4, 4]",
		"threshold":      "token: a\ngateway:\n  large_threshold: 1000",
		"status":         "token: a\ngateway:\n  presence:\n    status: busy",
		"log level":      "token: a\nlogging:\n  level: loud",
		"log format":     "token: a\nlogging:\n  format: xml",
		"bad duration":   "token: a\ngateway:\n  timeout: soon",
		"malformed yaml": "token: [",
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoggerFormats(t *testing.T) {
	out := &bytes.Buffer{}
	cfg := &Config{Logging: LoggingConfig{Level: "warn", Format: "json"}}
	log := cfg.Logger(out)

	log.Info("quiet")
	log.Warn("loud", "code", 4009)

	assert.NotContains(t, out.String(), "quiet")
	assert.Contains(t, out.String(), `"msg":"loud"`)
	assert.Contains(t, out.String(), `"code":4009`)
}
