// Package config loads a bot's gateway settings from YAML and turns them into
// cord.WsOptions.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	cord "github.com/WatchBeam/cord/v2"
	"github.com/WatchBeam/cord/v2/cache"
	"github.com/WatchBeam/cord/v2/model"
	"github.com/WatchBeam/cord/v2/util"
	"gopkg.in/yaml.v3"
)

// Config is the complete bot configuration.
type Config struct {
	Token   string        `yaml:"token"`
	Gateway GatewayConfig `yaml:"gateway"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// GatewayConfig holds the connection settings.
type GatewayConfig struct {
	// URL of the gateway. When empty it is looked up from APIURL.
	URL string `yaml:"url"`
	// APIURL is the REST base used for GET /gateway/bot.
	APIURL         string          `yaml:"api_url"`
	APIVersion     int             `yaml:"api_version"`
	Intents        []string        `yaml:"intents"`
	Shard          []int           `yaml:"shard"`
	LargeThreshold int             `yaml:"large_threshold"`
	Compress       *bool           `yaml:"compress"`
	MobileBrowser  bool            `yaml:"mobile_browser"`
	Presence       *PresenceConfig `yaml:"presence"`

	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// PresenceConfig is the presence sent in identify.
type PresenceConfig struct {
	Status   string `yaml:"status"`
	Activity string `yaml:"activity"`
	Type     int    `yaml:"type"`
}

// CacheConfig enables and sizes the entity cache.
type CacheConfig struct {
	Enabled         bool `yaml:"enabled"`
	MemberThreshold int  `yaml:"member_threshold"`
	MaxMessages     int  `yaml:"max_messages"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DebugConfig turns on frame dumps to stderr.
type DebugConfig struct {
	Frames   bool `yaml:"frames"`
	Truncate bool `yaml:"truncate"`
}

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses and validates configuration YAML.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Gateway.TimeoutRaw != "" {
		d, err := time.ParseDuration(cfg.Gateway.TimeoutRaw)
		if err != nil {
			return nil, fmt.Errorf("parsing gateway.timeout %q: %w", cfg.Gateway.TimeoutRaw, err)
		}
		cfg.Gateway.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

var envPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with the environment value,
// or an empty string when unset.
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envPattern.FindStringSubmatch(match)[1])
	})
}

var statuses = map[string]bool{
	model.StatusOnline:    true,
	model.StatusIdle:      true,
	model.StatusDND:       true,
	model.StatusInvisible: true,
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("token is required")
	}

	if _, err := model.ParseIntents(c.Gateway.Intents); err != nil {
		return fmt.Errorf("gateway.intents: %w", err)
	}

	switch len(c.Gateway.Shard) {
	case 0:
	case 2:
		id, count := c.Gateway.Shard[0], c.Gateway.Shard[1]
		if count < 1 || id < 0 || id >= count {
			return fmt.Errorf("gateway.shard [%d, %d] is out of range", id, count)
		}
	default:
		return fmt.Errorf("gateway.shard must be [shard_id, shard_count]")
	}

	if t := c.Gateway.LargeThreshold; t != 0 && (t < 50 || t > 250) {
		return fmt.Errorf("gateway.large_threshold must be between 50 and 250")
	}

	if p := c.Gateway.Presence; p != nil && p.Status != "" && !statuses[p.Status] {
		return fmt.Errorf("gateway.presence.status %q is not a known status", p.Status)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not a known level", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json", "color":
	default:
		return fmt.Errorf("logging.format %q is not a known format", c.Logging.Format)
	}

	return nil
}

// Logger builds the slog logger described by the logging section.
func (c *Config) Logger(out io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	switch c.Logging.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(out, opts))
	case "text":
		return slog.New(slog.NewTextHandler(out, opts))
	default:
		return slog.New(util.NewColorHandler(out, level))
	}
}

// Options converts the configuration to socket options. The cache, when
// enabled, is returned so callers can read it.
func (c *Config) Options(logger *slog.Logger) (*cord.WsOptions, *cache.Cache) {
	intents, _ := model.ParseIntents(c.Gateway.Intents)
	if len(c.Gateway.Intents) == 0 {
		intents = model.IntentsDefault
	}

	opts := &cord.WsOptions{
		Intents:            intents,
		APIVersion:         c.Gateway.APIVersion,
		MobileBrowser:      c.Gateway.MobileBrowser,
		LargeThreshold:     c.Gateway.LargeThreshold,
		DisableCompression: c.Gateway.Compress != nil && !*c.Gateway.Compress,
		Timeout:            c.Gateway.Timeout,
		Logger:             logger,
	}

	if len(c.Gateway.Shard) == 2 {
		opts.Shard = &[2]int{c.Gateway.Shard[0], c.Gateway.Shard[1]}
	}

	if p := c.Gateway.Presence; p != nil {
		presence := &model.UpdatePresence{Status: p.Status, Activities: []*model.Activity{}}
		if presence.Status == "" {
			presence.Status = model.StatusOnline
		}
		if p.Activity != "" {
			presence.Activities = append(presence.Activities, &model.Activity{
				Name: p.Activity,
				Type: model.ActivityType(p.Type),
			})
		}
		opts.Presence = presence
	}

	switch {
	case c.Gateway.URL != "":
		opts.Gateway = cord.StaticGateway(c.Gateway.URL)
	case c.Gateway.APIURL != "":
		opts.Gateway = cord.HTTPGatewayRetriever{
			Client:  &http.Client{Timeout: 10 * time.Second},
			BaseURL: strings.TrimSuffix(c.Gateway.APIURL, "/"),
			Token:   c.Token,
		}
	}

	if c.Debug.Frames {
		opts.Debugger = &util.StderrDebugger{Truncate: c.Debug.Truncate, Token: c.Token}
	}

	var store *cache.Cache
	if c.Cache.Enabled {
		store = cache.New(cache.Options{
			MemberThreshold: c.Cache.MemberThreshold,
			MaxMessages:     c.Cache.MaxMessages,
		})
		opts.Cache = store
	}

	return opts, store
}
