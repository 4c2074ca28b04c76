// Command monitor connects a bot to the gateway and logs what it sees.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cord "github.com/WatchBeam/cord/v2"
	"github.com/WatchBeam/cord/v2/config"
	"github.com/WatchBeam/cord/v2/events"
	"github.com/WatchBeam/cord/v2/model"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("monitor: %s", err))
		os.Exit(1)
	}
}

func configPath() string {
	if p := os.Getenv("CORD_CONFIG"); p != "" {
		return p
	}
	return "cord.yaml"
}

// loadConfig reads the config file, falling back to DISCORD_TOKEN alone
// when there is none.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg = &config.Config{Token: os.Getenv("DISCORD_TOKEN")}
	return cfg, cfg.Validate()
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := cfg.Logger(os.Stderr)
	opts, store := cfg.Options(logger)

	fmt.Fprintln(os.Stderr, color.New(color.FgHiMagenta, color.Bold).Sprint("cord monitor"),
		color.HiBlackString("intents=%d", opts.Intents))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := cord.New(cfg.Token, opts)

	c.On(events.Ready(func(r *model.Ready) error {
		logger.Info("ready", "user", r.User.Username, "guilds", len(r.Guilds), "session", r.SessionID)
		return nil
	}))

	c.On(events.Resumed(func(*model.Resumed) error {
		logger.Info("resumed")
		return nil
	}))

	c.On(events.GuildCreate(func(g *model.GuildCreate) error {
		logger.Info("guild available", "guild", g.Name, "members", g.MemberCount)
		return nil
	}))

	c.On(events.MessageCreate(func(m *model.MessageCreate) error {
		author := "unknown"
		if m.Author != nil {
			author = m.Author.Username
		}
		logger.Info("message", "channel", m.ChannelID, "author", author, "content", m.Content)
		if store != nil {
			stats := store.Stats()
			logger.Debug("cache", "users", stats.Users, "messages", stats.Messages)
		}
		return nil
	}))

	c.On(events.PresenceUpdate(func(p *model.PresenceUpdate) error {
		logger.Debug("presence", "status", p.Status)
		return nil
	}))

	c.On(events.Exception(func(e *events.HandlerError) error {
		logger.Error("handler failed", "event", e.Event, "err", e.Err)
		return nil
	}))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		c.Close()
	}()

	for err := range c.Errs() {
		var fatal cord.FatalError
		if errors.As(err, &fatal) {
			return err
		}
		logger.Debug("socket error", "err", err)
	}

	return nil
}
