package cord

import (
	"github.com/WatchBeam/cord/v2/events"
	"github.com/WatchBeam/cord/v2/model"
)

// Cache is the write-through store fed by dispatches. *cache.Cache
// implements it; it must be safe for use from the read loop while other
// goroutines read it.
type Cache interface {
	AddUser(u *model.User)
	AddMessage(m *model.Message)
	AddGuild(g *model.Guild)
	AddEmoji(e *model.Emoji)
	AddChannel(c *model.Channel)
	AddVoiceState(v *model.VoiceState)
	RemoveGuild(id model.ID)
}

// runCacheHooks applies READY, MESSAGE_CREATE, GUILD_CREATE, GUILD_DELETE,
// VOICE_STATE_UPDATE and CHANNEL_CREATE to the cache. Other kinds pass.
func runCacheHooks(c Cache, ev events.Event) {
	switch e := ev.(type) {
	case *model.Ready:
		c.AddUser(&e.User)
		for _, g := range e.Guilds {
			c.AddGuild(g)
		}

	case *model.MessageCreate:
		c.AddUser(e.Author)
		c.AddMessage(&e.Message)

	case *model.GuildCreate:
		c.AddGuild(&e.Guild)
		for _, ch := range e.Channels {
			c.AddChannel(ch)
		}
		for _, ch := range e.Threads {
			c.AddChannel(ch)
		}
		for _, emoji := range e.Emojis {
			c.AddEmoji(emoji)
		}

	case *model.GuildDelete:
		c.RemoveGuild(e.ID)

	case *model.VoiceStateUpdate:
		c.AddVoiceState(&e.VoiceState)

	case *model.ChannelCreate:
		c.AddChannel(&e.Channel)
	}
}
