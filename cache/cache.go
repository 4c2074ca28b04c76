// Package cache is an in-memory entity store fed by the gateway's cache
// hooks. It is safe for concurrent use; the gateway writes to it from its read
// loop while application code reads.
package cache

import (
	"container/list"
	"sync"

	"github.com/WatchBeam/cord/v2/model"
)

// Options configure a Cache. Zero values select the defaults.
type Options struct {
	// Guilds whose member_count is below this threshold have their members
	// ingested as users. Defaults to 250, the identify large_threshold.
	MemberThreshold int
	// MaxMessages bounds the message store; the oldest message is evicted
	// first. Defaults to 1000.
	MaxMessages int
}

// Cache stores the users, messages, guilds, channels, emoji and voice states
// observed on the gateway.
type Cache struct {
	mu   sync.RWMutex
	opts Options

	users    map[model.ID]*model.User
	guilds   map[model.ID]*model.Guild
	channels map[model.ID]*model.Channel
	emojis   map[model.ID]*model.Emoji

	messages map[model.ID]*list.Element
	order    *list.List // of *model.Message, oldest at front
}

// New creates an empty cache.
func New(opts Options) *Cache {
	if opts.MemberThreshold == 0 {
		opts.MemberThreshold = 250
	}
	if opts.MaxMessages == 0 {
		opts.MaxMessages = 1000
	}

	return &Cache{
		opts:     opts,
		users:    make(map[model.ID]*model.User),
		guilds:   make(map[model.ID]*model.Guild),
		channels: make(map[model.ID]*model.Channel),
		emojis:   make(map[model.ID]*model.Emoji),
		messages: make(map[model.ID]*list.Element),
		order:    list.New(),
	}
}

// AddUser inserts or replaces a user.
func (c *Cache) AddUser(u *model.User) {
	if u == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.ID] = u
}

// AddMessage inserts or replaces a message, evicting the oldest message
// when the store is full.
func (c *Cache) AddMessage(m *model.Message) {
	if m == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.messages[m.ID]; ok {
		el.Value = m
		c.order.MoveToBack(el)
		return
	}

	if len(c.messages) >= c.opts.MaxMessages {
		c.evictOldestLocked()
	}
	c.messages[m.ID] = c.order.PushBack(m)
}

// evictOldestLocked drops the oldest message. Must be called with mu held.
func (c *Cache) evictOldestLocked() {
	front := c.order.Front()
	if front == nil {
		return
	}

	msg, _ := front.Value.(*model.Message)
	c.order.Remove(front)
	delete(c.messages, msg.ID)
}

// AddGuild inserts or replaces a guild. Members of guilds below the member
// threshold are stored as users. Channels and emoji are added separately.
func (c *Cache) AddGuild(g *model.Guild) {
	if g == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.guilds[g.ID] = g
	if g.MemberCount < c.opts.MemberThreshold {
		for _, m := range g.Members {
			if m.User != nil {
				c.users[m.User.ID] = m.User
			}
		}
	}
}

// RemoveGuild deletes a guild and the channels that belong to it.
func (c *Cache) RemoveGuild(id model.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.guilds, id)
	for cid, ch := range c.channels {
		if ch.GuildID != nil && *ch.GuildID == id {
			delete(c.channels, cid)
		}
	}
}

// AddEmoji inserts or replaces a custom emoji. Unicode emoji have no id and
// are not stored.
func (c *Cache) AddEmoji(e *model.Emoji) {
	if e == nil || e.ID == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.emojis[*e.ID] = e
}

// AddChannel inserts or replaces a channel.
func (c *Cache) AddChannel(ch *model.Channel) {
	if ch == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels[ch.ID] = ch
}

// AddVoiceState records a voice state on its owning guild. A state for a
// user not yet present is appended; an existing one is replaced, or removed
// when the user left voice. States for unknown guilds are dropped.
//
// Guilds already handed out are never modified: the update is applied to a
// copy which replaces the cached guild.
func (c *Cache) AddVoiceState(v *model.VoiceState) {
	if v == nil || v.GuildID == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	g, ok := c.guilds[*v.GuildID]
	if !ok {
		return
	}

	states := make([]*model.VoiceState, 0, len(g.VoiceStates)+1)
	found := false
	for _, existing := range g.VoiceStates {
		if existing.UserID != v.UserID {
			states = append(states, existing)
			continue
		}

		found = true
		if v.ChannelID != nil {
			states = append(states, v)
		}
	}

	if !found {
		if v.ChannelID == nil {
			return
		}
		states = append(states, v)
	}

	next := *g
	next.VoiceStates = states
	c.guilds[g.ID] = &next
}

// User returns a cached user.
func (c *Cache) User(id model.ID) (*model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.users[id]
	return u, ok
}

// Message returns a cached message.
func (c *Cache) Message(id model.ID) (*model.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.messages[id]
	if !ok {
		return nil, false
	}

	return el.Value.(*model.Message), true
}

// Guild returns a cached guild.
func (c *Cache) Guild(id model.ID) (*model.Guild, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	g, ok := c.guilds[id]
	return g, ok
}

// Channel returns a cached channel.
func (c *Cache) Channel(id model.ID) (*model.Channel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ch, ok := c.channels[id]
	return ch, ok
}

// Emoji returns a cached custom emoji.
func (c *Cache) Emoji(id model.ID) (*model.Emoji, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.emojis[id]
	return e, ok
}

// VoiceState returns the voice state of a user in a guild.
func (c *Cache) VoiceState(guildID, userID model.ID) (*model.VoiceState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	g, ok := c.guilds[guildID]
	if !ok {
		return nil, false
	}
	for _, v := range g.VoiceStates {
		if v.UserID == userID {
			return v, true
		}
	}

	return nil, false
}

// Stats counts the cached entities.
type Stats struct {
	Users, Messages, Guilds, Channels, Emojis int
}

// Stats returns the number of cached entities of each type.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Users:    len(c.users),
		Messages: len(c.messages),
		Guilds:   len(c.guilds),
		Channels: len(c.channels),
		Emojis:   len(c.emojis),
	}
}
