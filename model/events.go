package model

// Dispatch event kinds, the "t" key of DISPATCH payloads.
const (
	KindReady                 = "READY"
	KindResumed               = "RESUMED"
	KindMessageCreate         = "MESSAGE_CREATE"
	KindMessageUpdate         = "MESSAGE_UPDATE"
	KindMessageDelete         = "MESSAGE_DELETE"
	KindMessageReactionAdd    = "MESSAGE_REACTION_ADD"
	KindMessageReactionRemove = "MESSAGE_REACTION_REMOVE"
	KindGuildCreate           = "GUILD_CREATE"
	KindGuildUpdate           = "GUILD_UPDATE"
	KindGuildDelete           = "GUILD_DELETE"
	KindGuildMemberAdd        = "GUILD_MEMBER_ADD"
	KindGuildMemberRemove     = "GUILD_MEMBER_REMOVE"
	KindGuildMemberUpdate     = "GUILD_MEMBER_UPDATE"
	KindGuildMembersChunk     = "GUILD_MEMBERS_CHUNK"
	KindChannelCreate         = "CHANNEL_CREATE"
	KindChannelUpdate         = "CHANNEL_UPDATE"
	KindChannelDelete         = "CHANNEL_DELETE"
	KindInteractionCreate     = "INTERACTION_CREATE"
	KindVoiceStateUpdate      = "VOICE_STATE_UPDATE"
	KindVoiceServerUpdate     = "VOICE_SERVER_UPDATE"
	KindPresenceUpdate        = "PRESENCE_UPDATE"
	KindTypingStart           = "TYPING_START"
)

// Application is the partial application object sent in READY.
type Application struct {
	ID    ID  `json:"id"`
	Flags int `json:"flags"`
}

// A Ready stores all data for the websocket READY event.
type Ready struct {
	Version          int         `json:"v"`
	User             User        `json:"user"`
	Guilds           []*Guild    `json:"guilds"`
	SessionID        string      `json:"session_id"`
	ResumeGatewayURL string      `json:"resume_gateway_url"`
	Shard            []int       `json:"shard,omitempty"`
	Application      Application `json:"application"`
}

// Kind implements events.Event.
func (*Ready) Kind() string { return KindReady }

// Normalize marks READY guilds as unavailable; they are stubs until their
// GUILD_CREATE arrives.
func (r *Ready) Normalize() {
	for _, g := range r.Guilds {
		g.Unavailable = true
	}
}

// Resumed is received after a successful Resume packet is sent and all
// missed events have been replayed.
type Resumed struct{}

// Kind implements events.Event.
func (*Resumed) Kind() string { return KindResumed }

// MessageCreate is dispatched when a message is sent.
type MessageCreate struct{ Message }

// Kind implements events.Event.
func (*MessageCreate) Kind() string { return KindMessageCreate }

// Normalize attaches the author to a partial guild member, which the server
// sends without its user.
func (m *MessageCreate) Normalize() {
	if m.Member != nil && m.Member.User == nil {
		m.Member.User = m.Author
	}
}

// MessageUpdate is dispatched when a message is edited. Fields other than
// the ids may be absent.
type MessageUpdate struct{ Message }

// Kind implements events.Event.
func (*MessageUpdate) Kind() string { return KindMessageUpdate }

// MessageDelete is dispatched when a message is deleted.
type MessageDelete struct {
	ID        ID  `json:"id"`
	ChannelID ID  `json:"channel_id"`
	GuildID   *ID `json:"guild_id,omitempty"`
}

// Kind implements events.Event.
func (*MessageDelete) Kind() string { return KindMessageDelete }

// MessageReaction is the payload of reaction add and remove events.
type MessageReaction struct {
	UserID    ID      `json:"user_id"`
	ChannelID ID      `json:"channel_id"`
	MessageID ID      `json:"message_id"`
	GuildID   *ID     `json:"guild_id,omitempty"`
	Member    *Member `json:"member,omitempty"`
	Emoji     Emoji   `json:"emoji"`
}

// MessageReactionAdd is dispatched when a user reacts to a message.
type MessageReactionAdd struct{ MessageReaction }

// Kind implements events.Event.
func (*MessageReactionAdd) Kind() string { return KindMessageReactionAdd }

// MessageReactionRemove is dispatched when a reaction is removed.
type MessageReactionRemove struct{ MessageReaction }

// Kind implements events.Event.
func (*MessageReactionRemove) Kind() string { return KindMessageReactionRemove }

// GuildCreate is dispatched when a guild becomes available, lazily after
// READY or when the bot joins.
type GuildCreate struct{ Guild }

// Kind implements events.Event.
func (*GuildCreate) Kind() string { return KindGuildCreate }

// Normalize fills the guild id into nested records, which the server omits,
// and defaults the member count to the number of members delivered.
func (g *GuildCreate) Normalize() {
	id := g.ID
	for _, c := range g.Channels {
		c.GuildID = &id
	}
	for _, c := range g.Threads {
		c.GuildID = &id
	}
	for _, m := range g.Members {
		m.GuildID = &id
	}
	for _, v := range g.VoiceStates {
		v.GuildID = &id
	}
	if g.MemberCount == 0 {
		g.MemberCount = len(g.Members)
	}
}

// GuildUpdate is dispatched when guild settings change.
type GuildUpdate struct{ Guild }

// Kind implements events.Event.
func (*GuildUpdate) Kind() string { return KindGuildUpdate }

// GuildDelete is dispatched when the bot leaves a guild or it goes
// unavailable during an outage.
type GuildDelete struct {
	ID          ID   `json:"id"`
	Unavailable bool `json:"unavailable"`
}

// Kind implements events.Event.
func (*GuildDelete) Kind() string { return KindGuildDelete }

// GuildMemberAdd is dispatched when a user joins a guild.
type GuildMemberAdd struct{ Member }

// Kind implements events.Event.
func (*GuildMemberAdd) Kind() string { return KindGuildMemberAdd }

// GuildMemberUpdate is dispatched when a member changes.
type GuildMemberUpdate struct{ Member }

// Kind implements events.Event.
func (*GuildMemberUpdate) Kind() string { return KindGuildMemberUpdate }

// GuildMemberRemove is dispatched when a user leaves or is removed.
type GuildMemberRemove struct {
	GuildID ID    `json:"guild_id"`
	User    *User `json:"user"`
}

// Kind implements events.Event.
func (*GuildMemberRemove) Kind() string { return KindGuildMemberRemove }

// GuildMembersChunk answers a RequestGuildMembers command.
type GuildMembersChunk struct {
	GuildID    ID          `json:"guild_id"`
	Members    []*Member   `json:"members"`
	ChunkIndex int         `json:"chunk_index"`
	ChunkCount int         `json:"chunk_count"`
	NotFound   []ID        `json:"not_found,omitempty"`
	Presences  []*Presence `json:"presences,omitempty"`
	Nonce      string      `json:"nonce,omitempty"`
}

// Kind implements events.Event.
func (*GuildMembersChunk) Kind() string { return KindGuildMembersChunk }

// Normalize fills the guild id into each member.
func (g *GuildMembersChunk) Normalize() {
	id := g.GuildID
	for _, m := range g.Members {
		m.GuildID = &id
	}
}

// ChannelCreate is dispatched when a channel is created.
type ChannelCreate struct{ Channel }

// Kind implements events.Event.
func (*ChannelCreate) Kind() string { return KindChannelCreate }

// ChannelUpdate is dispatched when a channel changes.
type ChannelUpdate struct{ Channel }

// Kind implements events.Event.
func (*ChannelUpdate) Kind() string { return KindChannelUpdate }

// ChannelDelete is dispatched when a channel is deleted.
type ChannelDelete struct{ Channel }

// Kind implements events.Event.
func (*ChannelDelete) Kind() string { return KindChannelDelete }

// InteractionCreate is dispatched when a user invokes a command or
// component.
type InteractionCreate struct{ Interaction }

// Kind implements events.Event.
func (*InteractionCreate) Kind() string { return KindInteractionCreate }

// VoiceStateUpdate is dispatched when someone joins, leaves or moves
// between voice channels.
type VoiceStateUpdate struct{ VoiceState }

// Kind implements events.Event.
func (*VoiceStateUpdate) Kind() string { return KindVoiceStateUpdate }

// A VoiceServerUpdate stores the data received during the Voice Server
// Update websocket event. It is used when connecting to voice; the voice
// connection itself lives outside this package.
type VoiceServerUpdate struct {
	Token    string  `json:"token"`
	GuildID  ID      `json:"guild_id"`
	Endpoint *string `json:"endpoint"`
}

// Kind implements events.Event.
func (*VoiceServerUpdate) Kind() string { return KindVoiceServerUpdate }

// PresenceUpdate is dispatched when a member's presence changes.
type PresenceUpdate struct{ Presence }

// Kind implements events.Event.
func (*PresenceUpdate) Kind() string { return KindPresenceUpdate }

// A TypingStart stores data for the typing start websocket event.
type TypingStart struct {
	ChannelID ID      `json:"channel_id"`
	GuildID   *ID     `json:"guild_id,omitempty"`
	UserID    ID      `json:"user_id"`
	Timestamp int64   `json:"timestamp"`
	Member    *Member `json:"member,omitempty"`
}

// Kind implements events.Event.
func (*TypingStart) Kind() string { return KindTypingStart }
