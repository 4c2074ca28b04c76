package events

import "github.com/WatchBeam/cord/v2/model"

// Ready returns a handler for READY.
func Ready(fn func(*model.Ready) error) Handler { return Func(fn) }

// Resumed returns a handler for RESUMED.
func Resumed(fn func(*model.Resumed) error) Handler { return Func(fn) }

// MessageCreate returns a handler for MESSAGE_CREATE.
func MessageCreate(fn func(*model.MessageCreate) error) Handler { return Func(fn) }

// MessageUpdate returns a handler for MESSAGE_UPDATE.
func MessageUpdate(fn func(*model.MessageUpdate) error) Handler { return Func(fn) }

// MessageDelete returns a handler for MESSAGE_DELETE.
func MessageDelete(fn func(*model.MessageDelete) error) Handler { return Func(fn) }

// MessageReactionAdd returns a handler for MESSAGE_REACTION_ADD.
func MessageReactionAdd(fn func(*model.MessageReactionAdd) error) Handler { return Func(fn) }

// MessageReactionRemove returns a handler for MESSAGE_REACTION_REMOVE.
func MessageReactionRemove(fn func(*model.MessageReactionRemove) error) Handler { return Func(fn) }

// GuildCreate returns a handler for GUILD_CREATE.
func GuildCreate(fn func(*model.GuildCreate) error) Handler { return Func(fn) }

// GuildUpdate returns a handler for GUILD_UPDATE.
func GuildUpdate(fn func(*model.GuildUpdate) error) Handler { return Func(fn) }

// GuildDelete returns a handler for GUILD_DELETE.
func GuildDelete(fn func(*model.GuildDelete) error) Handler { return Func(fn) }

// GuildMemberAdd returns a handler for GUILD_MEMBER_ADD.
func GuildMemberAdd(fn func(*model.GuildMemberAdd) error) Handler { return Func(fn) }

// GuildMemberRemove returns a handler for GUILD_MEMBER_REMOVE.
func GuildMemberRemove(fn func(*model.GuildMemberRemove) error) Handler { return Func(fn) }

// GuildMemberUpdate returns a handler for GUILD_MEMBER_UPDATE.
func GuildMemberUpdate(fn func(*model.GuildMemberUpdate) error) Handler { return Func(fn) }

// GuildMembersChunk returns a handler for GUILD_MEMBERS_CHUNK.
func GuildMembersChunk(fn func(*model.GuildMembersChunk) error) Handler { return Func(fn) }

// ChannelCreate returns a handler for CHANNEL_CREATE.
func ChannelCreate(fn func(*model.ChannelCreate) error) Handler { return Func(fn) }

// ChannelUpdate returns a handler for CHANNEL_UPDATE.
func ChannelUpdate(fn func(*model.ChannelUpdate) error) Handler { return Func(fn) }

// ChannelDelete returns a handler for CHANNEL_DELETE.
func ChannelDelete(fn func(*model.ChannelDelete) error) Handler { return Func(fn) }

// InteractionCreate returns a handler for INTERACTION_CREATE.
func InteractionCreate(fn func(*model.InteractionCreate) error) Handler { return Func(fn) }

// VoiceStateUpdate returns a handler for VOICE_STATE_UPDATE.
func VoiceStateUpdate(fn func(*model.VoiceStateUpdate) error) Handler { return Func(fn) }

// VoiceServerUpdate returns a handler for VOICE_SERVER_UPDATE.
func VoiceServerUpdate(fn func(*model.VoiceServerUpdate) error) Handler { return Func(fn) }

// PresenceUpdate returns a handler for PRESENCE_UPDATE.
func PresenceUpdate(fn func(*model.PresenceUpdate) error) Handler { return Func(fn) }

// TypingStart returns a handler for TYPING_START.
func TypingStart(fn func(*model.TypingStart) error) Handler { return Func(fn) }

// Exception returns a handler for errors raised by other handlers.
func Exception(fn func(*HandlerError) error) Handler { return Func(fn) }
