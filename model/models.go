package model

import (
	"encoding/json"
	"time"

	"github.com/WatchBeam/cord/v2/snowflake"
)

// ID is a platform snowflake.
type ID = snowflake.ID

// A User stores all data for an individual user.
type User struct {
	ID            ID      `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	GlobalName    *string `json:"global_name"`
	Avatar        *string `json:"avatar"`
	Bot           bool    `json:"bot"`
	System        bool    `json:"system"`
	PublicFlags   int     `json:"public_flags"`
}

// A Member stores a user's membership in a guild. The user is composed
// rather than extended.
type Member struct {
	GuildID  *ID       `json:"guild_id,omitempty"`
	User     *User     `json:"user"`
	Nick     *string   `json:"nick"`
	Avatar   *string   `json:"avatar"`
	Roles    []ID      `json:"roles"`
	JoinedAt time.Time `json:"joined_at"`
	Deaf     bool      `json:"deaf"`
	Mute     bool      `json:"mute"`
	Pending  bool      `json:"pending"`
}

// A Role stores information about guild member roles.
type Role struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Hoist       bool   `json:"hoist"`
	Position    int    `json:"position"`
	Permissions string `json:"permissions"`
	Managed     bool   `json:"managed"`
	Mentionable bool   `json:"mentionable"`
}

// Emoji holds data for custom and unicode emoji. Unicode emoji have no ID.
type Emoji struct {
	ID            *ID    `json:"id"`
	Name          string `json:"name"`
	Roles         []ID   `json:"roles,omitempty"`
	RequireColons bool   `json:"require_colons,omitempty"`
	Managed       bool   `json:"managed,omitempty"`
	Animated      bool   `json:"animated,omitempty"`
	Available     bool   `json:"available,omitempty"`
}

// ChannelType enumerates the kinds of channel.
type ChannelType int

// Channel types.
const (
	ChannelGuildText ChannelType = iota
	ChannelDM
	ChannelGuildVoice
	ChannelGroupDM
	ChannelGuildCategory
	ChannelGuildAnnouncement

	ChannelAnnouncementThread ChannelType = 10
	ChannelPublicThread       ChannelType = 11
	ChannelPrivateThread      ChannelType = 12
	ChannelGuildStageVoice    ChannelType = 13
	ChannelGuildForum         ChannelType = 15
)

// A PermissionOverwrite holds permission overwrite data for a Channel
type PermissionOverwrite struct {
	ID    ID     `json:"id"`
	Type  int    `json:"type"`
	Allow string `json:"allow"`
	Deny  string `json:"deny"`
}

// A Channel holds all data related to an individual channel.
type Channel struct {
	ID                   ID                     `json:"id"`
	Type                 ChannelType            `json:"type"`
	GuildID              *ID                    `json:"guild_id,omitempty"`
	Position             int                    `json:"position"`
	Name                 string                 `json:"name"`
	Topic                *string                `json:"topic"`
	NSFW                 bool                   `json:"nsfw"`
	LastMessageID        *ID                    `json:"last_message_id"`
	Bitrate              int                    `json:"bitrate,omitempty"`
	UserLimit            int                    `json:"user_limit,omitempty"`
	ParentID             *ID                    `json:"parent_id"`
	Recipients           []*User                `json:"recipients,omitempty"`
	PermissionOverwrites []*PermissionOverwrite `json:"permission_overwrites,omitempty"`
}

// A Guild holds all data related to a specific guild. Guilds are also
// sometimes referred to as Servers in the clients.
type Guild struct {
	ID          ID            `json:"id"`
	Name        string        `json:"name"`
	Icon        *string       `json:"icon"`
	OwnerID     ID            `json:"owner_id"`
	Unavailable bool          `json:"unavailable"`
	Large       bool          `json:"large"`
	MemberCount int           `json:"member_count"`
	Roles       []*Role       `json:"roles"`
	Emojis      []*Emoji      `json:"emojis"`
	Members     []*Member     `json:"members"`
	Channels    []*Channel    `json:"channels"`
	Threads     []*Channel    `json:"threads"`
	VoiceStates []*VoiceState `json:"voice_states"`
	Presences   []*Presence   `json:"presences"`
}

// A VoiceState stores a user's connection to a voice channel. A nil
// ChannelID means the user left voice.
type VoiceState struct {
	GuildID    *ID     `json:"guild_id,omitempty"`
	ChannelID  *ID     `json:"channel_id"`
	UserID     ID      `json:"user_id"`
	Member     *Member `json:"member,omitempty"`
	SessionID  string  `json:"session_id"`
	Deaf       bool    `json:"deaf"`
	Mute       bool    `json:"mute"`
	SelfDeaf   bool    `json:"self_deaf"`
	SelfMute   bool    `json:"self_mute"`
	SelfStream bool    `json:"self_stream"`
	SelfVideo  bool    `json:"self_video"`
	Suppress   bool    `json:"suppress"`
}

// ActivityType enumerates presence activity kinds.
type ActivityType int

// Activity types.
const (
	ActivityPlaying ActivityType = iota
	ActivityStreaming
	ActivityListening
	ActivityWatching
	ActivityCustom
	ActivityCompeting
)

// An Activity is shown under a user's name.
type Activity struct {
	Name string       `json:"name"`
	Type ActivityType `json:"type"`
	URL  *string      `json:"url,omitempty"`
}

// A Presence stores the status and activities of a guild member.
type Presence struct {
	User       *User       `json:"user"`
	GuildID    *ID         `json:"guild_id,omitempty"`
	Status     string      `json:"status"`
	Activities []*Activity `json:"activities"`
}

// An Attachment stores data for message attachments.
type Attachment struct {
	ID       ID     `json:"id"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Width    *int   `json:"width"`
	Height   *int   `json:"height"`
}

// An EmbedField is one name/value row of an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// An Embed stores data for message embeds. Building embeds is left to the
// REST layer; the gateway only carries them.
type Embed struct {
	Type        string        `json:"type,omitempty"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	URL         string        `json:"url,omitempty"`
	Color       int           `json:"color,omitempty"`
	Fields      []*EmbedField `json:"fields,omitempty"`
}

// A Reaction is an emoji count on a message.
type Reaction struct {
	Count int   `json:"count"`
	Me    bool  `json:"me"`
	Emoji Emoji `json:"emoji"`
}

// A MessageReference points at another message by id.
type MessageReference struct {
	MessageID *ID `json:"message_id,omitempty"`
	ChannelID *ID `json:"channel_id,omitempty"`
	GuildID   *ID `json:"guild_id,omitempty"`
}

// MessageInteraction is attached to messages sent in response to an
// interaction. It refers to the interaction by id.
type MessageInteraction struct {
	ID   ID              `json:"id"`
	Type InteractionType `json:"type"`
	Name string          `json:"name"`
	User *User           `json:"user"`
}

// A Message stores all data related to a specific message.
type Message struct {
	ID               ID                  `json:"id"`
	ChannelID        ID                  `json:"channel_id"`
	GuildID          *ID                 `json:"guild_id,omitempty"`
	Author           *User               `json:"author"`
	Member           *Member             `json:"member,omitempty"`
	Content          string              `json:"content"`
	Timestamp        time.Time           `json:"timestamp"`
	EditedTimestamp  *time.Time          `json:"edited_timestamp"`
	TTS              bool                `json:"tts"`
	MentionEveryone  bool                `json:"mention_everyone"`
	Mentions         []*User             `json:"mentions"`
	MentionRoles     []ID                `json:"mention_roles"`
	Attachments      []*Attachment       `json:"attachments"`
	Embeds           []*Embed            `json:"embeds"`
	Reactions        []*Reaction         `json:"reactions,omitempty"`
	Pinned           bool                `json:"pinned"`
	WebhookID        *ID                 `json:"webhook_id,omitempty"`
	Type             int                 `json:"type"`
	MessageReference *MessageReference   `json:"message_reference,omitempty"`
	Interaction      *MessageInteraction `json:"interaction,omitempty"`
}

// InteractionType enumerates interaction kinds.
type InteractionType int

// Interaction types.
const (
	InteractionPing InteractionType = iota + 1
	InteractionApplicationCommand
	InteractionMessageComponent
	InteractionAutocomplete
	InteractionModalSubmit
)

// An InteractionOption is one resolved option of a command invocation.
// Values are left raw; the command layer decides how to read them.
type InteractionOption struct {
	Name    string               `json:"name"`
	Type    int                  `json:"type"`
	Value   json.RawMessage      `json:"value,omitempty"`
	Focused bool                 `json:"focused,omitempty"`
	Options []*InteractionOption `json:"options,omitempty"`
}

// InteractionData is the command or component payload of an interaction.
type InteractionData struct {
	ID            *ID                  `json:"id,omitempty"`
	Name          string               `json:"name,omitempty"`
	Type          int                  `json:"type,omitempty"`
	Options       []*InteractionOption `json:"options,omitempty"`
	CustomID      string               `json:"custom_id,omitempty"`
	ComponentType int                  `json:"component_type,omitempty"`
	Values        []string             `json:"values,omitempty"`
	TargetID      *ID                  `json:"target_id,omitempty"`
}

// An Interaction is a slash command, component click or modal submit.
// Messages it references are held by value and refer back by id only.
type Interaction struct {
	ID            ID               `json:"id"`
	ApplicationID ID               `json:"application_id"`
	Type          InteractionType  `json:"type"`
	Data          *InteractionData `json:"data,omitempty"`
	GuildID       *ID              `json:"guild_id,omitempty"`
	ChannelID     *ID              `json:"channel_id,omitempty"`
	Member        *Member          `json:"member,omitempty"`
	User          *User            `json:"user,omitempty"`
	Token         string           `json:"token"`
	Version       int              `json:"version"`
	Message       *Message         `json:"message,omitempty"`
	Locale        string           `json:"locale,omitempty"`
	GuildLocale   string           `json:"guild_locale,omitempty"`
}

// Invoker returns the user who triggered the interaction, whether it came
// from a guild (Member) or a direct message (User).
func (i *Interaction) Invoker() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}

	return i.User
}
