package model

import "encoding/json"

// Hello is the first frame sent by the server on a new connection.
type Hello struct {
	HeartbeatInterval int64 `json:"heartbeat_interval"`
}

// IdentifyProperties describe the device connecting to the gateway.
type IdentifyProperties struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}

// Identify is sent on the first connection of a session.
type Identify struct {
	Token          string             `json:"token"`
	Properties     IdentifyProperties `json:"properties"`
	Intents        Intents            `json:"intents"`
	LargeThreshold int                `json:"large_threshold"`
	Shard          *[2]int            `json:"shard,omitempty"`
	Presence       *UpdatePresence    `json:"presence,omitempty"`
}

// Resume can be sent over the websocket to continue an existing session.
type Resume struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
	Sequence  uint64 `json:"seq"`
}

// Status values for UpdatePresence.
const (
	StatusOnline    = "online"
	StatusIdle      = "idle"
	StatusDND       = "dnd"
	StatusInvisible = "invisible"
	StatusOffline   = "offline"
)

// UpdatePresence changes the bot's status. It is also embedded in Identify
// as the initial presence.
type UpdatePresence struct {
	Since      *int64      `json:"since"`
	Activities []*Activity `json:"activities"`
	Status     string      `json:"status"`
	AFK        bool        `json:"afk"`
}

// MarshalJSON writes a nil Activities as an empty array.
func (p UpdatePresence) MarshalJSON() ([]byte, error) {
	type plain UpdatePresence
	if p.Activities == nil {
		p.Activities = []*Activity{}
	}
	return json.Marshal(plain(p))
}

// UpdateVoiceState joins, moves between or (with a nil ChannelID) leaves
// voice channels.
type UpdateVoiceState struct {
	GuildID   ID   `json:"guild_id"`
	ChannelID *ID  `json:"channel_id"`
	SelfMute  bool `json:"self_mute"`
	SelfDeaf  bool `json:"self_deaf"`
}

// RequestGuildMembers asks for GUILD_MEMBERS_CHUNK dispatches. Either Query
// or UserIDs selects the members; an empty query matches everyone.
type RequestGuildMembers struct {
	GuildID   ID      `json:"guild_id"`
	Query     *string `json:"query,omitempty"`
	Limit     int     `json:"limit"`
	Presences bool    `json:"presences,omitempty"`
	UserIDs   []ID    `json:"user_ids,omitempty"`
	Nonce     string  `json:"nonce,omitempty"`
}
