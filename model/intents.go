package model

import (
	"fmt"
	"strings"
)

// Intents is the bitset narrowing which events the server delivers.
type Intents uint64

// Gateway intents.
const (
	IntentGuilds Intents = 1 << iota
	IntentGuildMembers
	IntentGuildModeration
	IntentGuildEmojisAndStickers
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
	IntentMessageContent
	IntentGuildScheduledEvents
	_
	_
	_
	IntentAutoModerationConfiguration
	IntentAutoModerationExecution
)

// Privileged intents must be enabled for the application before use.
const IntentsPrivileged = IntentGuildMembers | IntentGuildPresences | IntentMessageContent

// IntentsDefault is every unprivileged intent.
const IntentsDefault = IntentGuilds | IntentGuildModeration | IntentGuildEmojisAndStickers |
	IntentGuildIntegrations | IntentGuildWebhooks | IntentGuildInvites |
	IntentGuildVoiceStates | IntentGuildMessages | IntentGuildMessageReactions |
	IntentGuildMessageTyping | IntentDirectMessages | IntentDirectMessageReactions |
	IntentDirectMessageTyping | IntentGuildScheduledEvents |
	IntentAutoModerationConfiguration | IntentAutoModerationExecution

var intentNames = map[string]Intents{
	"guilds":                        IntentGuilds,
	"guild_members":                 IntentGuildMembers,
	"guild_moderation":              IntentGuildModeration,
	"guild_emojis_and_stickers":     IntentGuildEmojisAndStickers,
	"guild_integrations":            IntentGuildIntegrations,
	"guild_webhooks":                IntentGuildWebhooks,
	"guild_invites":                 IntentGuildInvites,
	"guild_voice_states":            IntentGuildVoiceStates,
	"guild_presences":               IntentGuildPresences,
	"guild_messages":                IntentGuildMessages,
	"guild_message_reactions":       IntentGuildMessageReactions,
	"guild_message_typing":          IntentGuildMessageTyping,
	"direct_messages":               IntentDirectMessages,
	"direct_message_reactions":      IntentDirectMessageReactions,
	"direct_message_typing":         IntentDirectMessageTyping,
	"message_content":               IntentMessageContent,
	"guild_scheduled_events":        IntentGuildScheduledEvents,
	"auto_moderation_configuration": IntentAutoModerationConfiguration,
	"auto_moderation_execution":     IntentAutoModerationExecution,
	"default":                       IntentsDefault,
	"privileged":                    IntentsPrivileged,
}

// ParseIntents ORs together intents given by their snake_case names, e.g.
// "guild_messages". Names are case-insensitive.
func ParseIntents(names []string) (Intents, error) {
	var out Intents
	for _, name := range names {
		i, ok := intentNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("model: unknown intent %q", name)
		}
		out |= i
	}

	return out, nil
}

// Has reports whether every bit of other is set.
func (i Intents) Has(other Intents) bool { return i&other == other }
