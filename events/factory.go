package events

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/WatchBeam/cord/v2/model"
)

// KindException is the internal event kind carrying handler failures.
const KindException = "EXCEPTION"

// HandlerError is dispatched as an EXCEPTION event when a handler fails.
type HandlerError struct {
	// Event is the kind of the event whose handler failed.
	Event string
	Err   error
}

// Kind implements Event.
func (*HandlerError) Kind() string { return KindException }

func (h *HandlerError) Error() string {
	return fmt.Sprintf("events: %s handler: %s", h.Event, h.Err)
}

func (h *HandlerError) Unwrap() error { return h.Err }

// ErrUnknownKind is returned by Decode for event kinds without a schema.
var ErrUnknownKind = errors.New("events: unknown event kind")

// A normalizer fills documented defaults after decoding.
type normalizer interface {
	Normalize()
}

var factories = map[string]func() Event{
	model.KindReady:                 func() Event { return new(model.Ready) },
	model.KindResumed:               func() Event { return new(model.Resumed) },
	model.KindMessageCreate:         func() Event { return new(model.MessageCreate) },
	model.KindMessageUpdate:         func() Event { return new(model.MessageUpdate) },
	model.KindMessageDelete:         func() Event { return new(model.MessageDelete) },
	model.KindMessageReactionAdd:    func() Event { return new(model.MessageReactionAdd) },
	model.KindMessageReactionRemove: func() Event { return new(model.MessageReactionRemove) },
	model.KindGuildCreate:           func() Event { return new(model.GuildCreate) },
	model.KindGuildUpdate:           func() Event { return new(model.GuildUpdate) },
	model.KindGuildDelete:           func() Event { return new(model.GuildDelete) },
	model.KindGuildMemberAdd:        func() Event { return new(model.GuildMemberAdd) },
	model.KindGuildMemberRemove:     func() Event { return new(model.GuildMemberRemove) },
	model.KindGuildMemberUpdate:     func() Event { return new(model.GuildMemberUpdate) },
	model.KindGuildMembersChunk:     func() Event { return new(model.GuildMembersChunk) },
	model.KindChannelCreate:         func() Event { return new(model.ChannelCreate) },
	model.KindChannelUpdate:         func() Event { return new(model.ChannelUpdate) },
	model.KindChannelDelete:         func() Event { return new(model.ChannelDelete) },
	model.KindInteractionCreate:     func() Event { return new(model.InteractionCreate) },
	model.KindVoiceStateUpdate:      func() Event { return new(model.VoiceStateUpdate) },
	model.KindVoiceServerUpdate:     func() Event { return new(model.VoiceServerUpdate) },
	model.KindPresenceUpdate:        func() Event { return new(model.PresenceUpdate) },
	model.KindTypingStart:           func() Event { return new(model.TypingStart) },
}

// Known reports whether kind has a schema.
func Known(kind string) bool {
	_, ok := factories[kind]
	return ok
}

// Decode maps the "d" payload of a DISPATCH into the typed event for kind.
// Unknown fields are ignored and missing ones keep their zero value or the
// default documented on the type's Normalize method.
func Decode(kind string, data []byte) (Event, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	ev := factory()
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, ev); err != nil {
			return nil, fmt.Errorf("events: decoding %s: %w", kind, err)
		}
	}
	if n, ok := ev.(normalizer); ok {
		n.Normalize()
	}

	return ev, nil
}
