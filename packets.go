package cord

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// A Payload structure is the basic structure in which information is sent
// from the gateway.
type Payload struct {
	Operation Operation       `json:"op"`
	Data      json.RawMessage `json:"d"`
	// Provided only for Dispatch operations:
	Sequence *uint64 `json:"s"`
	Event    string  `json:"t"`
}

// frame is an outbound payload. Clients never send dispatches, so only the
// opcode and data are written.
type frame struct {
	Operation Operation   `json:"op"`
	Data      interface{} `json:"d"`
}

// gatewayResponse is returned from /gateway/bot on the REST API.
type gatewayResponse struct {
	URL    string `json:"url"`
	Shards int    `json:"shards"`
}

// An Operation is contained in a Payload and defines what should occur
// as a result of that payload.
type Operation uint8

const (
	// dispatches an event
	Dispatch Operation = iota
	// used for ping checking
	Heartbeat
	// used for client handshake
	Identify
	// used to update the client presence
	PresenceUpdate
	// used to join/move/leave voice channels
	VoiceStateUpdate
	_
	// used to resume a closed connection
	Resume
	// used to redirect clients to a new gateway
	Reconnect
	// used to request guild members
	RequestGuildMembers
	// used to notify client they have an invalid session id
	InvalidSession
	// sent immediately after connecting, carries the heartbeat interval
	Hello
	// acknowledges a heartbeat
	HeartbeatAck
)

var operationNames = [...]string{
	Dispatch:            "DISPATCH",
	Heartbeat:           "HEARTBEAT",
	Identify:            "IDENTIFY",
	PresenceUpdate:      "PRESENCE_UPDATE",
	VoiceStateUpdate:    "VOICE_STATE_UPDATE",
	Resume:              "RESUME",
	Reconnect:           "RECONNECT",
	RequestGuildMembers: "REQUEST_GUILD_MEMBERS",
	InvalidSession:      "INVALID_SESSION",
	Hello:               "HELLO",
	HeartbeatAck:        "HEARTBEAT_ACK",
}

func (o Operation) String() string {
	if int(o) < len(operationNames) && operationNames[o] != "" {
		return operationNames[o]
	}

	return "OP(" + strconv.Itoa(int(o)) + ")"
}

// gatewayURL appends the protocol query to a gateway base URL.
func gatewayURL(base string, version int, compress bool) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("cord/packets: bad gateway url %q: %w", base, err)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	q := u.Query()
	q.Set("v", strconv.Itoa(version))
	q.Set("encoding", "json")
	if compress {
		q.Set("compress", "zlib-stream")
	} else {
		q.Del("compress")
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
