package cord

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gorilla/websocket"
)

// CloseCode is a websocket close code, including the gateway's 4xxx codes.
type CloseCode int

// Close codes interpreted by the gateway client.
const (
	CloseNormal            CloseCode = 1000
	CloseGoingAway         CloseCode = 1001
	CloseServiceRestart    CloseCode = 1012
	CloseUnknownError      CloseCode = 4000
	CloseUnknownOpcode     CloseCode = 4001
	CloseDecodeError       CloseCode = 4002
	CloseNotAuthed         CloseCode = 4003
	CloseAuthFailed        CloseCode = 4004
	CloseAlreadyAuthed     CloseCode = 4005
	CloseInvalidSequence   CloseCode = 4007
	CloseRateLimited       CloseCode = 4008
	CloseSessionTimedOut   CloseCode = 4009
	CloseInvalidShard      CloseCode = 4010
	CloseShardingNeeded    CloseCode = 4011
	CloseInvalidVersion    CloseCode = 4012
	CloseInvalidIntents    CloseCode = 4013
	CloseDisallowedIntents CloseCode = 4014
)

var closeNames = map[CloseCode]string{
	CloseNormal:            "normal closure",
	CloseGoingAway:         "going away",
	CloseServiceRestart:    "service restart",
	CloseUnknownError:      "unknown error",
	CloseUnknownOpcode:     "unknown opcode",
	CloseDecodeError:       "decode error",
	CloseNotAuthed:         "not authenticated",
	CloseAuthFailed:        "authentication failed",
	CloseAlreadyAuthed:     "already authenticated",
	CloseInvalidSequence:   "invalid seq",
	CloseRateLimited:       "rate limited",
	CloseSessionTimedOut:   "session timed out",
	CloseInvalidShard:      "invalid shard",
	CloseShardingNeeded:    "sharding required",
	CloseInvalidVersion:    "invalid API version",
	CloseInvalidIntents:    "invalid intents",
	CloseDisallowedIntents: "disallowed intents",
}

func (c CloseCode) String() string {
	if name, ok := closeNames[c]; ok {
		return strconv.Itoa(int(c)) + " " + name
	}

	return strconv.Itoa(int(c))
}

// Fatal reports whether the code reflects an authentication or
// configuration problem that reconnecting cannot fix.
func (c CloseCode) Fatal() bool {
	switch c {
	case CloseAuthFailed, CloseInvalidShard, CloseShardingNeeded,
		CloseInvalidVersion, CloseInvalidIntents, CloseDisallowedIntents:
		return true
	}

	return false
}

// A CloseError describes why a single gateway connection ended.
type CloseError struct {
	Code CloseCode
	// Invalidated is set when the server rejected the session; the next
	// connection identifies instead of resuming.
	Invalidated bool
	// Remote is set when the server closed the connection.
	Remote bool
	Err    error
}

func (c *CloseError) Error() string {
	side := "local"
	if c.Remote {
		side = "remote"
	}
	if c.Err != nil {
		return fmt.Sprintf("cord/websocket: %s close %s: %s", side, c.Code, c.Err)
	}

	return fmt.Sprintf("cord/websocket: %s close %s", side, c.Code)
}

func (c *CloseError) Unwrap() error { return c.Err }

// Resumable reports whether the session may be resumed after this close.
func (c *CloseError) Resumable() bool { return !c.Invalidated && !c.Code.Fatal() }

// closeErrorFrom classifies a transport read or dial error. Close frames from
// the server keep their code, everything else is a generic 4000.
func closeErrorFrom(err error) *CloseError {
	var ce *CloseError
	if errors.As(err, &ce) {
		return ce
	}

	var wsErr *websocket.CloseError
	if errors.As(err, &wsErr) {
		return &CloseError{Code: CloseCode(wsErr.Code), Remote: true, Err: err}
	}

	return &CloseError{Code: CloseUnknownError, Err: err}
}

// FatalError is sent down the Errs() channel when the gateway closed the
// session with a code that forbids reconnecting. The socket stops after
// sending it.
type FatalError struct {
	Code CloseCode
}

func (f FatalError) Error() string {
	return "cord/websocket: fatal close " + f.Code.String()
}
