package cord

import "bytes"

// A Debugger can be passed into the options to be notified of all socket
// sends and receives.
type Debugger interface {
	// Incoming is called with the raw packet string sent to cord, after
	// inflation for zlib-stream frames.
	Incoming(b []byte)

	// Outgoing is called with data when a packet is sent on cord. The bot
	// token is redacted before the call.
	Outgoing(b []byte)

	// Error is called when an error occurs on the socket. The error
	// is ALSO sent down the Errs() channel.
	Error(error)
}

// NilDebugger is the default debugger with noops.
type NilDebugger struct{}

// Incoming implements Debugger.Incoming
func (n NilDebugger) Incoming(b []byte) {}

// Outgoing implements Debugger.Outgoing
func (n NilDebugger) Outgoing(b []byte) {}

// Error implements Debugger.Error
func (n NilDebugger) Error(e error) {}

var redacted = []byte("[redacted]")

// redact replaces every occurrence of the token in b.
func redact(b []byte, token string) []byte {
	if token == "" || !bytes.Contains(b, []byte(token)) {
		return b
	}

	return bytes.ReplaceAll(b, []byte(token), redacted)
}
