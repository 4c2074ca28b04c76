package cord

// State is the protocol state of a Websocket.
type State int32

// Protocol states. A session moves Connecting → AwaitingHello →
// Identifying → Operational, and after a close through Resuming or
// Reconnecting back to AwaitingHello.
const (
	Disconnected State = iota
	Connecting
	AwaitingHello
	Identifying
	Resuming
	Reconnecting
	Operational
)

var stateNames = [...]string{
	Disconnected:  "disconnected",
	Connecting:    "connecting",
	AwaitingHello: "awaiting_hello",
	Identifying:   "identifying",
	Resuming:      "resuming",
	Reconnecting:  "reconnecting",
	Operational:   "operational",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "unknown"
}
