package cord

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/WatchBeam/cord/v2/events"
	"github.com/WatchBeam/cord/v2/model"
	"github.com/google/uuid"
)

var (
	// ErrClosed is returned from Send after the socket is closed.
	ErrClosed = errors.New("cord/websocket: socket closed")
	// ErrNotConnected is returned from Send while no session is
	// operational, for instance between a disconnect and the next READY.
	ErrNotConnected = errors.New("cord/websocket: not connected")
	// ErrConnectionClosed fails sends whose connection ended before the
	// frame was written.
	ErrConnectionClosed = errors.New("cord/websocket: connection closed before send")
	// ErrGaveUp is sent down Errs() when the Backoff stops the reconnect
	// loop.
	ErrGaveUp = errors.New("cord/websocket: backoff gave up reconnecting")
)

// Handler defines a type that can be passed into a Socket to listen for
// an event being broadcasted. See the events package for typed
// constructors.
type Handler = events.Handler

// The Socket represents a connection to a Discord server. All methods on
// the socket are safe for concurrent use.
type Socket interface {
	// Send dispatches an event down the Discord socket. It blocks until
	// the frame is written or the context is done. A frame whose context
	// expires may still be written later.
	Send(ctx context.Context, op Operation, data interface{}) error

	// UpdatePresence sends an op 3 presence update.
	UpdatePresence(ctx context.Context, p *model.UpdatePresence) error

	// UpdateVoiceState sends an op 4 voice state update.
	UpdateVoiceState(ctx context.Context, v *model.UpdateVoiceState) error

	// RequestGuildMembers sends an op 8. A nonce is generated when the
	// request has none; it is echoed in the GUILD_MEMBERS_CHUNK events.
	RequestGuildMembers(ctx context.Context, r *model.RequestGuildMembers) (nonce string, err error)

	// On attaches a handler to an event.
	On(h Handler)

	// On attaches a handler that's called once when an event happens.
	Once(h Handler)

	// State returns the current connection state.
	State() State

	// Latency returns the round trip of the last acknowledged heartbeat.
	Latency() time.Duration

	// Errs returns a channel of errors which may occur asynchronously
	// on the websocket. It is closed once the socket stops.
	Errs() <-chan error

	// Done is closed once the socket stopped, after Close or a fatal
	// close code.
	Done() <-chan struct{}

	// Frees resources associated with the socket. Close does not wait;
	// wait on Done() for that. It may be called from a handler.
	Close() error
}

// New creates a connection to the Discord servers. Options may be nil if
// you want to use the defaults.
func New(token string, options *WsOptions) Socket {
	if options == nil {
		options = &WsOptions{}
	}
	options.fillDefaults(token)

	ctx, cancel := context.WithCancel(context.Background())
	ws := &Websocket{
		opts:   options,
		log:    options.Logger.With("component", "cord"),
		errs:   make(chan error, 16),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	if options.Shard != nil {
		ws.log = ws.log.With("shard", options.Shard[0])
	}
	ws.events = newRouter(options.Cache, ws.log, ws.sendErr)

	ws.start()

	return ws
}

// Send implements Socket.Send
func (w *Websocket) Send(ctx context.Context, op Operation, data interface{}) error {
	if w.ctx.Err() != nil {
		return ErrClosed
	}

	c := w.conn.Load()
	if c == nil || !c.operational.Load() {
		return ErrNotConnected
	}

	b, err := json.Marshal(&frame{Operation: op, Data: data})
	if err != nil {
		return err
	}

	msg := &queuedMessage{data: b, result: make(chan error, 1)}
	if err := c.queue.Push(msg); err != nil {
		return err
	}

	select {
	case err := <-msg.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdatePresence implements Socket.UpdatePresence
func (w *Websocket) UpdatePresence(ctx context.Context, p *model.UpdatePresence) error {
	return w.Send(ctx, PresenceUpdate, p)
}

// UpdateVoiceState implements Socket.UpdateVoiceState
func (w *Websocket) UpdateVoiceState(ctx context.Context, v *model.UpdateVoiceState) error {
	return w.Send(ctx, VoiceStateUpdate, v)
}

// RequestGuildMembers implements Socket.RequestGuildMembers
func (w *Websocket) RequestGuildMembers(ctx context.Context, r *model.RequestGuildMembers) (string, error) {
	req := *r
	if req.Nonce == "" {
		req.Nonce = uuid.NewString()
	}
	if req.Query == nil && len(req.UserIDs) == 0 {
		all := ""
		req.Query = &all
	}

	return req.Nonce, w.Send(ctx, RequestGuildMembers, &req)
}

// On implements Socket.On
func (w *Websocket) On(h Handler) { w.events.On(h) }

// Once implements Socket.Once
func (w *Websocket) Once(h Handler) { w.events.Once(h) }

// State implements Socket.State
func (w *Websocket) State() State { return w.sess.State() }

// Latency implements Socket.Latency
func (w *Websocket) Latency() time.Duration { return w.sess.Latency() }

// SessionID returns the id of the current session, or an empty string
// before READY.
func (w *Websocket) SessionID() string { return w.sess.ID() }

// Sequence returns the last dispatch sequence and whether one was seen.
func (w *Websocket) Sequence() (uint64, bool) {
	seq := w.sess.sequence()
	if seq == nil {
		return 0, false
	}
	return *seq, true
}

// Errs implements Socket.Errs
func (w *Websocket) Errs() <-chan error { return w.errs }

// Done implements Socket.Done
func (w *Websocket) Done() <-chan struct{} { return w.done }

// Close implements Socket.Close
func (w *Websocket) Close() error {
	w.cancel()
	return nil
}
