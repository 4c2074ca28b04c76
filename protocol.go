package cord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/WatchBeam/cord/v2/model"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

var (
	errInvalidSession    = errors.New("cord/websocket: invalid session")
	errReconnect         = errors.New("cord/websocket: server requested reconnect")
	errHeartbeatTimeout  = errors.New("cord/websocket: heartbeat not acknowledged")
	errUnexpectedMessage = errors.New("cord/websocket: unexpected message type")
)

// connection is one transport's worth of protocol. Its read loop, heartbeat
// pump and watchdog run in one errgroup; the first of them to fail records
// the close reason and the group's closer tears the transport down.
type connection struct {
	ws       *Websocket
	tr       *transport
	inflater *inflater
	queue    *queue

	ctx   context.Context
	group *errgroup.Group

	mu     sync.Mutex
	reason *CloseError

	helloed     atomic.Bool
	operational atomic.Bool
}

func newConnection(ws *Websocket, tr *transport) *connection {
	return &connection{
		ws:       ws,
		tr:       tr,
		inflater: newInflater(),
		queue:    newQueue(),
	}
}

// run blocks until every task of the connection has exited.
func (c *connection) run() *CloseError {
	c.group, c.ctx = errgroup.WithContext(c.ws.ctx)
	c.group.Go(c.readLoop)
	c.group.Go(func() error {
		<-c.ctx.Done()
		c.queue.Close()

		reason := c.closeReason()
		if reason == nil {
			// the socket itself is closing
			c.tr.close(CloseNormal, "")
			return nil
		}
		c.tr.close(reason.Code, "")
		return nil
	})
	c.group.Wait()

	if reason := c.closeReason(); reason != nil {
		return reason
	}

	return &CloseError{Code: CloseNormal}
}

// end records why the connection is ending, if nothing has yet, and
// returns the error for the task to exit with.
func (c *connection) end(ce *CloseError) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.reason == nil {
		c.reason = ce
	}
	return ce
}

func (c *connection) closeReason() *CloseError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// readLoop reads frames off the socket, inflates binary ones and feeds the
// payloads through the state machine.
func (c *connection) readLoop() error {
	for {
		kind, message, err := c.tr.read()
		if err != nil {
			return c.end(closeErrorFrom(err))
		}

		switch kind {
		case websocket.TextMessage:
		case websocket.BinaryMessage:
			message, err = c.inflater.Write(message)
			if err != nil {
				c.protocolError("dropping undecodable frame", err)
				continue
			}
			if message == nil {
				continue
			}
		default:
			return c.end(&CloseError{Code: CloseUnknownError, Err: errUnexpectedMessage})
		}

		c.ws.opts.Debugger.Incoming(message)

		payload := &Payload{}
		if err := json.Unmarshal(message, payload); err != nil {
			c.protocolError("dropping malformed payload", err)
			continue
		}

		if ce := c.handle(payload); ce != nil {
			return c.end(ce)
		}
	}
}

// handle implements the inbound half of the opcode protocol. A non-nil
// result ends the connection.
func (c *connection) handle(p *Payload) *CloseError {
	sess := &c.ws.sess

	switch p.Operation {
	case Dispatch:
		if p.Sequence != nil {
			sess.observe(*p.Sequence)
		}
		c.dispatch(p.Event, p.Data)

	case Heartbeat:
		if err := c.heartbeat(); err != nil {
			return closeErrorFrom(err)
		}

	case Reconnect:
		c.ws.log.Info("gateway requested reconnect")
		return &CloseError{Code: CloseServiceRestart, Err: errReconnect}

	case InvalidSession:
		var resumable bool
		if err := json.Unmarshal(p.Data, &resumable); err != nil {
			c.protocolError("malformed invalid session payload", err)
		}
		c.ws.log.Warn("gateway invalidated the session", "resumable", resumable)
		return &CloseError{Code: CloseUnknownError, Invalidated: !resumable, Err: errInvalidSession}

	case Hello:
		return c.hello(p.Data)

	case HeartbeatAck:
		latency := sess.acked(time.Now())
		c.ws.log.Debug("heartbeat acknowledged", "latency", latency)

	default:
		c.protocolError("dropping payload with unexpected opcode",
			fmt.Errorf("cord/websocket: unhandled op code %d", p.Operation))
	}

	return nil
}

// hello starts the heartbeat and either identifies or resumes.
func (c *connection) hello(data json.RawMessage) *CloseError {
	interval, err := heartbeatInterval(data)
	if err != nil {
		c.protocolError("malformed hello", err)
		return nil
	}
	if !c.helloed.CompareAndSwap(false, true) {
		c.ws.log.Warn("ignoring repeated hello")
		return nil
	}

	sess := &c.ws.sess
	sess.hello(interval, time.Now())

	if id, seq, ok := sess.resumable(); ok {
		sess.setState(Resuming)
		c.ws.log.Info("resuming session", "seq", seq, "interval", interval)
		err = c.send(Resume, &model.Resume{
			Token:     c.ws.opts.token,
			SessionID: id,
			Sequence:  seq,
		})
	} else {
		sess.setState(Identifying)
		c.ws.log.Info("identifying", "intents", c.ws.opts.Intents, "interval", interval)
		err = c.send(Identify, c.ws.opts.identify())
	}
	if err != nil {
		return closeErrorFrom(err)
	}

	c.group.Go(func() error { return c.pump(interval) })
	c.group.Go(func() error { return c.watchdog(interval) })
	return nil
}

// maxHeartbeatInterval is the largest interval in milliseconds that fits a
// time.Duration.
const maxHeartbeatInterval = math.MaxInt64 / int64(time.Millisecond)

// heartbeatInterval decodes a HELLO payload's interval.
func heartbeatInterval(data json.RawMessage) (time.Duration, error) {
	h := &model.Hello{}
	if err := json.Unmarshal(data, h); err != nil {
		return 0, fmt.Errorf("cord/websocket: bad hello %s: %w", data, err)
	}
	if h.HeartbeatInterval <= 0 || h.HeartbeatInterval > maxHeartbeatInterval {
		return 0, fmt.Errorf("cord/websocket: bad heartbeat interval %d", h.HeartbeatInterval)
	}

	return time.Duration(h.HeartbeatInterval) * time.Millisecond, nil
}

// dispatch captures session state from READY and RESUMED before handing the
// event to the router, so handlers observe an operational session.
func (c *connection) dispatch(kind string, data json.RawMessage) {
	switch kind {
	case model.KindReady:
		ready := &model.Ready{}
		if err := json.Unmarshal(data, ready); err != nil {
			c.protocolError("malformed ready", err)
			return
		}
		c.ws.sess.ready(ready.SessionID, ready.ResumeGatewayURL)
		c.becomeOperational()
	case model.KindResumed:
		c.becomeOperational()
	}

	c.ws.events.Dispatch(kind, data)
}

func (c *connection) becomeOperational() {
	c.operational.Store(true)
	c.ws.sess.setState(Operational)
	c.ws.log.Info("session operational", "session", c.ws.sess.ID())
}

// send marshals and writes one control frame.
func (c *connection) send(op Operation, data interface{}) error {
	b, err := json.Marshal(&frame{Operation: op, Data: data})
	if err != nil {
		return err
	}

	return c.write(b)
}

func (c *connection) write(b []byte) error {
	c.ws.opts.Debugger.Outgoing(redact(b, c.ws.opts.token))
	return c.tr.sendText(b)
}

// protocolError logs and reports a dropped frame. The session continues.
func (c *connection) protocolError(msg string, err error) {
	c.ws.log.Warn(msg, "err", err)
	c.ws.sendErr(err)
}
