package cord

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/WatchBeam/cord/v2/model"
	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
)

// DefaultAPIVersion is the gateway protocol version requested by default.
const DefaultAPIVersion = 10

// Browser values sent in the identify properties.
const (
	desktopBrowser = "cord"
	mobileBrowser  = "Discord iOS"
)

type WsOptions struct {
	// Intents select which events the gateway delivers.
	Intents model.Intents

	// API version embedded in the gateway URL. Defaults to DefaultAPIVersion.
	APIVersion int

	// MobileBrowser identifies as the mobile client, which shows the bot
	// with a mobile status indicator. It is otherwise protocol-identical.
	MobileBrowser bool

	// Shard is the [shard_id, shard_count] pair sent in identify, if any.
	Shard *[2]int

	// Presence is the initial presence sent in identify, if any.
	Presence *model.UpdatePresence

	// Properties sent in identify. Filled from the runtime and
	// MobileBrowser when empty.
	Properties model.IdentifyProperties

	// LargeThreshold is the member count above which guilds are sent
	// without offline members. Defaults to 250.
	LargeThreshold int

	// DisableCompression connects without zlib-stream compression.
	DisableCompression bool

	// How long to wait for the websocket handshake and for each write.
	// Defaults to ten seconds.
	Timeout time.Duration

	// Backoff determines how long to wait between reconnections to the
	// websocket server. Defaults to an exponential backoff capped at a
	// minute. It is reset whenever a session becomes operational.
	Backoff backoff.BackOff

	// SessionBackoff determines how long to wait after the server
	// invalidates the session. Defaults to a random one to five seconds.
	SessionBackoff backoff.BackOff

	// Dialer to use for the websocket. Defaults to a dialer with the
	// `timeout` duration.
	Dialer *websocket.Dialer

	// The retriever to get the gateway to connect to. Defaults to
	// DefaultGatewayURL.
	Gateway GatewayRetriever

	// Debugger struct we log incoming/outgoing messages to.
	Debugger Debugger

	// Logger receives structured logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Cache is fed by READY, MESSAGE_CREATE, GUILD_CREATE, GUILD_DELETE,
	// VOICE_STATE_UPDATE and CHANNEL_CREATE. Optional.
	Cache Cache

	// Headers to send in the websocket handshake.
	Header http.Header

	token string
}

func (w *WsOptions) fillDefaults(token string) {
	w.token = token

	if w.APIVersion == 0 {
		w.APIVersion = DefaultAPIVersion
	}

	if w.LargeThreshold == 0 {
		w.LargeThreshold = 250
	}

	if w.Timeout == 0 {
		w.Timeout = 10 * time.Second
	}

	if w.Backoff == nil {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = time.Millisecond * 500
		eb.RandomizationFactor = 0.5
		eb.Multiplier = 2
		eb.MaxInterval = time.Minute
		eb.MaxElapsedTime = 0
		eb.Reset()
		w.Backoff = eb
	}

	if w.SessionBackoff == nil {
		sb := backoff.NewExponentialBackOff()
		sb.InitialInterval = 3 * time.Second
		sb.RandomizationFactor = 2.0 / 3.0
		sb.Multiplier = 1
		sb.MaxInterval = 3 * time.Second
		sb.MaxElapsedTime = 0
		sb.Reset()
		w.SessionBackoff = sb
	}

	if w.Dialer == nil {
		w.Dialer = &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: w.Timeout,
		}
	}

	if w.Gateway == nil {
		w.Gateway = StaticGateway(DefaultGatewayURL)
	}

	if w.Debugger == nil {
		w.Debugger = NilDebugger{}
	}

	if w.Logger == nil {
		w.Logger = slog.Default()
	}

	if w.Properties.OS == "" {
		w.Properties.OS = runtime.GOOS
	}
	if w.Properties.Browser == "" {
		w.Properties.Browser = desktopBrowser
		if w.MobileBrowser {
			w.Properties.Browser = mobileBrowser
		}
	}
	if w.Properties.Device == "" {
		w.Properties.Device = desktopBrowser
	}
}

// identify builds the IDENTIFY payload.
func (w *WsOptions) identify() *model.Identify {
	return &model.Identify{
		Token:          w.token,
		Properties:     w.Properties,
		Intents:        w.Intents,
		LargeThreshold: w.LargeThreshold,
		Shard:          w.Shard,
		Presence:       w.Presence,
	}
}

// Websocket is an implementation of the Socket interface. A supervisor
// goroutine owns the connection lifecycle: it dials, runs one connection
// to completion, classifies the close and reconnects after a backoff.
type Websocket struct {
	opts   *WsOptions
	events *router
	log    *slog.Logger
	sess   session

	// conn is the live connection, if any.
	conn atomic.Pointer[connection]
	errs chan error

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// start boots the websocket asynchronously.
func (w *Websocket) start() { go w.run() }

// run is the supervisor loop.
func (w *Websocket) run() {
	defer close(w.done)
	defer close(w.errs)
	defer w.sess.setState(Disconnected)

	w.sess.setState(Connecting)
	for {
		ce, operational := w.connect()
		if w.ctx.Err() != nil {
			return
		}

		if ce.Code.Fatal() {
			w.log.Error("gateway closed the session, not reconnecting", "code", ce.Code)
			w.sendErr(FatalError{Code: ce.Code})
			return
		}
		w.sendErr(ce)

		if operational {
			w.opts.Backoff.Reset()
			w.opts.SessionBackoff.Reset()
		}

		bo := w.opts.Backoff
		if errors.Is(ce, errInvalidSession) {
			bo = w.opts.SessionBackoff
		}
		if !ce.Resumable() {
			w.sess.invalidate()
		}

		delay := bo.NextBackOff()
		if delay == backoff.Stop {
			w.log.Error("giving up on reconnecting", "err", ce)
			w.sendErr(ErrGaveUp)
			return
		}

		next := Reconnecting
		if _, _, ok := w.sess.resumable(); ok {
			next = Resuming
		}
		w.sess.setState(next)
		w.log.Info("reconnecting to gateway", "code", ce.Code, "state", next, "delay", delay)

		if !w.sleep(delay) {
			return
		}
	}
}

// sleep waits for d, returning false if the socket was closed meanwhile.
func (w *Websocket) sleep(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-w.ctx.Done():
		return false
	}
}

// connect dials the gateway and runs one connection until it closes. It
// reports why the connection ended and whether it became operational.
func (w *Websocket) connect() (*CloseError, bool) {
	gateway, err := w.gatewayURL()
	if err != nil {
		return closeErrorFrom(err), false
	}

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.Timeout)
	tr, err := dialTransport(ctx, w.opts.Dialer, gateway, w.opts.Header, w.opts.Timeout)
	cancel()
	if err != nil {
		return closeErrorFrom(err), false
	}

	c := newConnection(w, tr)
	w.conn.Store(c)
	defer w.conn.CompareAndSwap(c, nil)

	w.sess.setState(AwaitingHello)
	ce := c.run()
	return ce, c.operational.Load()
}

// gatewayURL picks the resume gateway when resuming, otherwise asks the
// retriever.
func (w *Websocket) gatewayURL() (string, error) {
	base := ""
	if _, _, ok := w.sess.resumable(); ok {
		base = w.sess.resumeGateway()
	}
	if base == "" {
		var err error
		if base, err = w.opts.Gateway.Gateway(w.ctx); err != nil {
			return "", err
		}
	}

	return gatewayURL(base, w.opts.APIVersion, !w.opts.DisableCompression)
}

// sendErr dispatches an error on the socket and notifies the debugger. The
// error is dropped if nobody is draining Errs().
func (w *Websocket) sendErr(err error) {
	w.opts.Debugger.Error(err)

	select {
	case w.errs <- err:
	default:
		w.log.Debug("error channel full, dropping error", "err", err)
	}
}
