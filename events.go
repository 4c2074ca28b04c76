package cord

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/WatchBeam/cord/v2/events"
)

type handlerList []events.Handler

// router is the eventemitter-like dispatcher behind a Socket. Handlers of a
// kind run one after another, in registration order.
type router struct {
	mu       sync.Mutex
	onces    map[string]handlerList
	handlers map[string]handlerList

	cache  Cache
	log    *slog.Logger
	report func(error)
}

func newRouter(cache Cache, log *slog.Logger, report func(error)) *router {
	return &router{
		onces:    make(map[string]handlerList),
		handlers: make(map[string]handlerList),
		cache:    cache,
		log:      log,
		report:   report,
	}
}

// On attaches a Handler so that it's called every time an event is received.
func (r *router) On(h events.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.handlers[h.Name()] = append(r.handlers[h.Name()], h)
}

// Once attaches a handler that's called the next time the event is received,
// then immediately removed.
func (r *router) Once(h events.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onces[h.Name()] = append(r.onces[h.Name()], h)
}

// take returns the handlers to run for an event, consuming the onces.
func (r *router) take(kind string) handlerList {
	r.mu.Lock()
	defer r.mu.Unlock()

	l1, l2 := r.handlers[kind], r.onces[kind]
	delete(r.onces, kind)

	list := make(handlerList, len(l1)+len(l2))
	copy(list, l1)
	copy(list[len(l1):], l2)
	return list
}

func (r *router) has(kind string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[kind])+len(r.onces[kind]) > 0
}

// Dispatch decodes a DISPATCH payload, feeds the cache and invokes the
// handlers. Unknown kinds are ignored; decode failures are logged and the
// event dropped. It returns the decoded event, or nil.
func (r *router) Dispatch(kind string, data []byte) events.Event {
	ev, err := events.Decode(kind, data)
	if errors.Is(err, events.ErrUnknownKind) {
		return nil
	}
	if err != nil {
		r.log.Warn("dropping undecodable dispatch", "event", kind, "err", err)
		r.report(err)
		return nil
	}

	if r.cache != nil {
		runCacheHooks(r.cache, ev)
	}
	r.emit(ev)

	return ev
}

// emit runs every handler for the event. Failures never escape: they are
// logged and, unless they came from an EXCEPTION handler, redispatched as an
// EXCEPTION event.
func (r *router) emit(ev events.Event) {
	kind := ev.Kind()
	for _, h := range r.take(kind) {
		err := invoke(h, ev)
		if err == nil {
			continue
		}

		r.log.Error("event handler failed", "event", kind, "err", err)
		if kind == events.KindException {
			continue
		}

		herr := &events.HandlerError{Event: kind, Err: err}
		r.report(herr)
		if r.has(events.KindException) {
			r.emit(herr)
		}
	}
}

// invoke calls a handler, turning panics into errors.
func invoke(h events.Handler, ev events.Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("cord/events: handler panicked: %v", p)
		}
	}()

	return h.Invoke(ev)
}
