package cord

import (
	"sync"
	"time"
)

// session is the state shared by a Websocket's read loop, heartbeat and
// watchdog. It outlives connections; only a fresh identify resets it.
type session struct {
	mu sync.Mutex

	state     State
	id        string
	resumeURL string
	seq       uint64
	hasSeq    bool

	interval time.Duration
	lastSend time.Time
	lastAck  time.Time
	latency  time.Duration
}

func (s *session) setState(st State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = st
	return prev
}

func (s *session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// observe records a dispatch sequence. The sequence never decreases.
func (s *session) observe(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSeq || seq > s.seq {
		s.seq = seq
		s.hasSeq = true
	}
}

// sequence returns the last observed sequence, or nil before the first
// dispatch.
func (s *session) sequence() *uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasSeq {
		return nil
	}
	seq := s.seq
	return &seq
}

func (s *session) ready(id, resumeURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = id
	s.resumeURL = resumeURL
}

// invalidate forgets the session so the next connection identifies.
func (s *session) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = ""
	s.resumeURL = ""
	s.seq = 0
	s.hasSeq = false
}

// resumable returns what a RESUME needs, and whether resuming is possible.
func (s *session) resumable() (id string, seq uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id, s.seq, s.id != "" && s.hasSeq
}

func (s *session) resumeGateway() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resumeURL
}

// hello starts heartbeat bookkeeping for a new connection. The ack clock
// starts at HELLO so the watchdog has a baseline.
func (s *session) hello(interval time.Duration, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interval = interval
	s.lastSend = time.Time{}
	s.lastAck = now
}

func (s *session) sent(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSend = now
}

func (s *session) acked(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastAck = now
	if !s.lastSend.IsZero() {
		s.latency = now.Sub(s.lastSend)
	}
	return s.latency
}

// missedAck reports whether the last heartbeat went unacknowledged for
// longer than the interval.
func (s *session) missedAck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastSend.IsZero() {
		return false
	}
	return s.lastSend.Sub(s.lastAck) > s.interval
}

// unacked reports whether a heartbeat has been sent and not yet
// acknowledged.
func (s *session) unacked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.lastSend.IsZero() && s.lastAck.Before(s.lastSend)
}

func (s *session) Latency() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latency
}

func (s *session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}
