package cord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSequenceNeverDecreases(t *testing.T) {
	s := &session{}
	assert.Nil(t, s.sequence())

	s.observe(5)
	s.observe(3)
	s.observe(0)
	require.NotNil(t, s.sequence())
	assert.Equal(t, uint64(5), *s.sequence())

	s.observe(6)
	assert.Equal(t, uint64(6), *s.sequence())
}

func TestSessionResumable(t *testing.T) {
	s := &session{}
	_, _, ok := s.resumable()
	assert.False(t, ok)

	s.ready("abc", "wss://resume.example.com")
	_, _, ok = s.resumable()
	assert.False(t, ok, "no sequence yet")

	s.observe(42)
	id, seq, ok := s.resumable()
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, uint64(42), seq)
	assert.Equal(t, "wss://resume.example.com", s.resumeGateway())

	s.invalidate()
	_, _, ok = s.resumable()
	assert.False(t, ok)
	assert.Equal(t, "", s.ID())
	assert.Equal(t, "", s.resumeGateway())
	assert.Nil(t, s.sequence())
}

func TestSessionMissedAck(t *testing.T) {
	s := &session{}
	start := time.Now()
	s.hello(time.Second, start)
	assert.False(t, s.missedAck(), "nothing sent yet")

	s.sent(start.Add(900 * time.Millisecond))
	assert.False(t, s.missedAck())

	assert.Equal(t, 50*time.Millisecond, s.acked(start.Add(950*time.Millisecond)))
	assert.Equal(t, 50*time.Millisecond, s.Latency())

	s.sent(start.Add(1900 * time.Millisecond))
	assert.False(t, s.missedAck())

	s.sent(start.Add(2900 * time.Millisecond))
	assert.True(t, s.missedAck())

	s.hello(time.Second, start.Add(3*time.Second))
	assert.False(t, s.missedAck(), "a new connection starts a new clock")
}

func TestSessionResumesAtSequenceZero(t *testing.T) {
	s := &session{}
	s.ready("abc", "")
	s.observe(0)

	id, seq, ok := s.resumable()
	assert.True(t, ok)
	assert.Equal(t, "abc", id)
	assert.Equal(t, uint64(0), seq)
	require.NotNil(t, s.sequence())
	assert.Equal(t, uint64(0), *s.sequence())
}

func TestSessionUnacked(t *testing.T) {
	s := &session{}
	start := time.Now()
	s.hello(time.Second, start)
	assert.False(t, s.unacked(), "nothing sent yet")

	s.sent(start.Add(100 * time.Millisecond))
	assert.True(t, s.unacked())

	s.acked(start.Add(150 * time.Millisecond))
	assert.False(t, s.unacked())

	s.sent(start.Add(1100 * time.Millisecond))
	assert.True(t, s.unacked(), "one unacknowledged beat is enough")
	assert.False(t, s.missedAck())

	s.hello(time.Second, start.Add(2*time.Second))
	assert.False(t, s.unacked(), "a new connection starts a new clock")
}

func TestSessionState(t *testing.T) {
	s := &session{}
	assert.Equal(t, Disconnected, s.State())
	assert.Equal(t, Disconnected, s.setState(Connecting))
	assert.Equal(t, Connecting, s.State())
	assert.Equal(t, "connecting", Connecting.String())
	assert.Equal(t, "unknown", State(99).String())
}
