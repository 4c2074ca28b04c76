package cord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(s string) *queuedMessage {
	return &queuedMessage{data: []byte(s), result: make(chan error, 1)}
}

func TestQueueOrder(t *testing.T) {
	q := newQueue()
	assert.Nil(t, q.Pop())

	require.NoError(t, q.Push(newMessage("a")))
	require.NoError(t, q.Push(newMessage("b")))

	select {
	case <-q.Ready():
	default:
		t.Fatal("expected the queue to signal readiness")
	}

	assert.Equal(t, "a", string(q.Pop().data))
	assert.Equal(t, "b", string(q.Pop().data))
	assert.Nil(t, q.Pop())
}

func TestQueueCloseFailsPending(t *testing.T) {
	q := newQueue()
	pending := newMessage("a")
	require.NoError(t, q.Push(pending))

	q.Close()
	q.Close()
	assert.ErrorIs(t, <-pending.result, ErrConnectionClosed)
	assert.ErrorIs(t, q.Push(newMessage("b")), ErrConnectionClosed)
	assert.Nil(t, q.Pop())
}
