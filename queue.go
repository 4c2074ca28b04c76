package cord

import "sync"

type queuedMessage struct {
	data   []byte
	result chan error
}

// queue holds frames sent through Socket.Send until the connection's write
// pump writes them. A queue belongs to one connection; closing it fails
// everything still pending.
type queue struct {
	mu     sync.Mutex
	items  []*queuedMessage
	ready  chan struct{}
	closed bool
}

func newQueue() *queue {
	return &queue{ready: make(chan struct{}, 1)}
}

// Push appends a new item to the queue.
func (q *queue) Push(msg *queuedMessage) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrConnectionClosed
	}
	q.items = append(q.items, msg)

	select {
	case q.ready <- struct{}{}:
	default:
	}

	return nil
}

// Ready returns a channel that receives after a Push.
func (q *queue) Ready() <-chan struct{} { return q.ready }

// Pop removes the head of the queue, or returns nil if it is empty.
func (q *queue) Pop() *queuedMessage {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	head := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return head
}

// Close signals that no further messages will be written and fails the
// pending ones.
func (q *queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	for _, msg := range q.items {
		msg.result <- ErrConnectionClosed
	}
	q.items = nil
}
