package cord

import (
	"math/rand/v2"
	"time"
)

// pump is the connection's only writer besides the read loop's replies.
// It sends a heartbeat after a random fraction of the first interval, then
// every interval, and flushes frames queued by Socket.Send in between. A beat
// that falls due while the previous one is unacknowledged closes the
// connection with 4000 instead.
func (c *connection) pump(interval time.Duration) error {
	timer := time.NewTimer(rand.N(interval))
	defer timer.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return nil

		case <-timer.C:
			if c.ws.sess.unacked() {
				c.ws.log.Warn("heartbeat not acknowledged, reconnecting", "interval", interval)
				return c.end(&CloseError{Code: CloseUnknownError, Err: errHeartbeatTimeout})
			}
			if err := c.heartbeat(); err != nil {
				return c.end(closeErrorFrom(err))
			}
			timer.Reset(interval)

		case <-c.queue.Ready():
			for msg := c.queue.Pop(); msg != nil; msg = c.queue.Pop() {
				err := c.write(msg.data)
				msg.result <- err
				if err != nil {
					return c.end(closeErrorFrom(err))
				}
			}
		}
	}
}

// heartbeat sends an op 1 carrying the last sequence, or null before the
// first dispatch.
func (c *connection) heartbeat() error {
	c.ws.sess.sent(time.Now())
	return c.send(Heartbeat, c.ws.sess.sequence())
}

// watchdog ends the connection when a heartbeat goes unacknowledged for
// longer than the interval, covering beats the pump did not schedule. The
// reconnect that follows attempts a resume.
func (c *connection) watchdog(interval time.Duration) error {
	ticker := time.NewTicker(interval / 2)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return nil
		case <-ticker.C:
			if c.ws.sess.missedAck() {
				c.ws.log.Warn("heartbeat not acknowledged, reconnecting", "interval", interval)
				return c.end(&CloseError{Code: CloseUnknownError, Err: errHeartbeatTimeout})
			}
		}
	}
}
