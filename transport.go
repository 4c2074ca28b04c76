package cord

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// transport is one open websocket. It does not interpret payloads. Writes
// are serialised so a heartbeat never interleaves with another frame.
type transport struct {
	conn    *websocket.Conn
	timeout time.Duration

	wmu       sync.Mutex
	closeOnce sync.Once
}

func dialTransport(ctx context.Context, d *websocket.Dialer, url string, h http.Header, timeout time.Duration) (*transport, error) {
	conn, res, err := d.DialContext(ctx, url, h)
	if res != nil && res.Body != nil {
		res.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	return &transport{conn: conn, timeout: timeout}, nil
}

// sendText writes one text frame.
func (t *transport) sendText(b []byte) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()

	t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	return t.conn.WriteMessage(websocket.TextMessage, b)
}

// read blocks for the next text or binary frame. Control frames are
// handled by the websocket library.
func (t *transport) read() (kind int, b []byte, err error) {
	return t.conn.ReadMessage()
}

// close sends a close frame with the code and closes the socket. Only the
// first call has an effect.
func (t *transport) close(code CloseCode, reason string) {
	t.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(int(code), reason)
		t.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
		t.conn.Close()
	})
}
