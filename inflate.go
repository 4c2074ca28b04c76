package cord

import (
	"bytes"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/flate"
)

// zlibSuffix terminates every logical message of a zlib-stream: it is the
// empty stored block written by a sync flush.
var zlibSuffix = []byte{0x00, 0x00, 0xff, 0xff}

// windowSize is the DEFLATE history window.
const windowSize = 32 << 10

var (
	errZlibHeader  = errors.New("cord/inflate: missing zlib header")
	errInvalidUTF8 = errors.New("cord/inflate: message is not valid UTF-8")
)

// inflater decodes a zlib-stream: one compressed stream spanning the whole
// connection, delimited into messages by sync flushes. Each message is
// inflated as raw DEFLATE seeded with the trailing window of everything
// decoded before it, so back-references across messages resolve. An inflater
// belongs to exactly one transport.
type inflater struct {
	buf     []byte
	window  []byte
	started bool
}

func newInflater() *inflater {
	return &inflater{window: make([]byte, 0, windowSize)}
}

// Write appends a binary frame. Once the buffered bytes end with the sync
// flush suffix it returns the decoded message; until then it returns nil.
// The buffer is cleared whether or not decoding succeeds, and a failure does
// not reset the stream state.
func (z *inflater) Write(frame []byte) ([]byte, error) {
	z.buf = append(z.buf, frame...)
	if len(z.buf) < len(zlibSuffix) || !bytes.HasSuffix(z.buf, zlibSuffix) {
		return nil, nil
	}

	in := z.buf
	z.buf = nil

	if !z.started {
		if len(in) < 2 || !isZlibHeader(in[0], in[1]) {
			return nil, errZlibHeader
		}
		in = in[2:]
		z.started = true
	}

	r := flate.NewReaderDict(bytes.NewReader(in), z.window)
	out, err := io.ReadAll(r)
	r.Close()
	// The stream never ends, so running out of input after the flush is the
	// normal way a message finishes.
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	z.remember(out)
	if !utf8.Valid(out) {
		return nil, errInvalidUTF8
	}

	return out, nil
}

// remember keeps the last windowSize bytes of output as the next message's
// dictionary.
func (z *inflater) remember(out []byte) {
	z.window = append(z.window, out...)
	if over := len(z.window) - windowSize; over > 0 {
		copy(z.window, z.window[over:])
		z.window = z.window[:windowSize]
	}
}

// isZlibHeader checks the CMF/FLG pair: deflate method, no preset
// dictionary, valid check bits.
func isZlibHeader(cmf, flg byte) bool {
	return cmf&0x0f == 8 && flg&0x20 == 0 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
