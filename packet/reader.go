package packet

// Handler consumes the output of a Reader.
//
// Both methods return false to stop the current feed loop, after which the
// Reader discards any bytes still buffered. A handler does this when the
// session has reached a terminal state and no further protocol activity is
// meaningful.
type Handler interface {
	// HandlePacket receives one complete decoded packet.
	HandlePacket(pkt Packet) bool

	// HandleInvalid receives a single unrecognized byte that was skipped
	// from the front of the stream.
	HandleInvalid(b byte) bool
}

// Reader reassembles packets from an arbitrarily chunked byte stream.
//
// It owns an append-only receive buffer: bytes are consumed strictly from
// the front as whole packets become decodable and are never re-read after
// consumption. Incomplete trailing bytes stay buffered until the next Feed.
type Reader struct {
	handler Handler
	buf     []byte
}

// NewReader creates a Reader dispatching to the given handler.
func NewReader(handler Handler) *Reader {
	return &Reader{handler: handler}
}

// Feed appends data to the receive buffer and decodes as many complete
// packets as possible, dispatching each to the handler in arrival order.
// Decoding stops when the buffer is empty or holds an incomplete frame.
// An unrecognized leading byte is skipped one byte at a time so that
// garbage input cannot stall the stream or grow the buffer without bound.
func (r *Reader) Feed(data []byte) {
	r.buf = append(r.buf, data...)

	for len(r.buf) > 0 {
		pkt, consumed, status := DecodeNext(r.buf)

		switch status {
		case DecodeNeedMore:
			return

		case DecodeInvalid:
			skipped := r.buf[0]
			r.buf = r.buf[1:]
			if !r.handler.HandleInvalid(skipped) {
				r.Reset()
				return
			}

		case DecodeOK:
			r.buf = r.buf[consumed:]
			if !r.handler.HandlePacket(pkt) {
				r.Reset()
				return
			}
		}
	}
}

// Buffered returns the number of bytes waiting for a complete frame.
func (r *Reader) Buffered() int {
	return len(r.buf)
}

// Reset discards all buffered bytes.
func (r *Reader) Reset() {
	r.buf = nil
}
