package transport

import "sync"

// pipeQueueDepth bounds how many in-flight chunks a pipe endpoint buffers.
// YAPP is half-duplex, so the queue stays close to empty in practice.
const pipeQueueDepth = 256

// PipeTransport is one end of an in-memory byte-stream pair. Delivery to
// the peer's receive callback happens on a dedicated goroutine, so a
// session may call Send while holding its own lock without deadlocking
// against the peer session.
type PipeTransport struct {
	peer *PipeTransport

	mu        sync.Mutex
	callback  func(data []byte)
	inbox     chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// Pipe returns two connected in-memory transports. Bytes sent on one end
// are delivered to the other end's receive callback in order.
func Pipe() (*PipeTransport, *PipeTransport) {
	a := newPipeEnd()
	b := newPipeEnd()
	a.peer = b
	b.peer = a
	go a.pump()
	go b.pump()
	return a, b
}

func newPipeEnd() *PipeTransport {
	return &PipeTransport{
		inbox: make(chan []byte, pipeQueueDepth),
		done:  make(chan struct{}),
	}
}

// pump delivers queued chunks to the receive callback in order.
func (t *PipeTransport) pump() {
	for {
		select {
		case data := <-t.inbox:
			t.mu.Lock()
			callback := t.callback
			t.mu.Unlock()
			if callback != nil {
				callback(data)
			}
		case <-t.done:
			return
		}
	}
}

// Send implements Transport.Send by queueing a copy of data for the peer.
func (t *PipeTransport) Send(data []byte) error {
	select {
	case <-t.done:
		return ErrClosed
	case <-t.peer.done:
		return ErrClosed
	default:
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	select {
	case t.peer.inbox <- buf:
		return nil
	case <-t.peer.done:
		return ErrClosed
	}
}

// SetReceiveCallback implements Transport.SetReceiveCallback.
func (t *PipeTransport) SetReceiveCallback(callback func(data []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callback = callback
}

// Close implements Transport.Close. It stops delivery on this end;
// the peer's sends fail with ErrClosed afterwards.
func (t *PipeTransport) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
	})
	return nil
}
