// Package transport provides byte-stream links for the YAPP engine.
//
// YAPP runs over any order-preserving byte stream with single-octet
// granularity. This package defines the Transport interface the engine
// consumes and two implementations: a serial-port transport for real
// radio/TNC links and an in-memory pipe pair for tests and demos.
//
// Example:
//
//	serialTransport, err := transport.NewSerial(transport.SerialConfig{
//	    Port:     "/dev/ttyUSB0",
//	    BaudRate: 9600,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer serialTransport.Close()
//
//	serialTransport.SetReceiveCallback(func(data []byte) {
//	    session.Feed(data)
//	})
package transport

import "errors"

// ErrClosed indicates a send on a closed transport.
var ErrClosed = errors.New("transport is closed")

// Transport is a bidirectional byte stream. It makes no framing or
// reliability guarantees beyond preserving byte order; retransmission, if
// any, is the link's own concern.
type Transport interface {
	// Send writes raw bytes to the peer. It must not block indefinitely.
	Send(data []byte) error

	// SetReceiveCallback registers the function invoked with each chunk
	// of inbound bytes. Chunk boundaries are arbitrary and carry no
	// meaning.
	SetReceiveCallback(callback func(data []byte))

	// Close shuts the link down. Subsequent sends fail with ErrClosed.
	Close() error
}
