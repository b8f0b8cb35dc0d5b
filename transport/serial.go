package transport

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// DefaultBaudRate is used when SerialConfig leaves BaudRate zero. 9600 is
// the customary packet-radio TNC rate.
const DefaultBaudRate = 9600

// serialReadBufferSize is the size of the chunk buffer for the read loop.
const serialReadBufferSize = 512

// SerialConfig configures a serial-port transport.
type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyUSB0 or COM3.
	Port string
	// BaudRate defaults to DefaultBaudRate when zero.
	BaudRate int
}

// SerialTransport carries the byte stream over a serial port. Inbound
// bytes are read on a background goroutine and handed to the receive
// callback in arrival order.
type SerialTransport struct {
	port serial.Port

	mu        sync.Mutex
	callback  func(data []byte)
	done      chan struct{}
	closeOnce sync.Once
}

// NewSerial opens the configured serial port and starts the read loop.
func NewSerial(config SerialConfig) (*SerialTransport, error) {
	baudRate := config.BaudRate
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	port, err := serial.Open(config.Port, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", config.Port, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":  "NewSerial",
		"port":      config.Port,
		"baud_rate": baudRate,
	}).Info("Serial port opened")

	t := &SerialTransport{
		port: port,
		done: make(chan struct{}),
	}
	go t.readLoop()

	return t, nil
}

// readLoop delivers inbound bytes until the port is closed.
func (t *SerialTransport) readLoop() {
	buf := make([]byte, serialReadBufferSize)
	for {
		n, err := t.port.Read(buf)
		if n > 0 {
			t.mu.Lock()
			callback := t.callback
			t.mu.Unlock()

			if callback != nil {
				data := make([]byte, n)
				copy(data, buf[:n])
				callback(data)
			}
		}
		if err != nil {
			select {
			case <-t.done:
				// Expected: Close interrupted the blocking read.
			default:
				logrus.WithFields(logrus.Fields{
					"function": "readLoop",
					"error":    err.Error(),
				}).Warn("Serial read failed, stopping read loop")
			}
			return
		}
	}
}

// Send implements Transport.Send, writing all bytes to the port.
func (t *SerialTransport) Send(data []byte) error {
	select {
	case <-t.done:
		return ErrClosed
	default:
	}

	for len(data) > 0 {
		n, err := t.port.Write(data)
		if err != nil {
			return fmt.Errorf("serial write: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// SetReceiveCallback implements Transport.SetReceiveCallback.
func (t *SerialTransport) SetReceiveCallback(callback func(data []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.callback = callback
}

// Close implements Transport.Close, stopping the read loop and closing
// the port.
func (t *SerialTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		err = t.port.Close()
	})
	return err
}
