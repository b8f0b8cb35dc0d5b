package transfer

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/opd-ai/yapp/packet"
)

// mockTransport records every frame the session sends.
type mockTransport struct {
	mu       sync.Mutex
	frames   [][]byte
	sendErr  error
	failFrom int // fail sends once this many frames were accepted (0 = never)
}

func newMockTransport() *mockTransport {
	return &mockTransport{}
}

func (m *mockTransport) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil && (m.failFrom == 0 || len(m.frames) >= m.failFrom) {
		return m.sendErr
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	m.frames = append(m.frames, frame)
	return nil
}

// sentKinds decodes the recorded frames back into packet kinds.
func (m *mockTransport) sentKinds() []packet.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	kinds := make([]packet.Kind, 0, len(m.frames))
	for _, frame := range m.frames {
		pkt, _, status := packet.DecodeNext(frame)
		if status == packet.DecodeOK {
			kinds = append(kinds, pkt.Kind)
		}
	}
	return kinds
}

// sentPackets decodes the recorded frames.
func (m *mockTransport) sentPackets() []packet.Packet {
	m.mu.Lock()
	defer m.mu.Unlock()
	packets := make([]packet.Packet, 0, len(m.frames))
	for _, frame := range m.frames {
		pkt, _, status := packet.DecodeNext(frame)
		if status == packet.DecodeOK {
			packets = append(packets, pkt)
		}
	}
	return packets
}

func (m *mockTransport) frameCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

// memFile is an in-memory File.
type memFile struct {
	data   []byte
	pos    int
	closed bool
}

func (f *memFile) Read(p []byte) (int, error) {
	if f.closed {
		return 0, errors.New("file is closed")
	}
	if f.pos >= len(f.data) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errors.New("file is closed")
	}
	f.data = append(f.data, p...)
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	if whence != io.SeekStart {
		return 0, errors.New("mock only supports SeekStart")
	}
	f.pos = int(offset)
	return offset, nil
}

func (f *memFile) Close() error {
	f.closed = true
	return nil
}

// mockStorage serves reads from a fixed map and records writes.
type mockStorage struct {
	mu         sync.Mutex
	reads      map[string][]byte
	written    map[string]*memFile
	madeDirs   []string
	openWrErr  error
	failWriter bool
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		reads:   make(map[string][]byte),
		written: make(map[string]*memFile),
	}
}

func (m *mockStorage) OpenRead(path string) (File, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.reads[path]
	if !ok {
		return nil, 0, os.ErrNotExist
	}
	return &memFile{data: data}, int64(len(data)), nil
}

func (m *mockStorage) OpenWrite(path string) (File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.openWrErr != nil {
		return nil, m.openWrErr
	}
	if m.failWriter {
		return &failingFile{}, nil
	}
	f := &memFile{}
	m.written[path] = f
	return f, nil
}

func (m *mockStorage) MkdirAll(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.madeDirs = append(m.madeDirs, dir)
	return nil
}

func (m *mockStorage) writtenData(path string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.written[path]
	if !ok {
		return nil
	}
	return f.data
}

// failingFile fails every write, for the storage-failure path.
type failingFile struct{}

func (f *failingFile) Read(p []byte) (int, error) { return 0, io.EOF }

func (f *failingFile) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func (f *failingFile) Seek(offset int64, whence int) (int64, error) { return 0, nil }

func (f *failingFile) Close() error { return nil }

// mockClock fires deadlines on demand instead of after real time.
type mockClock struct {
	mu    sync.Mutex
	armed bool
	d     time.Duration
	fn    func()
}

func newMockClock() *mockClock {
	return &mockClock{}
}

func (c *mockClock) Arm(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = true
	c.d = d
	c.fn = fn
}

func (c *mockClock) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = false
	c.fn = nil
}

func (c *mockClock) isArmed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// fire delivers the armed deadline, as the real timer would.
func (c *mockClock) fire() {
	c.mu.Lock()
	fn := c.fn
	c.armed = false
	c.fn = nil
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// pending returns the armed callback without consuming it, so a test can
// run it later as a stale timer would.
func (c *mockClock) pending() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fn
}

// encodeFrame builds a wire frame for scripted peer input.
func encodeFrame(kind packet.Kind, payload []byte) []byte {
	frame, err := packet.Encode(kind, payload)
	if err != nil {
		panic(err)
	}
	return frame
}

// finishedRecorder captures the terminal callback.
type finishedRecorder struct {
	mu      sync.Mutex
	calls   int
	success bool
	message string
}

func (r *finishedRecorder) callback() func(bool, string) {
	return func(success bool, message string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls++
		r.success = success
		r.message = message
	}
}

func (r *finishedRecorder) snapshot() (int, bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls, r.success, r.message
}
