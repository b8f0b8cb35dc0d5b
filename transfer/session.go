package transfer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/yapp/packet"
)

// MaxDataLen is the largest payload sent per Data packet. The wire format
// allows 256 bytes but 250 stays conservative for links that mangle long
// runs.
const MaxDataLen = 250

// DefaultTimeout is the crash timer window: the longest the engine waits
// for the peer before retrying or aborting.
const DefaultTimeout = 30 * time.Second

// MaxInitRetries bounds automatic SendInit retransmission. Retries are only
// meaningful before the peer has committed to a transfer, so no other
// timeout is retried.
const MaxInitRetries = 5

// ErrTransferActive indicates an attempt to start a transfer while one is
// already in progress on this session.
var ErrTransferActive = errors.New("transfer already in progress")

// ErrTransportSend indicates the transport rejected an outbound frame.
// A send failure is fatal to the session; the engine does not retry it.
var ErrTransportSend = errors.New("transport send failed")

// Transport delivers raw frame bytes to the peer. Send must be a
// non-blocking hand-off; the engine treats any error as fatal.
type Transport interface {
	Send(data []byte) error
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(data []byte) error

// Send implements Transport for TransportFunc.
func (f TransportFunc) Send(data []byte) error {
	return f(data)
}

// Session is the YAPP engine for one file transfer at a time.
//
// Create one with NewSession, register callbacks, then call StartSend or
// StartReceive and deliver inbound transport bytes through Feed. All
// methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	transport Transport
	storage   Storage
	clock     Clock
	timeout   time.Duration

	reader *packet.Reader

	state            State
	role             Role
	filename         string
	fileSize         uint64
	bytesTransferred uint64
	initRetries      int
	deadlineGen      uint64

	file        File
	downloadDir string

	progressCallback func(transferred, total uint64)
	eventCallback    func(kind EventKind, message string)
	finishedCallback func(success bool, message string)
	rawDataCallback  func(data []byte)
}

// sessionHandler adapts a Session to packet.Handler without exporting the
// dispatch methods. The Reader only ever runs inside Feed, with the
// session lock already held.
type sessionHandler struct {
	s *Session
}

func (h sessionHandler) HandlePacket(pkt packet.Packet) bool {
	return h.s.handlePacket(pkt)
}

func (h sessionHandler) HandleInvalid(b byte) bool {
	return h.s.handleInvalid(b)
}

// NewSession creates an idle session bound to the given transport, backed
// by the local disk and a real timer.
func NewSession(t Transport) *Session {
	s := &Session{
		transport: t,
		storage:   DiskStorage{},
		clock:     &wallClock{},
		timeout:   DefaultTimeout,
		state:     StateIdle,
	}
	s.reader = packet.NewReader(sessionHandler{s: s})

	logrus.WithFields(logrus.Fields{
		"function": "NewSession",
		"timeout":  s.timeout,
	}).Debug("Transfer session created")

	return s
}

// SetStorage replaces the storage collaborator. Only valid while idle.
func (s *Session) SetStorage(storage Storage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storage = storage
}

// SetClock replaces the deadline clock. Only valid while idle.
func (s *Session) SetClock(clock Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
}

// SetTimeout configures the crash timer window for subsequent deadlines.
func (s *Session) SetTimeout(timeout time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeout = timeout
}

// OnProgress sets the callback invoked after every transferred data block
// with the running byte count and the declared total (zero when unknown).
func (s *Session) OnProgress(callback func(transferred, total uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progressCallback = callback
}

// OnEvent sets the callback receiving protocol-log lines.
func (s *Session) OnEvent(callback func(kind EventKind, message string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventCallback = callback
}

// OnFinished sets the callback fired exactly once per transfer when the
// session reaches a terminal state.
func (s *Session) OnFinished(callback func(success bool, message string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finishedCallback = callback
}

// OnRawData sets the passthrough callback for bytes received while no
// transfer is active.
func (s *Session) OnRawData(callback func(data []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rawDataCallback = callback
}

// StartSend begins sending the file at path. It returns a short status
// message on success, or an error without disturbing any active transfer.
func (s *Session) StartSend(path string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return "", ErrTransferActive
	}

	f, size, err := s.storage.OpenRead(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}

	s.role = RoleSender
	s.file = f
	s.filename = filepath.Base(path)
	s.fileSize = uint64(size)
	s.bytesTransferred = 0
	s.initRetries = 0
	s.reader.Reset()
	s.state = StateSenderInit

	logrus.WithFields(logrus.Fields{
		"function":  "StartSend",
		"file_name": s.filename,
		"file_size": s.fileSize,
	}).Info("Starting outgoing transfer")

	s.event(EventInfo, fmt.Sprintf("Starting send: %s (%d bytes)", s.filename, s.fileSize))

	if !s.sendInit() {
		return "", ErrTransportSend
	}
	return fmt.Sprintf("Sending %s", s.filename), nil
}

// StartReceive prepares to receive a file into downloadDir, creating the
// directory if needed. It returns a short status message on success, or an
// error without disturbing any active transfer.
func (s *Session) StartReceive(downloadDir string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return "", ErrTransferActive
	}

	if err := s.storage.MkdirAll(downloadDir); err != nil {
		return "", fmt.Errorf("create download dir %s: %w", downloadDir, err)
	}

	s.role = RoleReceiver
	s.downloadDir = downloadDir
	s.filename = ""
	s.fileSize = 0
	s.bytesTransferred = 0
	s.reader.Reset()
	s.state = StateReceiverWait

	logrus.WithFields(logrus.Fields{
		"function":     "StartReceive",
		"download_dir": downloadDir,
	}).Info("Waiting for incoming transfer")

	s.event(EventInfo, "Waiting for sender (SI)...")
	s.armDeadline()

	return "Waiting for file transfer", nil
}

// Feed delivers raw bytes received from the transport. While no transfer
// is active the bytes are handed to the raw-data callback untouched;
// otherwise they are appended to the frame reader and every complete
// packet is dispatched through the state machine.
func (s *Session) Feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle {
		if s.rawDataCallback != nil {
			s.rawDataCallback(data)
		}
		return
	}
	if s.state.Terminal() {
		return
	}

	s.reader.Feed(data)
}

// Cancel aborts the active transfer, notifying the peer. It finalizes
// immediately without waiting for the peer's CancelAck; a late CancelAck
// arrives in a terminal state and is discarded. Calling Cancel while idle
// or already terminal is a silent no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateIdle || s.state.Terminal() {
		return
	}

	s.sendPacket(packet.KindCancel, []byte("Cancelled by user"), "CN (Cancel) Cancelled by user")
	s.finish(false, "Transfer cancelled by user")
}

// Reset returns a terminal or idle session to Idle so it can be reused.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmDeadline()
	s.closeFile()
	s.reader.Reset()
	s.state = StateIdle
	s.role = RoleNone
	s.filename = ""
	s.fileSize = 0
	s.bytesTransferred = 0
	s.initRetries = 0
	s.downloadDir = ""
}

// IsActive reports whether a transfer is in progress.
func (s *Session) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != StateIdle && !s.state.Terminal()
}

// State returns the current machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Role returns the session's role in the current or last transfer.
func (s *Session) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Filename returns the name of the file being transferred.
func (s *Session) Filename() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filename
}

// FileSize returns the declared file size. Zero means unknown on the
// receive side until a header arrives.
func (s *Session) FileSize() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileSize
}

// BytesTransferred returns the running byte counter for the current
// transfer.
func (s *Session) BytesTransferred() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytesTransferred
}

// handlePacket dispatches one decoded packet. A Cancel short-circuits to
// Failed ahead of role dispatch in every non-terminal state, and Text is
// surfaced as an event everywhere without causing a transition. Returns
// false once the session is terminal so the frame reader discards the
// remainder of the buffer.
func (s *Session) handlePacket(pkt packet.Packet) bool {
	if s.state == StateIdle || s.state.Terminal() {
		return false
	}

	switch pkt.Kind {
	case packet.KindCancel:
		reason := string(pkt.Payload)
		s.event(EventReceived, "CN (Cancel) "+reason)
		s.sendPacket(packet.KindCancelAck, nil, "CA (Cancel Ack)")
		s.finish(false, "Cancelled by remote: "+reason)
		return false

	case packet.KindText:
		s.event(EventReceived, "TX: "+string(pkt.Payload))
		return true
	}

	switch s.state {
	case StateSenderInit, StateSenderHeader, StateSenderEof, StateSenderEot:
		s.handleSenderResponse(pkt)
	case StateSenderData:
		s.handleSenderDataInterrupt(pkt)
	case StateReceiverWait, StateReceiverHeader:
		s.handleReceiverControl(pkt)
	case StateReceiverData:
		s.handleReceiverData(pkt)
	}

	if s.state.Terminal() {
		return false
	}
	if s.state.waiting() {
		s.armDeadline()
	}
	return true
}

// handleInvalid is called for each unrecognized byte skipped from the
// stream. Recovery is local and silent except for an informational event,
// except in the sender's data state, where the sender cannot safely
// resynchronize and must abort.
func (s *Session) handleInvalid(b byte) bool {
	if s.state == StateIdle || s.state.Terminal() {
		return false
	}

	if s.state == StateSenderData {
		s.abortSendData()
		return false
	}

	logrus.WithFields(logrus.Fields{
		"function": "handleInvalid",
		"state":    s.state.String(),
		"byte":     fmt.Sprintf("0x%02x", b),
	}).Debug("Skipping unrecognized byte")

	s.event(EventInfo, fmt.Sprintf("Skipping unrecognized byte 0x%02x", b))
	return true
}

// handleSenderResponse processes control responses while the sender is
// waiting in SenderInit, SenderHeader, SenderEof, or SenderEot.
func (s *Session) handleSenderResponse(pkt packet.Packet) {
	s.disarmDeadline()

	switch pkt.Kind {
	case packet.KindReceiveReady:
		s.event(EventReceived, "RR (Receive Ready)")
		if s.state == StateSenderInit {
			s.sendHeader()
		}

	case packet.KindReceiveFile:
		s.event(EventReceived, "RF (Receive File)")
		if s.state == StateSenderInit || s.state == StateSenderHeader {
			s.sendDataLoop()
		}

	case packet.KindReceiveTpk:
		// YappC checksum extension requested; the engine declines and
		// proceeds as standard YAPP.
		s.event(EventReceived, "RT (YappC requested - not supported, using standard)")
		if s.state == StateSenderInit || s.state == StateSenderHeader {
			s.sendDataLoop()
		}

	case packet.KindAckEof:
		s.event(EventReceived, "AF (Ack End of File)")
		if s.state == StateSenderEof {
			s.state = StateSenderEot
			s.sendPacket(packet.KindEot, nil, "ET (End of Transmission)")
		}

	case packet.KindAckEot:
		s.event(EventReceived, "AT (Ack End of Transmission)")
		if s.state == StateSenderEot {
			s.finish(true, fmt.Sprintf("File sent successfully: %s", s.filename))
		}

	case packet.KindCancelAck:
		s.event(EventReceived, "CA (Cancel Ack)")
		s.finish(false, "Transfer cancelled")

	case packet.KindResume:
		// No partial-transfer ledger exists, so a resume request always
		// restarts the whole file from byte zero.
		s.event(EventReceived, "RE (Resume) - not supported, restarting")
		if s.state == StateSenderHeader {
			if _, err := s.file.Seek(0, io.SeekStart); err != nil {
				s.sendPacket(packet.KindCancel, []byte("Seek error"), "CN (Cancel) Seek error")
				s.finish(false, fmt.Sprintf("File seek error: %v", err))
				return
			}
			s.bytesTransferred = 0
			s.sendHeader()
		}

	case packet.KindNotReady:
		reason := string(pkt.Payload)
		s.event(EventReceived, "NR (Not Ready) "+reason)
		s.finish(false, "Remote not ready: "+reason)

	default:
		s.event(EventInfo, fmt.Sprintf("Ignoring unexpected %s while %s", pkt.Kind, s.state))
	}
}

// handleSenderDataInterrupt processes packets that arrive while the sender
// is mid-stream. Cancel and Text are handled before role dispatch; any
// other packet here is a protocol violation the sender cannot recover
// from.
func (s *Session) handleSenderDataInterrupt(pkt packet.Packet) {
	logrus.WithFields(logrus.Fields{
		"function": "handleSenderDataInterrupt",
		"kind":     pkt.Kind.String(),
	}).Warn("Unexpected packet during data transmission")

	s.abortSendData()
}

// abortSendData cancels the transfer after an unexpected byte or packet
// arrived during data transmission.
func (s *Session) abortSendData() {
	s.reader.Reset()
	s.sendPacket(packet.KindCancel, []byte("Unexpected data during send"), "CN (Cancel) Unexpected data during send")
	s.finish(false, "Protocol error: unexpected data during send")
}

// handleReceiverControl processes control packets while the receiver is
// waiting for SendInit or a Header.
func (s *Session) handleReceiverControl(pkt packet.Packet) {
	s.disarmDeadline()

	switch pkt.Kind {
	case packet.KindSendInit:
		// A duplicate SendInit in ReceiverHeader is re-acknowledged;
		// the sender may have missed the first ReceiveReady.
		s.event(EventReceived, "SI (Send Init)")
		s.sendPacket(packet.KindReceiveReady, nil, "RR (Receive Ready)")
		s.state = StateReceiverHeader

	case packet.KindHeader:
		s.handleHeader(pkt.Payload)

	case packet.KindEot:
		s.event(EventReceived, "ET (End of Transmission)")
		s.sendPacket(packet.KindAckEot, nil, "AT (Ack End of Transmission)")
		if s.filename != "" {
			s.finish(true, fmt.Sprintf("Received %s (%d bytes)", s.filename, s.bytesTransferred))
		} else {
			s.finish(true, "Transfer complete (no files)")
		}

	default:
		s.event(EventInfo, fmt.Sprintf("Ignoring unexpected %s while %s", pkt.Kind, s.state))
	}
}

// handleHeader parses a Header payload and opens the target file. A bad
// filename or storage failure rejects the transfer with NotReady, carrying
// the underlying reason as free text.
func (s *Session) handleHeader(payload []byte) {
	name, size := packet.ParseHeaderPayload(payload)
	s.event(EventReceived, fmt.Sprintf("HD (Header) file=%s size=%d", name, size))

	if name == "" {
		s.sendPacket(packet.KindNotReady, []byte("Invalid filename"), "NR (Not Ready) Invalid filename")
		s.finish(false, "Invalid filename in header")
		return
	}

	safeName, err := ValidateFileName(name)
	if err != nil {
		s.sendPacket(packet.KindNotReady, []byte("Invalid filename"), "NR (Not Ready) Invalid filename")
		s.finish(false, fmt.Sprintf("Unsafe filename in header: %s", name))
		return
	}

	s.filename = safeName
	s.fileSize = size
	s.bytesTransferred = 0

	path := filepath.Join(s.downloadDir, safeName)
	f, err := s.storage.OpenWrite(path)
	if err != nil {
		reason := fmt.Sprintf("Cannot create file: %v", err)
		s.sendPacket(packet.KindNotReady, []byte(reason), "NR (Not Ready) "+reason)
		s.finish(false, reason)
		return
	}

	logrus.WithFields(logrus.Fields{
		"function":  "handleHeader",
		"file_name": safeName,
		"file_size": size,
		"path":      path,
	}).Info("Incoming file accepted")

	s.file = f
	if s.sendPacket(packet.KindReceiveFile, nil, "RF (Receive File)") {
		s.state = StateReceiverData
		s.event(EventInfo, fmt.Sprintf("Receiving %s...", safeName))
	}
}

// handleReceiverData processes the data stream while receiving.
func (s *Session) handleReceiverData(pkt packet.Packet) {
	switch pkt.Kind {
	case packet.KindData:
		if s.file == nil {
			return
		}
		if _, err := s.file.Write(pkt.Payload); err != nil {
			reason := fmt.Sprintf("Write error: %v", err)
			s.sendPacket(packet.KindCancel, []byte(reason), "CN (Cancel) "+reason)
			s.finish(false, fmt.Sprintf("File write error: %v", err))
			return
		}
		s.bytesTransferred += uint64(len(pkt.Payload))
		// The declared size is advisory; trust the stream over the header.
		if s.fileSize > 0 && s.bytesTransferred > s.fileSize {
			s.fileSize = s.bytesTransferred
		}
		s.progress()

	case packet.KindEof:
		s.event(EventReceived, "EF (End of File)")
		s.closeFile()
		s.sendPacket(packet.KindAckEof, nil, "AF (Ack End of File)")
		// The peer may follow with another Header or with Eot.
		s.state = StateReceiverHeader
		s.event(EventSuccess, fmt.Sprintf("File received: %s (%d bytes)", s.filename, s.bytesTransferred))

	case packet.KindEot:
		s.event(EventReceived, "ET (End of Transmission)")
		s.closeFile()
		s.sendPacket(packet.KindAckEot, nil, "AT (Ack End of Transmission)")
		s.finish(true, fmt.Sprintf("Received %s (%d bytes)", s.filename, s.bytesTransferred))

	default:
		s.event(EventInfo, fmt.Sprintf("Ignoring unexpected %s while %s", pkt.Kind, s.state))
	}
}

// sendInit transmits SendInit and arms the deadline.
func (s *Session) sendInit() bool {
	if !s.sendPacket(packet.KindSendInit, nil, "SI (Send Init)") {
		return false
	}
	s.armDeadline()
	return true
}

// sendHeader transmits the Header for the current file and moves to
// SenderHeader.
func (s *Session) sendHeader() {
	payload := packet.EncodeHeaderPayload(s.filename, s.fileSize)
	note := fmt.Sprintf("HD (Header) file=%s size=%d", s.filename, s.fileSize)
	if !s.sendPacket(packet.KindHeader, payload, note) {
		return
	}
	s.state = StateSenderHeader
	s.armDeadline()
}

// sendDataLoop emits Data packets until the file is exhausted, then closes
// it and sends Eof. Data transmission is half-duplex: nothing but a Cancel
// is expected from the peer until Eof is acknowledged.
func (s *Session) sendDataLoop() {
	s.state = StateSenderData
	s.event(EventInfo, "Sending data...")

	buf := make([]byte, MaxDataLen)
	for s.state == StateSenderData {
		n, err := s.file.Read(buf)
		if n > 0 {
			if !s.sendPacket(packet.KindData, buf[:n], "") {
				return
			}
			s.bytesTransferred += uint64(n)
			s.progress()
		}
		if err == io.EOF {
			s.closeFile()
			if s.sendPacket(packet.KindEof, nil, "EF (End of File)") {
				s.state = StateSenderEof
				s.armDeadline()
			}
			return
		}
		if err != nil {
			s.sendPacket(packet.KindCancel, []byte("Read error"), "CN (Cancel) Read error")
			s.finish(false, fmt.Sprintf("File read error: %v", err))
			return
		}
	}
}

// sendPacket encodes and transmits one frame, logging it as a sent event.
// A transport failure terminates the session; the returned bool tells the
// caller whether the session is still alive.
func (s *Session) sendPacket(kind packet.Kind, payload []byte, note string) bool {
	frame, err := packet.Encode(kind, payload)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "sendPacket",
			"kind":     kind.String(),
			"error":    err.Error(),
		}).Error("Failed to encode packet")
		s.finish(false, fmt.Sprintf("Encode error: %v", err))
		return false
	}

	if err := s.transport.Send(frame); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "sendPacket",
			"kind":     kind.String(),
			"error":    err.Error(),
		}).Error("Transport send failed")
		s.finish(false, fmt.Sprintf("Transport error: %v", err))
		return false
	}

	if note != "" {
		s.event(EventSent, note)
	}
	return true
}

// armDeadline schedules the single outstanding deadline. The generation
// counter lets a stale timer that already fired be recognized and ignored.
func (s *Session) armDeadline() {
	s.deadlineGen++
	gen := s.deadlineGen
	s.clock.Arm(s.timeout, func() {
		s.onDeadline(gen)
	})
}

// disarmDeadline cancels the outstanding deadline, if any.
func (s *Session) disarmDeadline() {
	s.deadlineGen++
	s.clock.Disarm()
}

// onDeadline handles a deadline expiry. In SenderInit below the retry
// bound it resends SendInit; every other non-terminal expiry notifies the
// peer with Cancel and fails the transfer.
func (s *Session) onDeadline(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.deadlineGen {
		return
	}
	if s.state == StateIdle || s.state.Terminal() {
		return
	}

	if s.state == StateSenderInit && s.initRetries < MaxInitRetries {
		s.initRetries++
		logrus.WithFields(logrus.Fields{
			"function":    "onDeadline",
			"retry":       s.initRetries,
			"max_retries": MaxInitRetries,
		}).Info("Timeout waiting for receiver, retrying SendInit")

		s.event(EventInfo, fmt.Sprintf("Timeout, retrying SI (%d/%d)...", s.initRetries, MaxInitRetries))
		s.sendInit()
		return
	}

	logrus.WithFields(logrus.Fields{
		"function": "onDeadline",
		"state":    s.state.String(),
	}).Warn("Timeout waiting for remote")

	s.event(EventError, "Timeout - no response from remote")
	s.sendPacket(packet.KindCancel, []byte("Timeout"), "CN (Cancel) Timeout")
	s.finish(false, "Timeout: no response from remote station")
}

// finish moves the session to a terminal state. It is idempotent, closes
// any open file, disarms the deadline, and fires the finished callback
// exactly once per transfer.
func (s *Session) finish(success bool, message string) {
	if s.state.Terminal() {
		return
	}

	s.disarmDeadline()
	s.closeFile()

	if success {
		s.state = StateDone
		s.event(EventSuccess, message)
	} else {
		s.state = StateFailed
		s.event(EventError, message)
	}

	logrus.WithFields(logrus.Fields{
		"function":          "finish",
		"success":           success,
		"role":              s.role.String(),
		"file_name":         s.filename,
		"bytes_transferred": s.bytesTransferred,
		"message":           message,
	}).Info("Transfer finished")

	if s.finishedCallback != nil {
		s.finishedCallback(success, message)
	}
}

// closeFile closes the session's file handle if one is open.
func (s *Session) closeFile() {
	if s.file == nil {
		return
	}
	if err := s.file.Close(); err != nil {
		logrus.WithFields(logrus.Fields{
			"function":  "closeFile",
			"file_name": s.filename,
			"error":     err.Error(),
		}).Warn("Failed to close file handle")
	}
	s.file = nil
}

// event delivers one protocol-log line to the event callback.
func (s *Session) event(kind EventKind, message string) {
	if s.eventCallback != nil {
		s.eventCallback(kind, message)
	}
}

// progress delivers the running byte count to the progress callback.
func (s *Session) progress() {
	if s.progressCallback != nil {
		s.progressCallback(s.bytesTransferred, s.fileSize)
	}
}
