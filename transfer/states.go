package transfer

// State is the current position of a session in the protocol state machine.
//
// Sender path:   Idle -> SenderInit -> SenderHeader -> SenderData ->
// SenderEof -> SenderEot -> Done.
// Receiver path: Idle -> ReceiverWait -> ReceiverHeader -> ReceiverData ->
// (ReceiverHeader for the next header or Eot) -> Done.
// Failed is reached from any non-terminal state on cancellation, timeout,
// rejection, or protocol violation.
type State uint8

const (
	// StateIdle means no transfer is in progress. The engine passes
	// inbound bytes through untouched in this state.
	StateIdle State = iota

	// StateSenderInit means SendInit was sent and the session is waiting
	// for ReceiveReady or ReceiveFile. This is the only state with
	// automatic retry on timeout.
	StateSenderInit

	// StateSenderHeader means the Header was sent and the session is
	// waiting for ReceiveFile, NotReady, or a Resume request.
	StateSenderHeader

	// StateSenderData means the session is emitting Data packets.
	StateSenderData

	// StateSenderEof means Eof was sent and the session is waiting for
	// AckEof.
	StateSenderEof

	// StateSenderEot means Eot was sent and the session is waiting for
	// AckEot.
	StateSenderEot

	// StateReceiverWait means the session is waiting for the peer's
	// SendInit.
	StateReceiverWait

	// StateReceiverHeader means ReceiveReady or AckEof was sent and the
	// session is waiting for a Header or Eot.
	StateReceiverHeader

	// StateReceiverData means ReceiveFile was sent and the session is
	// receiving Data packets.
	StateReceiverData

	// StateDone is the successful terminal state.
	StateDone

	// StateFailed is the unsuccessful terminal state.
	StateFailed
)

// String returns a short name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSenderInit:
		return "sender_init"
	case StateSenderHeader:
		return "sender_header"
	case StateSenderData:
		return "sender_data"
	case StateSenderEof:
		return "sender_eof"
	case StateSenderEot:
		return "sender_eot"
	case StateReceiverWait:
		return "receiver_wait"
	case StateReceiverHeader:
		return "receiver_header"
	case StateReceiverData:
		return "receiver_data"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is Done or Failed. No further
// protocol activity occurs in a terminal state until the session is Reset.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// waiting reports whether the session is waiting on the peer in this
// state. The protocol deadline is armed exactly while a waiting state is
// current and is rearmed whenever a dispatched packet leaves the machine
// in one.
func (s State) waiting() bool {
	switch s {
	case StateSenderInit, StateSenderHeader, StateSenderEof, StateSenderEot,
		StateReceiverWait, StateReceiverHeader, StateReceiverData:
		return true
	default:
		return false
	}
}

// Role indicates which side of the transfer this session plays.
type Role uint8

const (
	// RoleNone means no transfer has been started.
	RoleNone Role = iota
	// RoleSender means the session is transmitting a file.
	RoleSender
	// RoleReceiver means the session is receiving a file.
	RoleReceiver
)

// String returns a short name for the role.
func (r Role) String() string {
	switch r {
	case RoleSender:
		return "sender"
	case RoleReceiver:
		return "receiver"
	default:
		return "none"
	}
}
