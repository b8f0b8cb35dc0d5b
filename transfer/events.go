package transfer

import "fmt"

// EventKind classifies entries in the protocol control log delivered
// through the OnEvent callback.
type EventKind uint8

const (
	// EventInfo is general lifecycle narration.
	EventInfo EventKind = iota
	// EventSent records a protocol frame handed to the transport.
	EventSent
	// EventReceived records a protocol frame decoded from the stream.
	EventReceived
	// EventError records a failure condition.
	EventError
	// EventSuccess records a completed file or transfer.
	EventSuccess
)

// String returns the log label for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventInfo:
		return "info"
	case EventSent:
		return "sent"
	case EventReceived:
		return "received"
	case EventError:
		return "error"
	case EventSuccess:
		return "success"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}
