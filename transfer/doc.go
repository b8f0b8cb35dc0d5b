// Package transfer implements the YAPP file transfer engine.
//
// A Session is the unit of work for one file. It plays either the sender
// or the receiver role of the half-duplex YAPP protocol, consuming decoded
// packets from the byte stream, emitting response frames through its
// Transport, driving file I/O through its Storage collaborator, and
// reporting lifecycle changes through caller-supplied callbacks.
//
// At most one transfer is active per Session. Starting a second transfer
// while one is active fails without disturbing the active session; after a
// transfer reaches a terminal state the session must be Reset before it can
// be reused.
//
// Example (sender side):
//
//	session := transfer.NewSession(transport)
//	session.OnProgress(func(transferred, total uint64) {
//	    fmt.Printf("%d/%d bytes\n", transferred, total)
//	})
//	session.OnFinished(func(success bool, message string) {
//	    fmt.Println(message)
//	})
//
//	if _, err := session.StartSend("report.txt"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Deliver inbound serial bytes as they arrive:
//	session.Feed(data)
//
// All public operations serialize on one internal lock, so Feed may be
// called from the transport goroutine while the caller invokes Cancel from
// another. Callbacks are invoked with that lock held and must not call back
// into the session.
package transfer
