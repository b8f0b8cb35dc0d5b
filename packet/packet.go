// Package packet implements the YAPP wire format.
//
// YAPP (WA7MBL Rev 1.1) frames all begin with a one-byte class marker
// followed by a one-byte length or subtype field:
//
//	<class-byte> <len-or-subtype-byte> [payload...]
//
// Acknowledgement frames (ACK class) carry their subtype in the second
// header byte and have no payload. Data frames use a length byte of zero
// to denote 256 payload bytes. All other payload-bearing frames are
// length-prefixed with 0-255 payload bytes.
//
// Example:
//
//	frame, err := packet.Encode(packet.KindHeader, packet.EncodeHeaderPayload("a.txt", 10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pkt, consumed, status := packet.DecodeNext(frame)
//	if status == packet.DecodeOK {
//	    name, size := packet.ParseHeaderPayload(pkt.Payload)
//	    fmt.Printf("header for %s (%d bytes), frame was %d bytes\n", name, size, consumed)
//	}
package packet

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
)

// ASCII control codes used as frame class markers.
const (
	SOH byte = 0x01 // Header
	STX byte = 0x02 // Data
	ETX byte = 0x03 // Eof
	EOT byte = 0x04 // Eot
	ENQ byte = 0x05 // SendInit
	ACK byte = 0x06 // acknowledgement class, subtype in second byte
	DLE byte = 0x10 // Text
	NAK byte = 0x15 // NotReady or Resume
	CAN byte = 0x18 // Cancel
)

// ACK subtype codes carried in the second header byte.
const (
	ackReceiveReady byte = 0x01
	ackReceiveFile  byte = 0x02
	ackEof          byte = 0x03
	ackEot          byte = 0x04
	ackCancel       byte = 0x05
	ackReceiveTpk   byte = ACK // ACK ACK requests the YappC extension
)

// resumeMarker is the leading payload byte that distinguishes a Resume
// request from a NotReady rejection inside the shared NAK class.
const resumeMarker byte = 'R'

// Kind identifies the logical type of a YAPP packet.
type Kind uint8

const (
	KindSendInit Kind = iota
	KindReceiveReady
	KindReceiveFile
	KindAckEof
	KindAckEot
	KindCancelAck
	KindReceiveTpk
	KindHeader
	KindData
	KindEof
	KindEot
	KindNotReady
	KindResume
	KindCancel
	KindText
)

// String returns the two-letter protocol mnemonic for the kind.
func (k Kind) String() string {
	switch k {
	case KindSendInit:
		return "SI"
	case KindReceiveReady:
		return "RR"
	case KindReceiveFile:
		return "RF"
	case KindAckEof:
		return "AF"
	case KindAckEot:
		return "AT"
	case KindCancelAck:
		return "CA"
	case KindReceiveTpk:
		return "RT"
	case KindHeader:
		return "HD"
	case KindData:
		return "DT"
	case KindEof:
		return "EF"
	case KindEot:
		return "ET"
	case KindNotReady:
		return "NR"
	case KindResume:
		return "RE"
	case KindCancel:
		return "CN"
	case KindText:
		return "TX"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Packet is one decoded protocol unit. Packets are transient: they are
// constructed, encoded or decoded, and discarded.
type Packet struct {
	Kind    Kind
	Payload []byte
}

// ErrPayloadTooLarge indicates a payload that cannot be expressed by the
// single length byte of the wire format.
var ErrPayloadTooLarge = errors.New("payload exceeds wire format length limit")

// ErrUnexpectedPayload indicates a payload supplied for a kind whose frame
// carries none.
var ErrUnexpectedPayload = errors.New("packet kind does not carry a payload")

// ErrEmptyDataPacket indicates a Data packet with no payload, which the wire
// format cannot express (a length byte of zero means 256).
var ErrEmptyDataPacket = errors.New("data packet payload must be 1-256 bytes")

// Encode converts a logical packet to its wire bytes.
func Encode(kind Kind, payload []byte) ([]byte, error) {
	switch kind {
	case KindSendInit:
		return encodeBare(ENQ, 0x01, payload)
	case KindReceiveReady:
		return encodeBare(ACK, ackReceiveReady, payload)
	case KindReceiveFile:
		return encodeBare(ACK, ackReceiveFile, payload)
	case KindAckEof:
		return encodeBare(ACK, ackEof, payload)
	case KindAckEot:
		return encodeBare(ACK, ackEot, payload)
	case KindCancelAck:
		return encodeBare(ACK, ackCancel, payload)
	case KindReceiveTpk:
		return encodeBare(ACK, ackReceiveTpk, payload)
	case KindEof:
		return encodeBare(ETX, 0x01, payload)
	case KindEot:
		return encodeBare(EOT, 0x01, payload)
	case KindHeader:
		return encodePrefixed(SOH, payload)
	case KindNotReady, KindResume:
		return encodePrefixed(NAK, payload)
	case KindCancel:
		return encodePrefixed(CAN, payload)
	case KindText:
		return encodePrefixed(DLE, payload)
	case KindData:
		return encodeData(payload)
	default:
		return nil, fmt.Errorf("unknown packet kind %d", uint8(kind))
	}
}

// encodeBare builds a two-byte frame with no payload.
func encodeBare(class, second byte, payload []byte) ([]byte, error) {
	if len(payload) > 0 {
		return nil, ErrUnexpectedPayload
	}
	return []byte{class, second}, nil
}

// encodePrefixed builds a length-prefixed frame.
func encodePrefixed(class byte, payload []byte) ([]byte, error) {
	if len(payload) > 255 {
		return nil, ErrPayloadTooLarge
	}
	frame := make([]byte, 2+len(payload))
	frame[0] = class
	frame[1] = byte(len(payload))
	copy(frame[2:], payload)
	return frame, nil
}

// encodeData builds a Data frame. A length byte of zero denotes 256 bytes.
func encodeData(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyDataPacket
	}
	if len(payload) > 256 {
		return nil, ErrPayloadTooLarge
	}
	frame := make([]byte, 2+len(payload))
	frame[0] = STX
	frame[1] = byte(len(payload) % 256)
	copy(frame[2:], payload)
	return frame, nil
}

// DecodeStatus reports the outcome of a DecodeNext call.
type DecodeStatus uint8

const (
	// DecodeOK indicates a complete packet was decoded.
	DecodeOK DecodeStatus = iota
	// DecodeNeedMore indicates the buffer holds an incomplete frame.
	// No bytes were consumed; the caller should wait for more input.
	DecodeNeedMore
	// DecodeInvalid indicates an unrecognized leading byte. The caller
	// must skip exactly one byte and retry, which bounds memory growth
	// from garbage input and guarantees forward progress.
	DecodeInvalid
)

// DecodeNext attempts to decode one packet from the front of buf.
// It returns the decoded packet, the number of bytes it occupied on the
// wire, and the decode status. The payload is copied out of buf, so the
// caller may reuse the buffer immediately.
func DecodeNext(buf []byte) (Packet, int, DecodeStatus) {
	if len(buf) < 2 {
		return Packet{}, 0, DecodeNeedMore
	}

	class := buf[0]
	second := buf[1]

	switch class {
	case ENQ:
		if second != 0x01 {
			return Packet{}, 0, DecodeInvalid
		}
		return Packet{Kind: KindSendInit}, 2, DecodeOK

	case ETX:
		if second != 0x01 {
			return Packet{}, 0, DecodeInvalid
		}
		return Packet{Kind: KindEof}, 2, DecodeOK

	case EOT:
		if second != 0x01 {
			return Packet{}, 0, DecodeInvalid
		}
		return Packet{Kind: KindEot}, 2, DecodeOK

	case ACK:
		kind, ok := ackKind(second)
		if !ok {
			return Packet{}, 0, DecodeInvalid
		}
		return Packet{Kind: kind}, 2, DecodeOK

	case STX:
		length := int(second)
		if length == 0 {
			length = 256
		}
		return decodePayload(KindData, buf, length)

	case SOH:
		return decodePayload(KindHeader, buf, int(second))

	case NAK:
		pkt, consumed, status := decodePayload(KindNotReady, buf, int(second))
		if status == DecodeOK && len(pkt.Payload) > 0 && pkt.Payload[0] == resumeMarker {
			pkt.Kind = KindResume
		}
		return pkt, consumed, status

	case CAN:
		return decodePayload(KindCancel, buf, int(second))

	case DLE:
		return decodePayload(KindText, buf, int(second))

	default:
		return Packet{}, 0, DecodeInvalid
	}
}

// ackKind maps an ACK subtype byte to its packet kind.
func ackKind(subtype byte) (Kind, bool) {
	switch subtype {
	case ackReceiveReady:
		return KindReceiveReady, true
	case ackReceiveFile:
		return KindReceiveFile, true
	case ackEof:
		return KindAckEof, true
	case ackEot:
		return KindAckEot, true
	case ackCancel:
		return KindCancelAck, true
	case ackReceiveTpk:
		return KindReceiveTpk, true
	default:
		return 0, false
	}
}

// decodePayload extracts a length-delimited payload following the two-byte
// header, copying it out of the caller's buffer.
func decodePayload(kind Kind, buf []byte, length int) (Packet, int, DecodeStatus) {
	if len(buf) < 2+length {
		return Packet{}, 0, DecodeNeedMore
	}
	payload := make([]byte, length)
	copy(payload, buf[2:2+length])
	return Packet{Kind: kind, Payload: payload}, 2 + length, DecodeOK
}

// EncodeHeaderPayload builds a Header payload:
// filename bytes, NUL, decimal ASCII file size, NUL.
func EncodeHeaderPayload(filename string, size uint64) []byte {
	payload := make([]byte, 0, len(filename)+22)
	payload = append(payload, filename...)
	payload = append(payload, 0x00)
	payload = append(payload, strconv.FormatUint(size, 10)...)
	payload = append(payload, 0x00)
	return payload
}

// ParseHeaderPayload extracts the filename and declared size from a Header
// payload. The size field is advisory only: if it cannot be parsed, the
// size falls back to zero rather than failing the transfer.
func ParseHeaderPayload(payload []byte) (string, uint64) {
	parts := bytes.Split(payload, []byte{0x00})
	if len(parts) < 1 {
		return "", 0
	}
	filename := string(parts[0])
	if len(parts) < 2 {
		return filename, 0
	}
	size, err := strconv.ParseUint(string(parts[1]), 10, 64)
	if err != nil {
		return filename, 0
	}
	return filename, size
}

// EncodeResumePayload builds a Resume request payload:
// 'R', NUL, decimal ASCII received size, NUL.
func EncodeResumePayload(receivedSize uint64) []byte {
	payload := make([]byte, 0, 22)
	payload = append(payload, resumeMarker, 0x00)
	payload = append(payload, strconv.FormatUint(receivedSize, 10)...)
	payload = append(payload, 0x00)
	return payload
}

// ParseResumeOffset extracts the requested restart offset from a Resume
// payload. Like the header size field, an unparsable offset falls back to
// zero.
func ParseResumeOffset(payload []byte) uint64 {
	parts := bytes.Split(payload, []byte{0x00})
	if len(parts) < 2 || len(parts[0]) == 0 || parts[0][0] != resumeMarker {
		return 0
	}
	offset, err := strconv.ParseUint(string(parts[1]), 10, 64)
	if err != nil {
		return 0
	}
	return offset
}
