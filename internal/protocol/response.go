package protocol

import "fmt"

// Control reply codes. A control reply acknowledges a command without
// carrying data; the code sits at the command offset's following byte.
const (
	ControlAck  = 0x06 // command accepted and executed
	ControlNAV  = 0x18 // command not available in the current state
	ControlNACK = 0x15 // request rejected, bad checksum or format
)

// ResponseKind discriminates the classes of reply a display can produce.
type ResponseKind int

const (
	// KindMalformed covers replies too short to classify.
	KindMalformed ResponseKind = iota
	// KindAck is a positive control reply.
	KindAck
	// KindNotSupported is the NAV control reply: the display understood the
	// command but cannot act on it right now (wrong power state, feature not
	// present on this model).
	KindNotSupported
	// KindChecksumError is the NACK control reply: the display rejected the
	// request as corrupt or ill-formed.
	KindChecksumError
	// KindUnknownControl is a control reply with a code outside the known
	// three. The code is preserved for diagnostics.
	KindUnknownControl
	// KindData is a data reply carrying a payload for a get command.
	KindData
)

func (k ResponseKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindAck:
		return "ack"
	case KindNotSupported:
		return "not-supported"
	case KindChecksumError:
		return "checksum-error"
	case KindUnknownControl:
		return "unknown-control"
	case KindData:
		return "data"
	default:
		return fmt.Sprintf("ResponseKind(%d)", int(k))
	}
}

// Response is a classified display reply.
type Response struct {
	Kind ResponseKind

	// Code is the control code for control replies, including unknown ones.
	Code byte

	// Command is the echoed opcode for data replies.
	Command byte

	// Payload is the data bytes for data replies: everything between the
	// echoed opcode and the trailing checksum. May be empty.
	Payload []byte

	// Raw is the reply exactly as received.
	Raw []byte
}

func (r Response) String() string {
	switch r.Kind {
	case KindData:
		return fmt.Sprintf("data reply to %s, %d-byte payload", CommandName(r.Command), len(r.Payload))
	case KindUnknownControl:
		return fmt.Sprintf("control reply 0x%02X", r.Code)
	default:
		return r.Kind.String()
	}
}

// Classify interprets a raw reply. It is total: every input produces a
// Response, never an error.
//
// Replies come in two shapes. Control replies report the outcome of a set
// command:
//
//	[0]  size
//	[1]  monitor_id
//	[2]  0x01
//	[3]  0x00
//	[4]  code        ACK, NAV or NACK
//	[5]  checksum
//
// Data replies answer a get command, echoing the opcode:
//
//	[0]  size
//	[1]  monitor_id
//	[2]  0x01
//	[3]  command
//	[4+] data
//	[N]  checksum
//
// The discriminator is the byte at the command offset: 0x00 marks a control
// reply. Checksums on replies are not verified; displays in the field have
// been observed producing off-by-one size fields, and the command echo plus
// payload shape is the reliable signal.
func Classify(raw []byte) Response {
	if len(raw) < MinFrameSize {
		return Response{Kind: KindMalformed, Raw: raw}
	}
	if len(raw) >= 6 && raw[OffsetCommand] == 0x00 {
		code := raw[OffsetCommand+1]
		resp := Response{Code: code, Raw: raw}
		switch code {
		case ControlAck:
			resp.Kind = KindAck
		case ControlNAV:
			resp.Kind = KindNotSupported
		case ControlNACK:
			resp.Kind = KindChecksumError
		default:
			resp.Kind = KindUnknownControl
		}
		return resp
	}
	return Response{
		Kind:    KindData,
		Command: raw[OffsetCommand],
		Payload: raw[OffsetCommand+1 : len(raw)-1],
		Raw:     raw,
	}
}

// StripCommandEcho removes a leading duplicate of the request opcode from a
// data payload. Some firmware revisions repeat the opcode as the first data
// byte; callers that know what command they sent use this to normalize.
//
// The strip happens at most once, and never when the duplicate is the only
// byte: a single-byte payload equal to the opcode is taken as real data (a
// get whose value happens to match the opcode).
func StripCommandEcho(command byte, payload []byte) []byte {
	if len(payload) > 1 && payload[0] == command {
		return payload[1:]
	}
	return payload
}
