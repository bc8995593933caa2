// Package protocol implements the Philips SICP display control codec.
//
// This package handles construction of SICP request frames, classification of
// display replies, and the label/code tables for every enumerated command
// parameter. It is pure: no I/O, no state, just bytes in and bytes out.
//
// # Frame Format
//
// Every SICP frame, request or reply, has this structure:
//   - Size byte: total frame length including itself
//   - Monitor ID: target display address (0 = broadcast)
//   - Group ID: always 0x00 on requests, 0x01 on replies
//   - Command: one-byte opcode (or 0x00 marking a control reply)
//   - Parameters / data: zero or more bytes
//   - Checksum: XOR of all preceding bytes
//
// # Replies
//
// Displays answer with one of two shapes. Set commands get a control reply
// whose single code byte reports the outcome: ACK (0x06), not available
// (0x18), or checksum/format rejection (0x15). Get commands get a data reply
// that echoes the opcode and carries the value bytes. Classify sorts any
// byte sequence into one of these, and is total: malformed input classifies
// rather than erroring.
//
// # Usage Example - Building
//
//	// Build a power-on request for monitor 1
//	msg := protocol.BuildRequest(1, protocol.CmdPowerStateSet, protocol.PowerOn)
//
//	// Build a volume get request
//	msg := protocol.BuildRequest(1, protocol.CmdVolumeGet)
//
// # Usage Example - Classifying
//
//	resp := protocol.Classify(raw)
//	switch resp.Kind {
//	case protocol.KindAck:
//	    // set command succeeded
//	case protocol.KindData:
//	    payload := protocol.StripCommandEcho(sent, resp.Payload)
//	}
//
// # Value Domains
//
// Enumerated parameters (input sources, picture styles, remote keys, power
// save modes and the rest) are described by Domain tables that resolve
// human-readable labels and aliases to codes and decode codes back to names.
// Unknown codes never fail to decode; they format as hex.
//
// # Thread Safety
//
// All functions are stateless and safe for concurrent use. Domain tables are
// read-only after package initialization.
package protocol
