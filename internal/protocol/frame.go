package protocol

import (
	"fmt"
)

// Frame layout constants
const (
	// GroupBroadcast is the group ID used for every request this system
	// sends. The protocol supports non-zero group addressing but no
	// operation here uses it.
	GroupBroadcast = 0x00

	// MonitorBroadcast addresses all displays on a shared control bus.
	MonitorBroadcast = 0x00

	// MinFrameSize is the smallest legal frame: size, monitor ID, group ID,
	// command and checksum with no parameters.
	MinFrameSize = 5

	// MaxParams is the largest parameter count a frame can carry while the
	// self-inclusive size still fits in one byte.
	MaxParams = 250
)

// Byte offsets shared by request and response frames.
const (
	OffsetSize      = 0
	OffsetMonitorID = 1
	OffsetGroupID   = 2
	OffsetCommand   = 3
)

// Checksum returns the XOR fold of all bytes. A complete frame carries this
// value as its final byte, computed over everything before it.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}

// BuildRequest constructs a complete SICP request frame.
//
// Frame structure:
//
//	[0]   size         Total frame length, self-inclusive
//	[1]   monitor_id   Target display address (0 = broadcast)
//	[2]   0x00         Group ID, always the broadcast group
//	[3]   command      Operation opcode
//	[4+]  params       Zero or more command parameter bytes
//	[N]   checksum     XOR of all preceding bytes
//
// The result is deterministic: the same inputs always produce the same byte
// sequence. Parameter counts beyond MaxParams cannot be framed; no operation
// in the protocol comes close (the largest request carries 7 parameters).
func BuildRequest(monitorID byte, command byte, params ...byte) []byte {
	frame := make([]byte, 0, MinFrameSize+len(params))
	frame = append(frame, byte(MinFrameSize+len(params)), monitorID, GroupBroadcast, command)
	frame = append(frame, params...)
	frame = append(frame, Checksum(frame))
	return frame
}

// ValidateFrame checks that a frame has a correct size field and checksum.
// Useful for testing outgoing messages and for simulated displays validating
// inbound requests.
func ValidateFrame(frame []byte) error {
	if len(frame) < MinFrameSize {
		return fmt.Errorf("frame too short: %d bytes (minimum %d)", len(frame), MinFrameSize)
	}
	if int(frame[OffsetSize]) != len(frame) {
		return fmt.Errorf("size field %d does not match frame length %d", frame[OffsetSize], len(frame))
	}
	if sum := Checksum(frame[:len(frame)-1]); sum != frame[len(frame)-1] {
		return fmt.Errorf("checksum mismatch: computed 0x%02X, frame carries 0x%02X", sum, frame[len(frame)-1])
	}
	return nil
}
