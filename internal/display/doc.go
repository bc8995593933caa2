// Package display provides a client for controlling Philips professional
// displays over the SICP protocol.
//
// This package implements the operation layer on top of the frame codec in
// internal/protocol: building command frames, exchanging them over TCP or
// RS232, and decoding the replies into Go values. It covers power and
// backlight control, input switching, picture adjustment, audio, device
// identity and network information queries.
//
// # Operation Groups
//
// Operations follow the protocol's own grouping:
//   - Power: power state, backlight, cold start behavior, wake-on-LAN,
//     auto signal detection, power saving and APM modes
//   - Video: input source, brightness, color temperature (preset and
//     precise Kelvin), picture style, test patterns, 4K output
//   - Audio: speaker and line-out volume, mute, combined A/V mute
//   - System: monitor and group IDs, OSD timeout, remote lock, remote
//     key simulation
//   - Info: temperatures, serial number, model and platform details,
//     IP configuration
//
// # Usage Example
//
//	// Create a client for a display at a known address
//	client := display.NewClient("192.168.1.50", 1)
//
//	// Power the display on
//	ok, err := client.SetPower(true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !ok {
//	    log.Println("display refused the command")
//	}
//
//	// Switch to HDMI 1
//	code, err := protocol.InputSource.Code("hdmi1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client.SetInputSource(code, 0)
//
//	// Read everything at once
//	snap, err := client.FetchStatus()
//
// # Reply Semantics
//
// Set operations return (bool, error): true for an acknowledged command,
// false with a nil error when the display answers "not available" or
// rejects the frame, and a non-nil error only for transport failures.
// A false result is a display decision, not a fault.
//
// Get operations return typed errors instead: a NAV reply becomes a
// NotSupported error, a NACK becomes a ChecksumFormat error, and replies
// that cannot be decoded become Malformed errors.
//
// # Thread Safety
//
// Client instances are safe for concurrent use. All operations on one
// client serialize through an internal mutex because the protocol carries
// no request correlation; responses are matched to requests purely by
// ordering. Use one Client per physical display.
//
// # Error Handling
//
// All errors are *DisplayError values carrying an error type, the opcode
// involved and the underlying cause. Network errors are further classified
// (timeout, connection refused, DNS) for retry decisions and operator
// hints.
package display
