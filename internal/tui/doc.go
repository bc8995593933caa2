// Package tui implements the interactive dashboard for a single display.
//
// The dashboard is a full-screen Bubble Tea program showing the live state
// snapshot of one display with single-key controls for the common
// operations. It follows the Elm architecture with immutable state updates
// and a Model-Update-View pattern.
//
// # Layout
//
// The panel groups the snapshot into four sections: power and video, audio,
// health (thermal sensors and power policies) and identity (serial number,
// model, firmware, platform). Fields the display did not answer render as a
// dimmed "n/a" rather than disappearing, so an unsupported read is visible
// instead of silent.
//
// # Key bindings
//
//   - p: toggle power
//   - b: toggle backlight
//   - m: toggle mute
//   - +/-: speaker volume in steps of 5
//   - i: cycle through the common input sources
//   - r: refresh the snapshot
//   - q: quit
//
// # Concurrency
//
// All display I/O runs as tea.Cmd functions off the update loop. Only one
// exchange is in flight at a time: action keys are ignored while a refresh
// or set operation is pending, which keeps the serialized client from
// queueing a burst of conflicting writes.
//
// # Failures
//
// A transport failure raises a centered overlay naming the error category
// (timeout, connection refused, not supported) with a troubleshooting hint.
// A display that answers but refuses the command (NAV) is reported in the
// status line instead; the panel stays live.
//
// # Usage Example
//
//	client := display.NewClient("192.168.1.50", 1)
//	if err := tui.Run("lobby", client.Target(), client); err != nil {
//	    log.Fatal(err)
//	}
package tui
