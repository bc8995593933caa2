package display

import (
	"github.com/tidworth/sicp/internal/protocol"
)

// GroupOff disables group addressing when written as the group ID
const GroupOff = 0xFF

// GetGroupID reports the display's group ID, or GroupOff when grouping is
// disabled
func (c *Client) GetGroupID() (byte, error) {
	return c.getByte(protocol.CmdGroupIDGet)
}

// SetGroupID assigns the display to a group. Valid IDs are 1-254; GroupOff
// disables group addressing.
func (c *Client) SetGroupID(group byte) (bool, error) {
	if group != GroupOff && (group < 1 || group > 0xFE) {
		return false, NewValidationError("group ID must be between 1 and 254, or 255 to disable grouping")
	}
	return c.set(protocol.CmdGroupIDSet, group)
}

// SetMonitorID reassigns the display's monitor ID. The command is addressed
// to the current ID; on acknowledgement the client switches to the new ID so
// subsequent calls keep reaching the display. Valid IDs are 1-255.
func (c *Client) SetMonitorID(id byte) (bool, error) {
	if id < 1 {
		return false, NewValidationError("monitor ID must be between 1 and 255")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ok, err := c.setLocked(protocol.CmdMonitorIDSet, id)
	if err != nil {
		return false, err
	}
	if ok {
		c.deviceID = id
	}
	return ok, nil
}

// GetOSDTimeout reports the information OSD timeout in seconds, zero when
// the OSD is disabled
func (c *Client) GetOSDTimeout() (int, error) {
	seconds, err := c.getByte(protocol.CmdOSDInfoGet)
	if err != nil {
		return 0, err
	}
	return int(seconds), nil
}

// SetOSDTimeout sets how long the information OSD stays on screen, 1-60
// seconds. Zero disables it.
func (c *Client) SetOSDTimeout(seconds int) (bool, error) {
	if seconds < 0 || seconds > 60 {
		return false, NewValidationError("OSD timeout must be between 0 and 60 seconds")
	}
	return c.set(protocol.CmdOSDInfoSet, byte(seconds))
}

// GetRemoteLock reports the remote control and keypad lock state as a
// protocol.RemoteLock code
func (c *Client) GetRemoteLock() (byte, error) {
	return c.getByte(protocol.CmdRemoteLockGet)
}

// SetRemoteLock sets the remote control and keypad lock state. Codes come
// from protocol.RemoteLock.
func (c *Client) SetRemoteLock(mode byte) (bool, error) {
	return c.set(protocol.CmdRemoteLockSet, mode)
}

// SimulateRemoteKey injects a remote control key press as if the physical
// remote had sent it. Key codes come from protocol.RemoteKey. Useful for
// driving menus on displays whose remotes have gone missing.
func (c *Client) SimulateRemoteKey(key byte) (bool, error) {
	// second parameter is reserved and always zero
	return c.set(protocol.CmdRemoteControlSim, key, 0x00)
}
