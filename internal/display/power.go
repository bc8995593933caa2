package display

import (
	"fmt"

	"github.com/tidworth/sicp/internal/protocol"
)

// SetPower turns the display on or off
func (c *Client) SetPower(on bool) (bool, error) {
	param := byte(protocol.PowerOff)
	if on {
		param = protocol.PowerOn
	}
	return c.set(protocol.CmdPowerStateSet, param)
}

// GetPower reports whether the display is on. Power state is the one
// two-state reply with a strict encoding: codes other than on/off mean the
// reply was not a power state at all.
func (c *Client) GetPower() (bool, error) {
	state, err := c.getByte(protocol.CmdPowerStateGet)
	if err != nil {
		return false, err
	}
	switch state {
	case protocol.PowerOn:
		return true, nil
	case protocol.PowerOff:
		return false, nil
	default:
		return false, NewMalformedError(protocol.CmdPowerStateGet,
			fmt.Sprintf("unknown power state 0x%02X", state))
	}
}

// GetColdStart reports the power behavior after AC power returns
func (c *Client) GetColdStart() (byte, error) {
	return c.getByte(protocol.CmdColdStartGet)
}

// SetColdStart sets the power behavior after AC power returns
func (c *Client) SetColdStart(state byte) (bool, error) {
	return c.set(protocol.CmdColdStartSet, state)
}

// SetBacklight turns the panel backlight on or off without changing the
// power state
func (c *Client) SetBacklight(on bool) (bool, error) {
	param := byte(protocol.BacklightOff)
	if on {
		param = protocol.BacklightOn
	}
	return c.set(protocol.CmdBacklightSet, param)
}

// GetBacklight reports whether the backlight is on
func (c *Client) GetBacklight() (bool, error) {
	state, err := c.getByte(protocol.CmdBacklightGet)
	if err != nil {
		return false, err
	}
	return state == protocol.BacklightOn, nil
}

// SetWakeOnLAN enables or disables the display's Wake-on-LAN listener
func (c *Client) SetWakeOnLAN(enabled bool) (bool, error) {
	param := byte(0x00)
	if enabled {
		param = 0x01
	}
	return c.set(protocol.CmdWOLSet, param)
}

// GetWakeOnLAN reports whether Wake-on-LAN is enabled
func (c *Client) GetWakeOnLAN() (bool, error) {
	state, err := c.getByte(protocol.CmdWOLGet)
	if err != nil {
		return false, err
	}
	return state == 0x01, nil
}

// GetAutoSignalMode reports the automatic signal detection mode
func (c *Client) GetAutoSignalMode() (byte, error) {
	return c.getByte(protocol.CmdAutoSignalGet)
}

// SetAutoSignalMode sets the automatic signal detection mode (0-5)
func (c *Client) SetAutoSignalMode(mode byte) (bool, error) {
	if mode > 0x05 {
		return false, NewValidationError("auto signal mode must be between 0 and 5")
	}
	return c.set(protocol.CmdAutoSignalSet, mode)
}

// GetPowerSaveMode reports the current power save mode
func (c *Client) GetPowerSaveMode() (byte, error) {
	return c.getByte(protocol.CmdPowerSaveGet)
}

// SetPowerSaveMode sets the power save mode
func (c *Client) SetPowerSaveMode(mode byte) (bool, error) {
	return c.set(protocol.CmdPowerSaveSet, mode)
}

// GetSmartPowerLevel reports the current smart power level
func (c *Client) GetSmartPowerLevel() (byte, error) {
	return c.getByte(protocol.CmdSmartPowerGet)
}

// SetSmartPowerLevel sets the smart power level
func (c *Client) SetSmartPowerLevel(level byte) (bool, error) {
	return c.set(protocol.CmdSmartPowerSet, level)
}

// GetAPMMode reports the advanced power management mode
func (c *Client) GetAPMMode() (byte, error) {
	return c.getByte(protocol.CmdAPMGet)
}

// SetAPMMode sets the advanced power management mode
func (c *Client) SetAPMMode(mode byte) (bool, error) {
	return c.set(protocol.CmdAPMSet, mode)
}
