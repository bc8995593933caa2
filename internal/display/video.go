package display

import (
	"fmt"

	"github.com/tidworth/sicp/internal/protocol"
)

// InputStatus is the decoded reply to a current-source query
type InputStatus struct {
	// Source is the active input's code (see protocol.InputSource)
	Source byte

	// Playlist is the running playlist slot: 0 none, 1-7 playlist/URL,
	// 8 USB autoplay
	Playlist byte
}

// SetInputSource switches the active input. playlist selects a media
// playlist or URL slot to start (0 for none, 1-7, or 8 for USB autoplay);
// the source label stays visible on screen during the switch.
func (c *Client) SetInputSource(source byte, playlist byte) (bool, error) {
	if playlist > 0x08 {
		return false, NewValidationError("playlist must be between 0 and 8")
	}
	const (
		osdVisible     = 0x01
		effectDuration = 0x00 // don't change
	)
	return c.set(protocol.CmdInputSourceSet, source, playlist, osdVisible, effectDuration)
}

// GetInputSource reports the active input and playlist slot
func (c *Client) GetInputSource() (InputStatus, error) {
	payload, err := c.get(protocol.CmdCurrentSourceGet)
	if err != nil {
		return InputStatus{}, err
	}
	status := InputStatus{Source: payload[0]}
	if len(payload) > 1 {
		status.Playlist = payload[1]
	}
	return status, nil
}

// SetBrightness sets user brightness as a percentage. Values outside 0-100
// are clamped, matching the display's own slider behavior. The command rides
// the video parameters frame with every other parameter flagged no-change.
func (c *Client) SetBrightness(percent int) (bool, error) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return c.set(protocol.CmdVideoParametersSet,
		byte(percent),
		protocol.ParamNoChange, // color
		protocol.ParamNoChange, // contrast
		protocol.ParamNoChange, // sharpness
		protocol.ParamNoChange, // tint
		protocol.ParamNoChange, // black level
		protocol.ParamNoChange, // gamma
	)
}

// GetBrightness reports the current brightness percentage
func (c *Client) GetBrightness() (int, error) {
	value, err := c.getByte(protocol.CmdVideoParametersGet)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// SetColorTemperatureMode selects a color temperature preset
func (c *Client) SetColorTemperatureMode(mode byte) (bool, error) {
	return c.set(protocol.CmdColorTemperatureSet, mode)
}

// GetColorTemperatureMode reports the active color temperature preset
func (c *Client) GetColorTemperatureMode() (byte, error) {
	return c.getByte(protocol.CmdColorTemperatureGet)
}

// KelvinToStep converts a Kelvin value to the fine color temperature
// command's 100K step, clamped to the display's 2000K-10000K range, and
// returns the Kelvin value the step actually lands on.
func KelvinToStep(kelvin int) (step byte, resolved int) {
	s := (kelvin + 50) / 100
	if s < 20 {
		s = 20
	}
	if s > 100 {
		s = 100
	}
	return byte(s), s * 100
}

// SetPreciseColorTemperature sets the color temperature in 100K steps. The
// fine adjustment only takes effect in the User 2 preset, so the preset is
// switched first; if the display refuses the preset switch, the fine
// adjustment is skipped and the call reports failure.
func (c *Client) SetPreciseColorTemperature(kelvin int) (bool, error) {
	step, _ := KelvinToStep(kelvin)

	c.mu.Lock()
	defer c.mu.Unlock()

	ok, err := c.setLocked(protocol.CmdColorTemperatureSet, protocol.ColorTempUser2)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return c.setLocked(protocol.CmdColorTemperatureFineSet, step)
}

// GetPreciseColorTemperature reports the User 2 color temperature in Kelvin.
// Displays answer in 100K steps; a step outside the valid 20-100 window
// means the fine adjustment is not active and decodes as malformed.
func (c *Client) GetPreciseColorTemperature() (int, error) {
	step, err := c.getByte(protocol.CmdColorTemperatureFineGet)
	if err != nil {
		return 0, err
	}
	if step < 20 || step > 100 {
		return 0, NewMalformedError(protocol.CmdColorTemperatureFineGet,
			fmt.Sprintf("color temperature step %d outside 20-100", step))
	}
	return int(step) * 100, nil
}

// GetPictureStyle reports the active picture style
func (c *Client) GetPictureStyle() (byte, error) {
	return c.getByte(protocol.CmdPictureStyleGet)
}

// SetPictureStyle sets the picture style
func (c *Client) SetPictureStyle(style byte) (bool, error) {
	return c.set(protocol.CmdPictureStyleSet, style)
}

// GetTestPattern reports the active internal test pattern
func (c *Client) GetTestPattern() (byte, error) {
	return c.getByte(protocol.CmdTestPatternGet)
}

// SetTestPattern enables an internal test pattern. Not all models implement
// this; unsupported displays answer NAV.
func (c *Client) SetTestPattern(pattern byte) (bool, error) {
	return c.set(protocol.CmdTestPatternSet, pattern)
}

// SetAndroid4K enables or disables the Android 4K UI mode
func (c *Client) SetAndroid4K(enabled bool) (bool, error) {
	param := byte(0x00)
	if enabled {
		param = 0x01
	}
	return c.set(protocol.CmdAndroid4KSet, param)
}

// GetAndroid4K reports whether the Android 4K UI mode is enabled
func (c *Client) GetAndroid4K() (bool, error) {
	state, err := c.getByte(protocol.CmdAndroid4KGet)
	if err != nil {
		return false, err
	}
	return state == 0x01, nil
}

// GetVideoSignal reports whether the active input carries a signal
func (c *Client) GetVideoSignal() (bool, error) {
	state, err := c.getByte(protocol.CmdVideoSignalGet)
	if err != nil {
		return false, err
	}
	return state == 0x01, nil
}

// GetPowerOnLogo reports the power-on logo mode
func (c *Client) GetPowerOnLogo() (byte, error) {
	return c.getByte(protocol.CmdPowerOnLogoGet)
}

// SetPowerOnLogo sets the power-on logo mode
func (c *Client) SetPowerOnLogo(mode byte) (bool, error) {
	return c.set(protocol.CmdPowerOnLogoSet, mode)
}
