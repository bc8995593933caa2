package display

import (
	"fmt"

	"github.com/tidworth/sicp/internal/protocol"
)

// Volume is the decoded reply to a volume query. Displays without a
// separate audio-out channel answer with a single level.
type Volume struct {
	// Speaker is the built-in speaker level, 0-100
	Speaker int

	// AudioOut is the line-out level, nil when the display reports none
	AudioOut *int
}

// SetVolume sets the speaker and line-out levels. A nil level leaves that
// channel unchanged. Levels must be 0-100; out-of-range values fail
// validation before any I/O, they are never clamped.
func (c *Client) SetVolume(speaker, audioOut *int) (bool, error) {
	encode := func(label string, level *int) (byte, error) {
		if level == nil {
			return protocol.ParamNoChange, nil
		}
		if *level < 0 || *level > 100 {
			return 0, NewValidationError(fmt.Sprintf("%s volume must be between 0 and 100", label))
		}
		return byte(*level), nil
	}

	speakerParam, err := encode("speaker", speaker)
	if err != nil {
		return false, err
	}
	audioOutParam, err := encode("audio-out", audioOut)
	if err != nil {
		return false, err
	}
	return c.set(protocol.CmdVolumeSet, speakerParam, audioOutParam)
}

// GetVolume reports the current speaker and line-out levels
func (c *Client) GetVolume() (Volume, error) {
	payload, err := c.get(protocol.CmdVolumeGet)
	if err != nil {
		return Volume{}, err
	}
	vol := Volume{Speaker: int(payload[0])}
	if len(payload) > 1 {
		audioOut := int(payload[1])
		vol.AudioOut = &audioOut
	}
	return vol, nil
}

// SetMute mutes or unmutes audio on both channels
func (c *Client) SetMute(on bool) (bool, error) {
	param := byte(0x00)
	if on {
		param = 0x01
	}
	return c.set(protocol.CmdMuteSet, param)
}

// GetMute reports whether audio is muted
func (c *Client) GetMute() (bool, error) {
	state, err := c.getByte(protocol.CmdMuteGet)
	if err != nil {
		return false, err
	}
	return state == 0x01, nil
}

// SetAVMute blanks the panel and silences audio in one step without a
// power transition
func (c *Client) SetAVMute(on bool) (bool, error) {
	param := byte(0x00)
	if on {
		param = 0x01
	}
	return c.set(protocol.CmdAVMuteSet, param)
}

// GetAVMute reports whether A/V mute is active
func (c *Client) GetAVMute() (bool, error) {
	state, err := c.getByte(protocol.CmdAVMuteGet)
	if err != nil {
		return false, err
	}
	return state == 0x01, nil
}
