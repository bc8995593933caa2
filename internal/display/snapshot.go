package display

import (
	"time"

	"github.com/tidworth/sicp/internal/protocol"
)

// Snapshot is a point-in-time reading of everything a display will report
// about itself. Fields are pointers because any individual read can fail
// (unsupported platform, no video source, power saving) without
// invalidating the rest; nil means that read failed or was skipped.
type Snapshot struct {
	FetchedAt time.Time `json:"fetched_at"`

	Power            *bool   `json:"power"`
	Backlight        *bool   `json:"backlight"`
	Brightness       *int    `json:"brightness"`
	ColorTemperature *int    `json:"color_temperature"`
	Temperatures     []int   `json:"temperatures"`
	SerialNumber     *string `json:"serial_number"`

	ModelInfo map[string]string `json:"model_info"`
	SICPInfo  map[string]string `json:"sicp_info"`

	SmartPower  *string `json:"smart_power"`
	PowerOnLogo *string `json:"power_on_logo"`
	ColdStart   *string `json:"cold_start"`
	InputSource *string `json:"input_source"`

	SpeakerVolume  *int  `json:"speaker_volume"`
	AudioOutVolume *int  `json:"audio_out_volume"`
	Muted          *bool `json:"muted"`
}

// Model and platform fields worth polling. The codes left out cover HDMI
// switch and LAN controller firmware that most panels answer with NAV.
var (
	snapshotModelFields = []string{"model-number", "firmware-version", "build-date", "android-firmware"}
	snapshotSICPFields  = []string{"platform-label", "platform-version"}
)

// FetchStatus reads every pollable property and assembles a Snapshot.
// A failed read degrades its field to nil and the fetch moves on, so one
// unsupported property never hides the others. A network failure stops the
// remaining reads (each one would burn a full connect timeout against an
// unreachable host) and is returned alongside the partial snapshot.
func (c *Client) FetchStatus() (*Snapshot, error) {
	snap := &Snapshot{
		FetchedAt: time.Now(),
		ModelInfo: make(map[string]string),
		SICPInfo:  make(map[string]string),
	}

	var netErr error
	read := func(fetch func() error) {
		if netErr != nil {
			return
		}
		if err := fetch(); err != nil && IsNetworkError(err) {
			netErr = err
		}
	}

	read(func() error {
		on, err := c.GetPower()
		if err != nil {
			return err
		}
		snap.Power = &on
		return nil
	})
	read(func() error {
		level, err := c.GetBrightness()
		if err != nil {
			return err
		}
		snap.Brightness = &level
		return nil
	})
	read(func() error {
		kelvin, err := c.GetPreciseColorTemperature()
		if err != nil {
			return err
		}
		snap.ColorTemperature = &kelvin
		return nil
	})
	read(func() error {
		on, err := c.GetBacklight()
		if err != nil {
			return err
		}
		snap.Backlight = &on
		return nil
	})
	read(func() error {
		temps, err := c.GetTemperatures()
		if err != nil {
			return err
		}
		snap.Temperatures = temps
		return nil
	})
	read(func() error {
		serial, err := c.GetSerialNumber()
		if err != nil {
			return err
		}
		snap.SerialNumber = &serial
		return nil
	})

	for _, field := range snapshotModelFields {
		code := protocol.ModelInfoLabel.MustCode(field)
		name := field
		read(func() error {
			text, err := c.GetModelInfo(code)
			if err != nil {
				return err
			}
			snap.ModelInfo[name] = text
			return nil
		})
	}
	for _, field := range snapshotSICPFields {
		code := protocol.SICPInfoLabel.MustCode(field)
		name := field
		read(func() error {
			text, err := c.GetSICPInfo(code)
			if err != nil {
				return err
			}
			snap.SICPInfo[name] = text
			return nil
		})
	}
	read(func() error {
		text, err := c.GetSICPInfo(protocol.SICPInfoLabel.MustCode("custom-intent-version"))
		if err != nil {
			// Android-only field; other platforms answer NAV
			if IsNotSupported(err) {
				snap.SICPInfo["custom-intent-version"] = "N/A"
				return nil
			}
			return err
		}
		snap.SICPInfo["custom-intent-version"] = text
		return nil
	})

	read(func() error {
		level, err := c.GetSmartPowerLevel()
		if err != nil {
			return err
		}
		label := protocol.SmartPower.Label(level)
		snap.SmartPower = &label
		return nil
	})
	read(func() error {
		mode, err := c.GetPowerOnLogo()
		if err != nil {
			return err
		}
		label := protocol.PowerOnLogo.Label(mode)
		snap.PowerOnLogo = &label
		return nil
	})
	read(func() error {
		state, err := c.GetColdStart()
		if err != nil {
			return err
		}
		label := protocol.ColdStart.Label(state)
		snap.ColdStart = &label
		return nil
	})
	read(func() error {
		status, err := c.GetInputSource()
		if err != nil {
			return err
		}
		label := protocol.InputSource.Label(status.Source)
		snap.InputSource = &label
		return nil
	})
	read(func() error {
		vol, err := c.GetVolume()
		if err != nil {
			return err
		}
		snap.SpeakerVolume = &vol.Speaker
		snap.AudioOutVolume = vol.AudioOut
		return nil
	})
	read(func() error {
		muted, err := c.GetMute()
		if err != nil {
			return err
		}
		snap.Muted = &muted
		return nil
	})

	return snap, netErr
}
