package display

import (
	"encoding/json"
	"errors"
	"testing"
)

// handlerTransport routes each request through a test-supplied handler,
// keyed on the outgoing frame, the way httptest serves HTTP handlers.
type handlerTransport struct {
	handler func(msg []byte) ([]byte, error)
	calls   int
}

func (h *handlerTransport) Send(msg []byte, expectResponse bool) ([]byte, error) {
	h.calls++
	return h.handler(msg)
}

func (h *handlerTransport) Target() string { return "test:5000" }

// healthyDisplay answers every snapshot read the way a running display
// would. Tests override single opcodes by wrapping it.
func healthyDisplay(msg []byte) ([]byte, error) {
	command := msg[3]
	switch command {
	case 0x19: // power state
		return dataReply(command, 0x02), nil
	case 0x33: // video parameters (brightness)
		return dataReply(command, 80), nil
	case 0x12: // fine color temperature
		return dataReply(command, 65), nil
	case 0x71: // backlight
		return dataReply(command, 0x00), nil
	case 0x2F: // temperatures
		return dataReply(command, 44, 41), nil
	case 0x15: // serial
		return dataReply(command, []byte("FZ1A2345678901")...), nil
	case 0xA1: // model info
		return dataReply(command, []byte("65BDL4150D/00")...), nil
	case 0xA2: // platform info, field code in msg[4]
		if msg[4] == 0x03 {
			return navReply(), nil // custom intent only exists on Android
		}
		return dataReply(command, []byte("ADPF2")...), nil
	case 0xDE: // smart power
		return dataReply(command, 0x02), nil
	case 0x3F: // power-on logo
		return dataReply(command, 0x01), nil
	case 0xA4: // cold start
		return dataReply(command, 0x02), nil
	case 0xAD: // current source
		return dataReply(command, 0x0D, 0x00), nil
	case 0x45: // volume
		return dataReply(command, 30, 20), nil
	case 0x46: // mute
		return dataReply(command, 0x00), nil
	default:
		return navReply(), nil
	}
}

func TestFetchStatus(t *testing.T) {
	ht := &handlerTransport{handler: healthyDisplay}
	client := NewClientWithTransport(ht, 1)

	snap, err := client.FetchStatus()
	if err != nil {
		t.Fatalf("FetchStatus() error = %v", err)
	}

	if snap.Power == nil || !*snap.Power {
		t.Error("Power should decode true")
	}
	if snap.Backlight == nil || !*snap.Backlight {
		t.Error("Backlight should decode true")
	}
	if snap.Brightness == nil || *snap.Brightness != 80 {
		t.Error("Brightness should decode 80")
	}
	if snap.ColorTemperature == nil || *snap.ColorTemperature != 6500 {
		t.Error("ColorTemperature should decode 6500")
	}
	if len(snap.Temperatures) != 2 {
		t.Errorf("Temperatures = %v, want two sensors", snap.Temperatures)
	}
	if snap.SerialNumber == nil || *snap.SerialNumber != "FZ1A2345678901" {
		t.Error("SerialNumber should decode")
	}
	if snap.ModelInfo["model-number"] != "65BDL4150D/00" {
		t.Errorf("model-number = %q, want 65BDL4150D/00", snap.ModelInfo["model-number"])
	}
	if snap.SICPInfo["platform-label"] != "ADPF2" {
		t.Errorf("platform-label = %q, want ADPF2", snap.SICPInfo["platform-label"])
	}
	if snap.SICPInfo["custom-intent-version"] != "N/A" {
		t.Errorf("custom-intent-version = %q, want N/A on NAV", snap.SICPInfo["custom-intent-version"])
	}
	if snap.SmartPower == nil || *snap.SmartPower != "medium" {
		t.Error("SmartPower should decode to its label")
	}
	if snap.InputSource == nil || *snap.InputSource != "hdmi1" {
		t.Errorf("InputSource = %v, want hdmi1", snap.InputSource)
	}
	if snap.SpeakerVolume == nil || *snap.SpeakerVolume != 30 {
		t.Error("SpeakerVolume should decode 30")
	}
	if snap.AudioOutVolume == nil || *snap.AudioOutVolume != 20 {
		t.Error("AudioOutVolume should decode 20")
	}
	if snap.Muted == nil || *snap.Muted {
		t.Error("Muted should decode false")
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt should be stamped")
	}
}

func TestFetchStatus_DegradesUnsupportedFields(t *testing.T) {
	ht := &handlerTransport{handler: func(msg []byte) ([]byte, error) {
		switch msg[3] {
		case 0x33, 0x12: // brightness and fine color temperature refused
			return navReply(), nil
		}
		return healthyDisplay(msg)
	}}
	client := NewClientWithTransport(ht, 1)

	snap, err := client.FetchStatus()
	if err != nil {
		t.Fatalf("FetchStatus() error = %v", err)
	}

	if snap.Brightness != nil {
		t.Error("Brightness should degrade to nil on NAV")
	}
	if snap.ColorTemperature != nil {
		t.Error("ColorTemperature should degrade to nil on NAV")
	}
	// the rest of the snapshot is unaffected
	if snap.Power == nil || snap.SerialNumber == nil || snap.Muted == nil {
		t.Error("unrelated fields should still populate")
	}
}

func TestFetchStatus_NetworkFailureStopsEarly(t *testing.T) {
	ht := &handlerTransport{handler: func(msg []byte) ([]byte, error) {
		return nil, errors.New("connection refused")
	}}
	client := NewClientWithTransport(ht, 1)

	snap, err := client.FetchStatus()
	if err == nil {
		t.Fatal("FetchStatus() error = nil, want network error")
	}
	if !IsNetworkError(err) {
		t.Errorf("IsNetworkError(%v) = false, want true", err)
	}
	if snap == nil {
		t.Fatal("FetchStatus() should still return the partial snapshot")
	}
	if ht.calls != 1 {
		t.Errorf("made %d transport calls after network failure, want 1", ht.calls)
	}
	if snap.Power != nil {
		t.Error("no field should populate when every read fails")
	}
}

func TestSnapshot_JSONShape(t *testing.T) {
	ht := &handlerTransport{handler: healthyDisplay}
	client := NewClientWithTransport(ht, 1)

	snap, err := client.FetchStatus()
	if err != nil {
		t.Fatalf("FetchStatus() error = %v", err)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	for _, key := range []string{
		"fetched_at", "power", "backlight", "brightness", "color_temperature",
		"temperatures", "serial_number", "model_info", "sicp_info",
		"smart_power", "power_on_logo", "cold_start", "input_source",
		"speaker_volume", "audio_out_volume", "muted",
	} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshalled snapshot missing key %q", key)
		}
	}

	if decoded["power"] != true {
		t.Errorf("power = %v, want true", decoded["power"])
	}
	if decoded["input_source"] != "hdmi1" {
		t.Errorf("input_source = %v, want hdmi1", decoded["input_source"])
	}
}
